package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := NewStore(Options{Secret: "test-secret"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(Middleware(store))
	r.POST("/login", func(c *gin.Context) {
		email, err := ValidateEmail(c.PostForm("email"))
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		user, err := From(c).Login(email)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, user)
	})
	r.POST("/logout", func(c *gin.Context) {
		if err := From(c).Logout(); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", func(c *gin.Context) {
		st := From(c)
		user, ok := st.CurrentUser()
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "key": st.Key()})
	})
	return r
}

func do(r http.Handler, method, target, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestLoginCreatesAdminUser(t *testing.T) {
	r := newTestEngine(t)

	rr := do(r, http.MethodPost, "/login", "email=ranto%40example.mg", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)

	rr = do(r, http.MethodGet, "/me", "", cookies)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"admin-1"`)
	assert.Contains(t, rr.Body.String(), `"name":"Admin User"`)
	assert.Contains(t, rr.Body.String(), `"email":"ranto@example.mg"`)
	assert.Contains(t, rr.Body.String(), `"role":"admin"`)
	assert.Regexp(t, `"key":"[0-9a-f-]{36}"`, rr.Body.String())
}

func TestLoginRejectsEmptyEmail(t *testing.T) {
	r := newTestEngine(t)

	rr := do(r, http.MethodPost, "/login", "email=++", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, rr.Result().Cookies(), "session must stay untouched")
}

func TestLogoutClearsUser(t *testing.T) {
	r := newTestEngine(t)

	rr := do(r, http.MethodPost, "/login", "email=a%40b.mg", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()

	rr = do(r, http.MethodPost, "/logout", "", cookies)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(r, http.MethodGet, "/me", "", rr.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	r := newTestEngine(t)

	rr := do(r, http.MethodGet, "/me", "", []*http.Cookie{{Name: CookieName, Value: "forged"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeriveKeysIsDeterministic(t *testing.T) {
	a1, e1, err := deriveKeys("secret")
	require.NoError(t, err)
	a2, e2, err := deriveKeys("secret")
	require.NoError(t, err)
	a3, _, err := deriveKeys("other")
	require.NoError(t, err)

	assert.Len(t, a1, 64)
	assert.Len(t, e1, 32)
	assert.Equal(t, a1, a2)
	assert.Equal(t, e1, e2)
	assert.NotEqual(t, a1, a3)
}

func TestNewStoreRequiresSecret(t *testing.T) {
	_, err := NewStore(Options{Secret: " "})
	assert.Error(t, err)
}

func TestValidateEmail(t *testing.T) {
	email, err := ValidateEmail("  x@y.mg ")
	require.NoError(t, err)
	assert.Equal(t, "x@y.mg", email)

	_, err = ValidateEmail("")
	assert.ErrorIs(t, err, ErrEmptyEmail)
}
