// Package session keeps the signed-in admin user in an encrypted cookie.
package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/travelmada/internal/model"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "travelmada_session"

	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
	keyUserRole  = "user_role"
	keySession   = "session_key"

	maxAge = 7 * 24 * 60 * 60

	// AdminUserID and AdminUserName describe the user created on every login.
	AdminUserID   = "admin-1"
	AdminUserName = "Admin User"
)

// ErrEmptyEmail is returned by ValidateEmail for blank input.
var ErrEmptyEmail = errors.New("email is required")

// Options configures the cookie store.
type Options struct {
	Secret string
	Secure bool
}

// NewStore builds the cookie store. The signing and encryption keys are
// derived from the secret so a single value can be configured.
func NewStore(opts Options) (sessions.Store, error) {
	if strings.TrimSpace(opts.Secret) == "" {
		return nil, errors.New("session secret is required")
	}
	authKey, encKey, err := deriveKeys(opts.Secret)
	if err != nil {
		return nil, err
	}

	store := cookie.NewStore(authKey, encKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func deriveKeys(secret string) (authKey, encKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("travelmada session cookie v1"))
	authKey = make([]byte, 64)
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(r, authKey); err != nil {
		return nil, nil, fmt.Errorf("derive auth key: %w", err)
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		return nil, nil, fmt.Errorf("derive encryption key: %w", err)
	}
	return authKey, encKey, nil
}

// Middleware attaches the session to every request.
func Middleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(CookieName, store)
}

// ValidateEmail trims email and rejects empty input.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmptyEmail
	}
	return email, nil
}

// State is the per-request view of the session.
type State struct {
	s sessions.Session
}

// From returns the session state of the request.
func From(c *gin.Context) *State {
	return &State{s: sessions.Default(c)}
}

// Login signs in the fixed admin user under email and assigns a fresh
// session key. Any email is accepted.
func (st *State) Login(email string) (model.User, error) {
	user := model.User{
		ID:    AdminUserID,
		Name:  AdminUserName,
		Email: strings.TrimSpace(email),
		Role:  model.RoleAdmin,
	}

	st.s.Clear()
	st.s.Set(keyUserID, user.ID)
	st.s.Set(keyUserName, user.Name)
	st.s.Set(keyUserEmail, user.Email)
	st.s.Set(keyUserRole, string(user.Role))
	st.s.Set(keySession, uuid.NewString())
	if err := st.s.Save(); err != nil {
		return model.User{}, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Logout clears the session unconditionally.
func (st *State) Logout() error {
	st.s.Clear()
	st.s.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := st.s.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, if any.
func (st *State) CurrentUser() (model.User, bool) {
	id, _ := st.s.Get(keyUserID).(string)
	if id == "" {
		return model.User{}, false
	}
	name, _ := st.s.Get(keyUserName).(string)
	email, _ := st.s.Get(keyUserEmail).(string)
	role, _ := st.s.Get(keyUserRole).(string)
	return model.User{ID: id, Name: name, Email: email, Role: model.Role(role)}, true
}

// Key is the opaque identifier that scopes editor drafts and AI tasks to
// this login. It is empty when nobody is signed in.
func (st *State) Key() string {
	key, _ := st.s.Get(keySession).(string)
	return key
}

// AddFlash queues a one-shot notice for the next page.
func (st *State) AddFlash(message string) {
	st.s.AddFlash(message)
	_ = st.s.Save()
}

// Flashes pops the queued notices.
func (st *State) Flashes() []string {
	raw := st.s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = st.s.Save()

	messages := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
