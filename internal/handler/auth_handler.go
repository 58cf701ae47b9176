package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelmada/internal/session"
)

// ShowLoginPage renders the admin login form.
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Admin Login",
		"email": "",
	})
}

// Login signs in the demo admin. Any non-empty email is accepted; the
// password field is ignored.
func (a *API) Login(c *gin.Context) {
	email, err := session.ValidateEmail(c.PostForm("email"))
	if err != nil {
		status := http.StatusInternalServerError
		message := "Sign in failed"
		if errors.Is(err, session.ErrEmptyEmail) {
			status = http.StatusBadRequest
			message = "Please enter your email address."
		}
		a.renderHTML(c, status, "login.html", gin.H{
			"title": "Admin Login",
			"email": "",
			"error": message,
		})
		return
	}

	user, err := session.From(c).Login(email)
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "Admin Login",
			"email": email,
			"error": "Sign in failed",
		})
		return
	}

	a.requestLogger(c).WithField("email", user.Email).Info("admin signed in")
	c.Redirect(http.StatusFound, "/admin")
}

// Logout drops the session and everything staged under it.
func (a *API) Logout(c *gin.Context) {
	st := session.From(c)
	if owner := st.Key(); owner != "" {
		a.ai.Tasks().CancelAll(owner)
		a.editor.Cancel(owner)
		a.settings.DiscardPendingLogo(owner)
	}
	if err := st.Logout(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// RenderLoginLimited answers a rate limited sign in attempt.
func (a *API) RenderLoginLimited(c *gin.Context) {
	a.renderHTML(c, http.StatusTooManyRequests, "login.html", gin.H{
		"title": "Admin Login",
		"email": "",
		"error": "Too many sign in attempts. Please wait a minute and try again.",
	})
}
