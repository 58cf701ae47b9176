package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelmada/internal/middleware"
	"github.com/travelmada/internal/session"
)

const (
	loginPath = "/login"
	adminPath = "/admin"
	homePath  = "/"
)

// Decision is the outcome of the route guard for one request.
type Decision struct {
	// Redirect is the target path, empty when the request may proceed.
	Redirect string
}

// Allowed reports whether the request may reach its handler.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

var publicPaths = map[string]struct{}{
	"/":             {},
	"/blog":         {},
	"/destinations": {},
	"/about":        {},
	"/contact":      {},
	"/login":        {},
	"/logout":       {},
	"/healthz":      {},
}

// Resolve decides where a request for path goes. It only looks at the path
// and whether somebody is signed in.
func Resolve(path string, authenticated bool) Decision {
	switch {
	case isAdminPath(path):
		if !authenticated {
			return Decision{Redirect: loginPath}
		}
		return Decision{}
	case path == loginPath && authenticated:
		return Decision{Redirect: adminPath}
	case isPublicPath(path):
		return Decision{}
	}
	return Decision{Redirect: homePath}
}

func isAdminPath(path string) bool {
	return path == adminPath || strings.HasPrefix(path, adminPath+"/")
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, adminPath+"/api/")
}

func isPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	slug, ok := strings.CutPrefix(path, "/blog/")
	return ok && slug != "" && !strings.Contains(slug, "/")
}

// Guard applies Resolve to every request. JSON endpoints get a 401 instead
// of the login redirect.
func Guard(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		_, authenticated := session.From(c).CurrentUser()

		decision := Resolve(path, authenticated)
		if decision.Allowed() {
			c.Next()
			return
		}

		if decision.Redirect == loginPath && isAPIPath(path) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sign in required"})
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       path,
			"redirect":   decision.Redirect,
		}).Debug("route guard redirect")
		c.Redirect(http.StatusFound, decision.Redirect)
		c.Abort()
	}
}
