package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelmada/internal/handler"
	"github.com/travelmada/internal/middleware"
	"github.com/travelmada/internal/session"
	"github.com/travelmada/internal/view"
)

const loginRatePerMinute = 20

// Options carries what SetupRouter wires together.
type Options struct {
	API          *handler.API
	SessionStore sessions.Store
	Logger       logrus.FieldLogger
	// ContactRatePerMinute bounds contact and login posts per client IP.
	ContactRatePerMinute int
}

// SetupRouter configures the gin engine and every route.
func SetupRouter(opts Options) *gin.Engine {
	if opts.API == nil || opts.SessionStore == nil {
		panic("router: SetupRouter requires an API and a session store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := gin.New()
	r.SetHTMLTemplate(view.MustLoad())
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		session.Middleware(opts.SessionStore),
		Guard(logger),
	)

	api := opts.API
	contactLimiter := middleware.NewRateLimiter(opts.ContactRatePerMinute)
	loginLimiter := middleware.NewRateLimiter(loginRatePerMinute)

	r.GET("/healthz", api.Health)

	r.GET("/", api.ShowHome)
	r.GET("/blog", api.ShowBlogList)
	r.GET("/blog/:slug", api.ShowBlogPost)
	r.GET("/destinations", api.ShowDestinations)
	r.GET("/about", api.ShowAbout)
	r.GET("/contact", api.ShowContact)
	r.POST("/contact", contactLimiter.Limit(logger, api.RenderContactLimited), api.SubmitContact)

	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", loginLimiter.Limit(logger, api.RenderLoginLimited), api.Login)
	r.POST("/logout", api.Logout)

	admin := r.Group("/admin")
	{
		admin.GET("", api.ShowDashboard)
		admin.GET("/posts", api.ShowPostList)
		admin.GET("/posts/new", api.NewPost)
		admin.GET("/posts/editor", api.ShowEditor)
		admin.POST("/posts/editor", api.EditorAction)
		admin.GET("/posts/:id/edit", api.EditPost)
		admin.POST("/posts/:id/delete", api.DeletePost)
		admin.GET("/settings", api.ShowSettings)
		admin.POST("/settings", api.UpdateSettings)
		admin.POST("/settings/logo", api.LogoAction)

		ai := admin.Group("/api/ai")
		{
			ai.POST("/text", api.GenerateText)
			ai.POST("/titles", api.GenerateTitles)
			ai.POST("/outline", api.GenerateOutline)
			ai.POST("/seo", api.GenerateSEO)
			ai.POST("/image", api.GenerateImage)
			ai.GET("/status", api.AIStatus)
			ai.POST("/:op/cancel", api.CancelAI)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	return r
}
