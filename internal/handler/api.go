package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelmada/internal/logging"
	"github.com/travelmada/internal/middleware"
	"github.com/travelmada/internal/model"
	"github.com/travelmada/internal/service"
	"github.com/travelmada/internal/session"
	"github.com/travelmada/internal/store"
	"github.com/travelmada/internal/view"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store        *store.ContentStore
	posts        *service.PostService
	editor       *service.EditorService
	ai           *service.AIAssistService
	settings     *service.SiteSettingService
	contact      *service.ContactService
	dashboard    *service.DashboardService
	destinations []model.Destination
	logger       logrus.FieldLogger
}

// Options carries what NewAPI needs. Store is required; a nil AI falls back
// to a disabled assistant and a nil Logger discards output.
type Options struct {
	Store        *store.ContentStore
	Destinations []model.Destination
	AI           *service.AIAssistService
	Logger       logrus.FieldLogger
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	if opts.Store == nil {
		panic("handler: NewAPI requires a content store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	ai := opts.AI
	if ai == nil {
		ai = service.NewAIAssistService(service.AIAssistOptions{Logger: logger})
	}

	validate := service.NewValidator()
	posts := service.NewPostService(opts.Store, validate)
	contact := service.NewContactService(validate)

	return &API{
		store:        opts.Store,
		posts:        posts,
		editor:       service.NewEditorService(posts),
		ai:           ai,
		settings:     service.NewSiteSettingService(opts.Store),
		contact:      contact,
		dashboard:    service.NewDashboardService(posts, contact),
		destinations: append([]model.Destination(nil), opts.Destinations...),
		logger:       logger,
	}
}

// Editor exposes the draft workbench, mainly for tests that pin its clock.
func (a *API) Editor() *service.EditorService {
	return a.editor
}

func (a *API) siteSettings(c *gin.Context) model.SiteSettings {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if settings, ok := cached.(model.SiteSettings); ok {
			return settings
		}
	}
	settings := a.settings.GetSettings()
	c.Set(siteSettingsContextKey, settings)
	return settings
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	st := session.From(c)
	defaults := gin.H{
		"site":        a.siteSettings(c),
		"currentPath": c.Request.URL.Path,
		"navLinks":    view.PublicNav(),
		"adminNav":    view.AdminNav(),
		"aiEnabled":   a.ai.Enabled(),
	}
	if user, ok := st.CurrentUser(); ok {
		defaults["user"] = user
		defaults["authenticated"] = true
	}
	if flashes := st.Flashes(); len(flashes) > 0 {
		defaults["flashes"] = flashes
	}
	for key, value := range defaults {
		if _, exists := payload[key]; !exists {
			payload[key] = value
		}
	}

	c.HTML(status, template, payload)
}

// RenderHTML renders template with the site settings and session data that
// every layout expects.
func (a *API) RenderHTML(c *gin.Context, status int, template string, data gin.H) {
	a.renderHTML(c, status, template, data)
}

func (a *API) owner(c *gin.Context) string {
	return session.From(c).Key()
}

func (a *API) requestLogger(c *gin.Context) logrus.FieldLogger {
	return a.logger.WithField("request_id", middleware.GetRequestID(c))
}

func (a *API) flash(c *gin.Context, message string) {
	session.From(c).AddFlash(message)
}
