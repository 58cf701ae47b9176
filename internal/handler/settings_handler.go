package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/travelmada/internal/service"
)

const settingsPath = "/admin/settings"

type settingsForm struct {
	SiteName   string `form:"site_name"`
	LogoURL    string `form:"logo_url"`
	RemoveLogo bool   `form:"remove_logo"`
}

// ShowSettings renders the branding form and any staged logo preview.
func (a *API) ShowSettings(c *gin.Context) {
	a.renderSettings(c, http.StatusOK, gin.H{})
}

func (a *API) renderSettings(c *gin.Context, status int, extra gin.H) {
	pending, hasPending := a.settings.PendingLogo(a.owner(c))
	data := gin.H{
		"title":       "Site Settings",
		"settings":    a.settings.GetSettings(),
		"pendingLogo": pending,
		"hasPending":  hasPending,
		"concept":     "",
	}
	for key, value := range extra {
		data[key] = value
	}
	a.renderHTML(c, status, "admin_settings.html", data)
}

// UpdateSettings saves the site name and logo URL.
func (a *API) UpdateSettings(c *gin.Context) {
	var form settingsForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderSettings(c, http.StatusBadRequest, gin.H{"error": "Invalid settings form"})
		return
	}

	settings, err := a.settings.UpdateSettings(service.SiteSettingsInput{
		SiteName:   form.SiteName,
		LogoURL:    form.LogoURL,
		RemoveLogo: form.RemoveLogo,
	})
	if err != nil {
		a.renderSettings(c, http.StatusBadRequest, gin.H{"error": "The logo URL is not valid."})
		return
	}

	a.requestLogger(c).WithField("site_name", settings.SiteName).Info("site settings updated")
	a.flash(c, "Settings saved.")
	c.Redirect(http.StatusFound, settingsPath)
}

// LogoAction drives the logo generator: generate stages a preview, apply
// makes it the site logo and discard drops it.
func (a *API) LogoAction(c *gin.Context) {
	owner := a.owner(c)

	switch strings.TrimSpace(c.PostForm("action")) {
	case "generate":
		concept := strings.TrimSpace(c.PostForm("concept"))
		if concept == "" {
			a.renderSettings(c, http.StatusBadRequest, gin.H{"error": "Describe the logo you would like."})
			return
		}
		a.generateLogo(c, owner, concept)
	case "apply":
		if a.settings.ApplyPendingLogo(owner) {
			a.requestLogger(c).Info("generated logo applied")
			a.flash(c, "Logo updated.")
		}
	case "discard":
		a.settings.DiscardPendingLogo(owner)
	default:
		a.renderSettings(c, http.StatusBadRequest, gin.H{"error": "Unknown logo action."})
		return
	}
	c.Redirect(http.StatusFound, settingsPath)
}

func (a *API) generateLogo(c *gin.Context, owner, concept string) {
	ctx, done, err := a.ai.Tasks().Start(c.Request.Context(), owner, service.AIOpLogo)
	if err != nil {
		a.flash(c, "The logo generator is already running.")
		return
	}
	defer done()

	logo, ok := a.ai.GenerateLogo(ctx, a.siteSettings(c).SiteName, concept)
	if !ok {
		a.flash(c, "The logo could not be generated. Please try again.")
		return
	}
	a.settings.StageLogo(owner, logo)
}
