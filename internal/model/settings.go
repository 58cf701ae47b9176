package model

// DefaultSiteName is used until the settings page assigns another name.
const DefaultSiteName = "Travel Mada"

// SiteSettings holds the site-wide branding.
type SiteSettings struct {
	SiteName string   `json:"siteName"`
	Logo     ImageRef `json:"logoUrl"`
}

// DefaultSettings returns the settings a fresh process starts with.
func DefaultSettings() SiteSettings {
	return SiteSettings{SiteName: DefaultSiteName}
}
