package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/travelmada/internal/model"
	"github.com/travelmada/internal/store"
)

// SiteSettingsInput 用于更新站点设置。
type SiteSettingsInput struct {
	SiteName string
	// LogoURL is a remote URL or a data: URL. Left empty, an embedded logo is kept.
	LogoURL    string
	RemoveLogo bool
}

// SiteSettingService 提供站点设置的读取与更新能力，并暂存待确认的 AI Logo。
type SiteSettingService struct {
	store *store.ContentStore

	mu      sync.Mutex
	pending map[string]model.ImageRef
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(contentStore *store.ContentStore) *SiteSettingService {
	if contentStore == nil {
		panic("service: NewSiteSettingService requires a content store")
	}
	return &SiteSettingService{store: contentStore, pending: make(map[string]model.ImageRef)}
}

// GetSettings 读取站点设置，站点名称为空时返回默认值。
func (s *SiteSettingService) GetSettings() model.SiteSettings {
	settings := s.store.GetSettings()
	if strings.TrimSpace(settings.SiteName) == "" {
		settings.SiteName = model.DefaultSiteName
	}
	return settings
}

// UpdateSettings 保存站点设置，未填写站点名称时回退默认值。
func (s *SiteSettingService) UpdateSettings(input SiteSettingsInput) (model.SiteSettings, error) {
	current := s.GetSettings()

	updated := model.SiteSettings{
		SiteName: strings.TrimSpace(input.SiteName),
		Logo:     current.Logo,
	}
	if updated.SiteName == "" {
		updated.SiteName = model.DefaultSiteName
	}

	switch {
	case input.RemoveLogo:
		updated.Logo = model.ImageRef{}
	case strings.TrimSpace(input.LogoURL) != "" || !current.Logo.IsEmbedded():
		logo, err := model.ParseImageRef(input.LogoURL)
		if err != nil {
			return current, fmt.Errorf("parse logo: %w", err)
		}
		updated.Logo = logo
	}

	s.store.SetSettings(updated)
	return updated, nil
}

// StageLogo keeps a generated logo as a preview for owner until applied or discarded.
func (s *SiteSettingService) StageLogo(owner string, logo model.ImageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if logo.IsZero() {
		delete(s.pending, owner)
		return
	}
	s.pending[owner] = logo.Clone()
}

// PendingLogo returns the staged preview of owner.
func (s *SiteSettingService) PendingLogo(owner string) (model.ImageRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logo, ok := s.pending[owner]
	return logo.Clone(), ok
}

// ApplyPendingLogo makes the staged preview the site logo.
func (s *SiteSettingService) ApplyPendingLogo(owner string) bool {
	s.mu.Lock()
	logo, ok := s.pending[owner]
	delete(s.pending, owner)
	s.mu.Unlock()

	if !ok {
		return false
	}
	settings := s.GetSettings()
	settings.Logo = logo
	s.store.SetSettings(settings)
	return true
}

// DiscardPendingLogo drops the staged preview of owner.
func (s *SiteSettingService) DiscardPendingLogo(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, owner)
}
