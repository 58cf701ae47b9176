package view

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmada/internal/model"
	"github.com/travelmada/internal/service"
)

func samplePagePost() model.BlogPost {
	return model.BlogPost{
		ID:       "post-1",
		Title:    "Lemurs of Andasibe",
		Slug:     "lemurs-of-andasibe",
		Excerpt:  "Meet the Indri.",
		Content:  "## Into the forest\n\nhttps://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Cover:    model.RemoteImage("https://images.example.com/indri.jpg"),
		Author:   "Travel Mada Team",
		Date:     "Oct 12, 2023",
		Category: model.CategoryWildlife,
		ReadTime: "5 min",
		Tags:     []string{"lemurs", "rainforest"},
		Status:   model.StatusPublished,
	}
}

func basePageData(path string) map[string]any {
	return map[string]any{
		"site":        model.DefaultSettings(),
		"currentPath": path,
		"navLinks":    PublicNav(),
		"adminNav":    AdminNav(),
		"user":        model.User{ID: "admin-1", Name: "Admin User", Email: "admin@travelmada.com", Role: model.RoleAdmin},
		"flashes":     []string{"Saved."},
	}
}

func render(t *testing.T, name string, data map[string]any) string {
	t.Helper()
	tmpl, err := Load()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestLoadParsesEveryPage(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)
	for _, name := range []string{
		"home.html", "blog_list.html", "blog_post.html", "not_found.html",
		"destinations.html", "about.html", "contact.html", "login.html",
		"admin_dashboard.html", "admin_posts.html", "admin_editor.html", "admin_settings.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestBlogPostPageRendersMarkdownAndEmbeds(t *testing.T) {
	data := basePageData("/blog/lemurs-of-andasibe")
	data["post"] = samplePagePost()

	out := render(t, "blog_post.html", data)

	assert.Contains(t, out, "Lemurs of Andasibe")
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "youtube-nocookie.com/embed/dQw4w9WgXcQ")
	assert.Contains(t, out, "#lemurs")
	assert.Contains(t, out, "https://images.example.com/indri.jpg")
}

func TestBlogListShowsEmptyState(t *testing.T) {
	data := basePageData("/blog")
	data["posts"] = []model.BlogPost{}
	data["filter"] = service.PostFilter{Category: "Food", Search: "zebu"}
	data["categories"] = service.CategoryOptions()

	out := render(t, "blog_list.html", data)

	assert.Contains(t, out, "No stories found matching your criteria.")
	assert.Contains(t, out, `value="zebu"`)
}

func TestEmbeddedLogoIsRenderedAsDataURL(t *testing.T) {
	data := basePageData("/")
	data["site"] = model.SiteSettings{SiteName: "Mada Trails", Logo: model.EmbeddedImage("image/png", []byte{0x89, 'P', 'N', 'G'})}
	data["posts"] = []model.BlogPost{samplePagePost()}

	out := render(t, "home.html", data)

	assert.Contains(t, out, "data:image/png;base64,")
	assert.NotContains(t, out, "ZgotmplZ")
	assert.Contains(t, out, "Mada Trails")
}

func TestAdminEditorRendersDraft(t *testing.T) {
	post := samplePagePost()
	post.Status = model.StatusDraft
	data := basePageData("/admin/posts/editor")
	data["draft"] = service.Draft{
		Post:             post,
		IsNew:            true,
		TitleSuggestions: []string{"Secrets of the Indri"},
		Errors:           []string{"Invalid fields: Category"},
	}
	data["categories"] = model.Categories
	data["statuses"] = model.Statuses
	data["conflicts"] = []model.BlogPost{{Title: "Another lemur story"}}
	data["aiEnabled"] = true

	out := render(t, "admin_editor.html", data)

	assert.Contains(t, out, "New Post")
	assert.Contains(t, out, `value="pick-title:0"`)
	assert.Contains(t, out, "Invalid fields: Category")
	assert.Contains(t, out, "Another lemur story")
	assert.Contains(t, out, `value="lemurs, rainforest"`)
	assert.Contains(t, out, `<option value="draft" selected>`)
	assert.Contains(t, out, `<option value="Wildlife" selected>`)
}

func TestAdminEditorHidesAIControlsWhenDisabled(t *testing.T) {
	data := basePageData("/admin/posts/editor")
	data["draft"] = service.Draft{Post: samplePagePost()}
	data["categories"] = model.Categories
	data["statuses"] = model.Statuses
	data["aiEnabled"] = false

	out := render(t, "admin_editor.html", data)

	assert.Contains(t, out, "Edit Post")
	assert.NotContains(t, out, `value="write-section"`)
}

func TestAdminDashboardRendersStats(t *testing.T) {
	data := basePageData("/admin")
	data["stats"] = service.DashboardStats{
		TotalPosts:    3,
		Published:     2,
		Drafts:        1,
		Categories:    []service.CategoryCount{{Category: model.CategoryWildlife, Count: 2}},
		WeeklyViews:   []service.DailyViews{{Day: "Mon", Views: 50}},
		MaxDailyViews: 100,
		Messages:      1,
		RecentMessages: []model.ContactMessage{{
			Name: "Rova", Email: "rova@example.com", Message: "Hello", ReceivedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		}},
	}

	out := render(t, "admin_dashboard.html", data)

	assert.Contains(t, out, "height: 50%")
	assert.Contains(t, out, "rova@example.com")
	assert.Contains(t, out, "May 01, 2024 09:30")
	assert.True(t, strings.Contains(out, "Admin User"))
}

func TestAdminSettingsShowsPendingLogo(t *testing.T) {
	data := basePageData("/admin/settings")
	data["settings"] = model.DefaultSettings()
	data["concept"] = ""
	data["aiEnabled"] = true
	data["hasPending"] = true
	data["pendingLogo"] = model.EmbeddedImage("image/png", []byte{1, 2, 3})

	out := render(t, "admin_settings.html", data)

	assert.Contains(t, out, `value="apply"`)
	assert.Contains(t, out, "data:image/png;base64,AQID")
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive("/", "/"))
	assert.False(t, IsActive("/blog", "/"))
	assert.True(t, IsActive("/blog/nosy-be", "/blog"))
	assert.False(t, IsActive("/admin/posts", "/admin"))
	assert.True(t, IsActive("/admin/posts/editor", "/admin/posts"))
}

func TestImageSrc(t *testing.T) {
	assert.Equal(t, "", ImageSrc(model.ImageRef{}))
	assert.Equal(t, "https://x.example/a.jpg", ImageSrc(model.RemoteImage("https://x.example/a.jpg")))
	assert.IsType(t, template.URL(""), ImageSrc(model.EmbeddedImage("image/jpeg", []byte{1})))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, percent(5, 0))
	assert.Equal(t, 50, percent(50, 100))
	assert.Equal(t, 100, percent(150, 100))
}
