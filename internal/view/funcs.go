package view

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/travelmada/internal/model"
)

// FuncMap returns the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"imageSrc":    ImageSrc,
		"markdown":    markdown,
		"icon":        IconSVG,
		"socialLinks": SocialLinks,
		"initial":     initial,
		"percent":     percent,
		"joinTags":    func(tags []string) string { return strings.Join(tags, ", ") },
		"isActive":    IsActive,
		"dict":        dict,
		"year":        func() int { return time.Now().Year() },
		"kb":          func(n int) string { return fmt.Sprintf("%.1f KB", float64(n)/1024) },
		"add":         func(a, b int) int { return a + b },
	}
}

// ImageSrc renders an image reference for an src attribute. Embedded images
// are trusted data URLs built from decoded bytes; remote URLs still go
// through the template's URL filtering.
func ImageSrc(ref model.ImageRef) any {
	switch {
	case ref.IsEmbedded():
		return template.URL(ref.Src())
	case ref.IsRemote():
		return ref.URL
	}
	return ""
}

func markdown(content string) template.HTML {
	rendered, err := RenderMarkdown(content)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return rendered
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func percent(value, limit int) int {
	if limit <= 0 || value <= 0 {
		return 0
	}
	if value >= limit {
		return 100
	}
	return value * 100 / limit
}

// IsActive reports whether the navigation entry path matches current.
func IsActive(current, path string) bool {
	if path == "/" || path == "/admin" {
		return current == path
	}
	return current == path || strings.HasPrefix(current, path+"/")
}

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("dict needs key/value pairs")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", values[i])
		}
		m[key] = values[i+1]
	}
	return m, nil
}
