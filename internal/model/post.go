package model

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the fixed set of topics a post can be filed under.
type Category string

const (
	CategoryBeaches   Category = "Beaches"
	CategoryWildlife  Category = "Wildlife"
	CategoryCulture   Category = "Culture"
	CategoryAdventure Category = "Adventure"
	CategoryFood      Category = "Food"
)

// CategoryAll is the pseudo category used by list filters to match everything.
const CategoryAll = "All"

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryBeaches,
	CategoryWildlife,
	CategoryCulture,
	CategoryAdventure,
	CategoryFood,
}

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Statuses lists the publication states in editor order.
var Statuses = []Status{StatusDraft, StatusPublished}

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStatus   = errors.New("unknown status")
)

// categoryAliases maps legacy labels found in imported content onto the enum.
var categoryAliases = map[string]Category{
	"nature":  CategoryWildlife,
	"beach":   CategoryBeaches,
	"food":    CategoryFood,
	"cuisine": CategoryFood,
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	for _, candidate := range Categories {
		if c == candidate {
			return true
		}
	}
	return false
}

// ParseCategory accepts any casing of a declared category and rejects everything else.
func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrUnknownCategory
	}
	// Casers keep state, so each call gets its own.
	candidate := Category(cases.Title(language.English).String(strings.ToLower(trimmed)))
	if !candidate.Valid() {
		return "", ErrUnknownCategory
	}
	return candidate, nil
}

// NormalizeCategory is the lenient variant of ParseCategory used for imported
// content: known aliases are mapped, anything else falls back to def.
func NormalizeCategory(raw string, def Category) Category {
	if c, err := ParseCategory(raw); err == nil {
		return c
	}
	if alias, ok := categoryAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return alias
	}
	return def
}

// ParseStatus accepts draft or published in any casing.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusPublished:
		return StatusPublished, nil
	}
	return "", ErrUnknownStatus
}

// BlogPost is a travel article. Slug is derived from the title and is not
// guaranteed to be unique.
type BlogPost struct {
	ID             string   `json:"id" validate:"required"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content"`
	Cover          ImageRef `json:"coverImage"`
	Author         string   `json:"author"`
	Date           string   `json:"date"`
	Category       Category `json:"category" validate:"required,oneof=Beaches Wildlife Culture Adventure Food"`
	ReadTime       string   `json:"readTime"`
	Tags           []string `json:"tags" validate:"dive,required"`
	SEOTitle       string   `json:"seoTitle,omitempty"`
	SEODescription string   `json:"seoDesc,omitempty"`
	Status         Status   `json:"status" validate:"required,oneof=draft published"`
}

// Published reports whether the post is visible on the public site.
func (p BlogPost) Published() bool {
	return p.Status == StatusPublished
}

// Clone returns a copy that shares no mutable state with p.
func (p BlogPost) Clone() BlogPost {
	clone := p
	if p.Tags != nil {
		clone.Tags = append([]string(nil), p.Tags...)
	}
	clone.Cover = p.Cover.Clone()
	return clone
}

// DeriveSlug lowercases the title and replaces each space with a hyphen.
// Punctuation is left untouched.
func DeriveSlug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
