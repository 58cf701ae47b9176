package service

import (
	"strings"

	"github.com/travelmada/internal/model"
)

// PostFilter describes the category and free-text criteria of a post list.
type PostFilter struct {
	// Category is a category name or "All"; empty behaves like "All".
	Category string
	Search   string
}

// Active reports whether the filter narrows the list at all.
func (f PostFilter) Active() bool {
	return !f.matchesAllCategories() || f.Search != ""
}

func (f PostFilter) matchesAllCategories() bool {
	return f.Category == "" || f.Category == model.CategoryAll
}

// FilterPosts keeps the posts matching both the category and the search term.
// The search is a case-insensitive substring match on title or excerpt.
func FilterPosts(posts []model.BlogPost, filter PostFilter) []model.BlogPost {
	search := strings.ToLower(filter.Search)
	filtered := make([]model.BlogPost, 0, len(posts))
	for _, post := range posts {
		if !filter.matchesAllCategories() && string(post.Category) != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(post.Title), search) &&
			!strings.Contains(strings.ToLower(post.Excerpt), search) {
			continue
		}
		filtered = append(filtered, post)
	}
	return filtered
}

// PublishedOnly drops drafts.
func PublishedOnly(posts []model.BlogPost) []model.BlogPost {
	published := make([]model.BlogPost, 0, len(posts))
	for _, post := range posts {
		if post.Published() {
			published = append(published, post)
		}
	}
	return published
}

// CategoryOptions returns the filter choices shown above post lists.
func CategoryOptions() []string {
	options := make([]string, 0, len(model.Categories)+1)
	options = append(options, model.CategoryAll)
	for _, c := range model.Categories {
		options = append(options, string(c))
	}
	return options
}
