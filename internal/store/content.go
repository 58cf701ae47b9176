package store

import (
	"sync"

	"github.com/travelmada/internal/model"
)

// ContentStore keeps posts and site settings in memory. Nothing is persisted;
// a restart returns to the seed content. The store performs no validation.
type ContentStore struct {
	mu       sync.RWMutex
	posts    []model.BlogPost
	settings model.SiteSettings
}

// NewContentStore creates a store holding the given posts in order.
func NewContentStore(posts []model.BlogPost, settings model.SiteSettings) *ContentStore {
	s := &ContentStore{settings: cloneSettings(settings)}
	s.posts = make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		s.posts = append(s.posts, p.Clone())
	}
	return s
}

// ListPosts returns a copy of every post, most recently created first.
func (s *ContentStore) ListPosts() []model.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.BlogPost, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}

// Len reports how many posts the store holds.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// FindPostBySlug returns the first post whose slug matches.
func (s *ContentStore) FindPostBySlug(slug string) (model.BlogPost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return p.Clone(), true
		}
	}
	return model.BlogPost{}, false
}

// FindPostByID looks a post up by identifier.
func (s *ContentStore) FindPostByID(id string) (model.BlogPost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.posts[i].Clone(), true
	}
	return model.BlogPost{}, false
}

// CreatePost inserts post at the head of the collection.
func (s *ContentStore) CreatePost(post model.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append([]model.BlogPost{post.Clone()}, s.posts...)
}

// UpdatePost replaces the post with the same identifier. Unknown ids are ignored.
func (s *ContentStore) UpdatePost(post model.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(post.ID); i >= 0 {
		s.posts[i] = post.Clone()
	}
}

// DeletePost removes the post with the given identifier. Unknown ids are ignored.
func (s *ContentStore) DeletePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
	}
}

// GetSettings returns the current site settings.
func (s *ContentStore) GetSettings() model.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.settings)
}

// SetSettings replaces the site settings wholesale.
func (s *ContentStore) SetSettings(settings model.SiteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = cloneSettings(settings)
}

func (s *ContentStore) indexOf(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func cloneSettings(settings model.SiteSettings) model.SiteSettings {
	settings.Logo = settings.Logo.Clone()
	return settings
}
