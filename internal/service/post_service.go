package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/travelmada/internal/model"
	"github.com/travelmada/internal/store"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidPost  = errors.New("post is invalid")
)

// ValidationError lists the fields that failed boundary validation. It
// unwraps to the sentinel of the rejected entity.
type ValidationError struct {
	Err    error
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HasField reports whether name failed validation.
func (e *ValidationError) HasField(name string) bool {
	for _, field := range e.Fields {
		if field == name {
			return true
		}
	}
	return false
}

// validateStruct runs validate over v and converts field failures into a
// ValidationError wrapping sentinel.
func validateStruct(validate *validator.Validate, v any, sentinel error) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}
	verr := &ValidationError{Err: sentinel}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}

// PostService wraps the content store with validation and list queries.
type PostService struct {
	store    *store.ContentStore
	validate *validator.Validate
}

// NewPostService creates a PostService instance.
func NewPostService(contentStore *store.ContentStore, validate *validator.Validate) *PostService {
	if contentStore == nil {
		panic("service: NewPostService requires a content store")
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &PostService{store: contentStore, validate: validate}
}

// NewValidator returns the validator shared by every boundary check.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// ListAll returns every post, newest first, drafts included.
func (s *PostService) ListAll() []model.BlogPost {
	return s.store.ListPosts()
}

// List applies filter to all posts. Drafts are skipped unless includeDrafts is set.
func (s *PostService) List(filter PostFilter, includeDrafts bool) []model.BlogPost {
	posts := s.store.ListPosts()
	if !includeDrafts {
		posts = PublishedOnly(posts)
	}
	return FilterPosts(posts, filter)
}

// Latest returns up to n published posts.
func (s *PostService) Latest(n int) []model.BlogPost {
	posts := PublishedOnly(s.store.ListPosts())
	if n >= 0 && len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

// GetPublishedBySlug returns the first post with slug, hiding drafts.
func (s *PostService) GetPublishedBySlug(slug string) (model.BlogPost, error) {
	post, ok := s.store.FindPostBySlug(slug)
	if !ok || !post.Published() {
		return model.BlogPost{}, ErrPostNotFound
	}
	return post, nil
}

// Get fetches a post by id.
func (s *PostService) Get(id string) (model.BlogPost, error) {
	post, ok := s.store.FindPostByID(id)
	if !ok {
		return model.BlogPost{}, ErrPostNotFound
	}
	return post, nil
}

// Validate checks the enum and identifier constraints of a post.
func (s *PostService) Validate(post model.BlogPost) error {
	return validateStruct(s.validate, post, ErrInvalidPost)
}

// Save validates post then updates it when the id exists, otherwise inserts it
// at the head of the list. It reports whether the post was created.
func (s *PostService) Save(post model.BlogPost) (created bool, err error) {
	if err := s.Validate(post); err != nil {
		return false, err
	}
	if _, exists := s.store.FindPostByID(post.ID); exists {
		s.store.UpdatePost(post)
		return false, nil
	}
	s.store.CreatePost(post)
	return true, nil
}

// Delete removes a post by id. Missing ids are ignored.
func (s *PostService) Delete(id string) {
	s.store.DeletePost(id)
}

// SlugConflicts returns the other posts sharing post's slug.
func (s *PostService) SlugConflicts(post model.BlogPost) []model.BlogPost {
	if post.Slug == "" {
		return nil
	}
	var conflicts []model.BlogPost
	for _, other := range s.store.ListPosts() {
		if other.ID != post.ID && other.Slug == post.Slug {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}
