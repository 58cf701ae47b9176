package service

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/travelmada/internal/model"
)

// ErrNoDraft is returned when an editor action arrives without a staged draft.
var ErrNoDraft = errors.New("no draft is being edited")

const (
	defaultDraftAuthor   = "Travel Mada Team"
	defaultDraftReadTime = "5 min"
	defaultDraftCover    = "https://images.unsplash.com/photo-1570701564993-e00652af8aa7?q=80&w=2070&auto=format&fit=crop"
	// DisplayDateLayout is the layout of BlogPost.Date.
	DisplayDateLayout = "Jan 02, 2006"
)

// Draft is a staged copy of a post. Changes stay here until the editor saves.
type Draft struct {
	Post  model.BlogPost
	IsNew bool
	// SlugPinned is set once the slug is edited by hand; title edits then stop
	// rewriting it until RegenerateSlug is used.
	SlugPinned       bool
	AIPrompt         string
	TitleSuggestions []string
	Notice           string
	Errors           []string
}

// SetTitle updates the title and, unless pinned, derives the slug from it.
func (d *Draft) SetTitle(title string) {
	d.Post.Title = title
	if !d.SlugPinned {
		d.Post.Slug = model.DeriveSlug(title)
	}
}

// SetSlug records a manual slug edit.
func (d *Draft) SetSlug(slug string) {
	d.Post.Slug = slug
	d.SlugPinned = true
}

// RegenerateSlug derives the slug from the current title and unpins it.
func (d *Draft) RegenerateSlug() {
	d.SlugPinned = false
	d.Post.Slug = model.DeriveSlug(d.Post.Title)
}

// SetCover replaces the cover image.
func (d *Draft) SetCover(ref model.ImageRef) {
	d.Post.Cover = ref
}

// AppendContent adds generated text below the existing body.
func (d *Draft) AppendContent(text string) {
	if text == "" {
		return
	}
	d.Post.Content = d.Post.Content + "\n\n" + text
}

// ApplySEO copies generated metadata into the post.
func (d *Draft) ApplySEO(seo SEOResult) {
	d.Post.SEOTitle = seo.Title
	d.Post.SEODescription = seo.Description
}

// PickTitleSuggestion uses the i-th generated title as the post title.
func (d *Draft) PickTitleSuggestion(i int) bool {
	if i < 0 || i >= len(d.TitleSuggestions) {
		return false
	}
	d.SetTitle(d.TitleSuggestions[i])
	d.TitleSuggestions = nil
	return true
}

func (d Draft) clone() Draft {
	d.Post = d.Post.Clone()
	d.TitleSuggestions = append([]string(nil), d.TitleSuggestions...)
	d.Errors = append([]string(nil), d.Errors...)
	return d
}

// DraftForm carries the editable fields submitted by the editor page.
type DraftForm struct {
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	CoverURL       string
	Author         string
	Date           string
	Category       string
	Status         string
	ReadTime       string
	Tags           string
	SEOTitle       string
	SEODescription string
	AIPrompt       string
}

// Apply copies the submitted fields into the draft. A slug that differs from
// the staged one counts as a manual edit.
func (d *Draft) Apply(form DraftForm) {
	d.Errors = nil

	if form.Slug != d.Post.Slug {
		d.SetSlug(form.Slug)
	}
	if form.Title != d.Post.Title {
		d.SetTitle(form.Title)
	}

	d.Post.Excerpt = form.Excerpt
	d.Post.Content = form.Content
	d.Post.Author = form.Author
	d.Post.Date = form.Date
	d.Post.ReadTime = form.ReadTime
	d.Post.SEOTitle = form.SEOTitle
	d.Post.SEODescription = form.SEODescription
	d.Post.Tags = splitTags(form.Tags)
	d.AIPrompt = form.AIPrompt

	if category, err := model.ParseCategory(form.Category); err == nil {
		d.Post.Category = category
	} else {
		d.Post.Category = model.Category(strings.TrimSpace(form.Category))
	}
	if status, err := model.ParseStatus(form.Status); err == nil {
		d.Post.Status = status
	} else {
		d.Post.Status = model.Status(strings.TrimSpace(form.Status))
	}

	// Embedded covers are not echoed back into the URL field.
	if strings.TrimSpace(form.CoverURL) == "" && d.Post.Cover.IsEmbedded() {
		return
	}
	cover, err := model.ParseImageRef(form.CoverURL)
	if err != nil {
		d.Errors = append(d.Errors, "Cover image: "+err.Error())
		return
	}
	d.Post.Cover = cover
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// EditorService stages at most one draft per editor session and commits it
// to the content store only on Save.
type EditorService struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	posts  *PostService
	now    func() time.Time
}

// NewEditorService creates an EditorService writing through posts.
func NewEditorService(posts *PostService) *EditorService {
	if posts == nil {
		panic("service: NewEditorService requires a post service")
	}
	return &EditorService{
		drafts: make(map[string]*Draft),
		posts:  posts,
		now:    time.Now,
	}
}

// SetClock overrides the time source, mainly for tests.
func (e *EditorService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	e.now = now
}

// NewPostID returns a lexically sortable identifier derived from t.
func NewPostID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// BeginCreate stages a blank draft with a fresh identifier.
func (e *EditorService) BeginCreate(owner string) Draft {
	now := e.now()
	draft := &Draft{
		IsNew: true,
		Post: model.BlogPost{
			ID:       NewPostID(now),
			Cover:    model.RemoteImage(defaultDraftCover),
			Author:   defaultDraftAuthor,
			Date:     now.Format(DisplayDateLayout),
			Category: model.CategoryAdventure,
			ReadTime: defaultDraftReadTime,
			Tags:     []string{},
			Status:   model.StatusDraft,
		},
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.drafts[owner] = draft
	return draft.clone()
}

// BeginEdit stages a copy of an existing post.
func (e *EditorService) BeginEdit(owner, id string) (Draft, error) {
	post, err := e.posts.Get(id)
	if err != nil {
		return Draft{}, err
	}
	draft := &Draft{Post: post}
	// Hand-written slugs are kept until the editor explicitly regenerates them.
	draft.SlugPinned = post.Slug != model.DeriveSlug(post.Title)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.drafts[owner] = draft
	return draft.clone(), nil
}

// Current returns the staged draft of owner.
func (e *EditorService) Current(owner string) (Draft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft, ok := e.drafts[owner]
	if !ok {
		return Draft{}, false
	}
	return draft.clone(), true
}

// Update mutates the staged draft of owner under the workbench lock.
func (e *EditorService) Update(owner string, fn func(*Draft)) (Draft, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft, ok := e.drafts[owner]
	if !ok {
		return Draft{}, ErrNoDraft
	}
	fn(draft)
	return draft.clone(), nil
}

// Save commits the staged draft. On validation failure the draft is kept and
// the returned Draft carries the errors.
func (e *EditorService) Save(owner string) (model.BlogPost, Draft, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft, ok := e.drafts[owner]
	if !ok {
		return model.BlogPost{}, Draft{}, ErrNoDraft
	}
	if len(draft.Errors) > 0 {
		return model.BlogPost{}, draft.clone(), ErrInvalidPost
	}

	if _, err := e.posts.Save(draft.Post); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			draft.Errors = append(draft.Errors[:0], "Invalid fields: "+strings.Join(verr.Fields, ", "))
		}
		return model.BlogPost{}, draft.clone(), err
	}

	saved := draft.Post.Clone()
	delete(e.drafts, owner)
	return saved, Draft{}, nil
}

// Cancel discards the staged draft of owner without touching the store.
func (e *EditorService) Cancel(owner string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.drafts, owner)
}
