package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelmada/internal/model"
	"github.com/travelmada/internal/service"
)

const (
	postsPath  = "/admin/posts"
	editorPath = "/admin/posts/editor"

	pickTitlePrefix  = "pick-title:"
	writeSectionTone = "inspiring and informative"
)

type draftForm struct {
	Title          string `form:"title"`
	Slug           string `form:"slug"`
	Excerpt        string `form:"excerpt"`
	Content        string `form:"content"`
	CoverURL       string `form:"cover_url"`
	Author         string `form:"author"`
	Date           string `form:"date"`
	Category       string `form:"category"`
	Status         string `form:"status"`
	ReadTime       string `form:"read_time"`
	Tags           string `form:"tags"`
	SEOTitle       string `form:"seo_title"`
	SEODescription string `form:"seo_description"`
	AIPrompt       string `form:"ai_prompt"`
}

func (f draftForm) toService() service.DraftForm {
	return service.DraftForm{
		Title:          f.Title,
		Slug:           f.Slug,
		Excerpt:        f.Excerpt,
		Content:        f.Content,
		CoverURL:       f.CoverURL,
		Author:         f.Author,
		Date:           f.Date,
		Category:       f.Category,
		Status:         f.Status,
		ReadTime:       f.ReadTime,
		Tags:           f.Tags,
		SEOTitle:       f.SEOTitle,
		SEODescription: f.SEODescription,
		AIPrompt:       f.AIPrompt,
	}
}

// ShowEditor renders the staged draft. Notices are shown once.
func (a *API) ShowEditor(c *gin.Context) {
	owner := a.owner(c)
	draft, ok := a.editor.Current(owner)
	if !ok {
		c.Redirect(http.StatusFound, postsPath)
		return
	}
	if draft.Notice != "" {
		_, _ = a.editor.Update(owner, func(d *service.Draft) { d.Notice = "" })
	}
	a.renderEditor(c, http.StatusOK, draft)
}

func (a *API) renderEditor(c *gin.Context, status int, draft service.Draft) {
	title := "Edit Post"
	if draft.IsNew {
		title = "New Post"
	}
	a.renderHTML(c, status, "admin_editor.html", gin.H{
		"title":      title,
		"draft":      draft,
		"categories": model.Categories,
		"statuses":   model.Statuses,
		"conflicts":  a.posts.SlugConflicts(draft.Post),
	})
}

// EditorAction applies the submitted form to the staged draft and then runs
// the requested action.
func (a *API) EditorAction(c *gin.Context) {
	owner := a.owner(c)
	action := strings.TrimSpace(c.PostForm("action"))

	if action == "cancel" {
		a.editor.Cancel(owner)
		c.Redirect(http.StatusFound, postsPath)
		return
	}

	var form draftForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(err)
	}
	draft, err := a.editor.Update(owner, func(d *service.Draft) { d.Apply(form.toService()) })
	if err != nil {
		if errors.Is(err, service.ErrNoDraft) {
			a.flash(c, "The editor session expired. Please open the post again.")
			c.Redirect(http.StatusFound, postsPath)
			return
		}
		c.Error(err)
		c.Redirect(http.StatusFound, postsPath)
		return
	}

	switch {
	case action == "save":
		a.saveDraft(c, owner)
		return
	case action == "regenerate-slug":
		_, err = a.editor.Update(owner, func(d *service.Draft) { d.RegenerateSlug() })
	case action == "clear-cover":
		_, err = a.editor.Update(owner, func(d *service.Draft) { d.SetCover(model.ImageRef{}) })
	case action == "upload-cover":
		err = a.uploadCover(c, owner)
	case strings.HasPrefix(action, pickTitlePrefix):
		index, convErr := strconv.Atoi(strings.TrimPrefix(action, pickTitlePrefix))
		_, err = a.editor.Update(owner, func(d *service.Draft) {
			if convErr != nil || !d.PickTitleSuggestion(index) {
				d.Notice = "That title suggestion is no longer available."
			}
		})
	case action == "titles":
		err = a.suggestTitles(c, owner, draft)
	case action == "outline":
		err = a.appendOutline(c, owner, draft)
	case action == "write-section":
		err = a.writeSection(c, owner, draft)
	case action == "seo":
		err = a.generateSEO(c, owner, draft)
	}
	if err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, editorPath)
}

func (a *API) saveDraft(c *gin.Context, owner string) {
	post, draft, err := a.editor.Save(owner)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPost) {
			a.renderEditor(c, http.StatusUnprocessableEntity, draft)
			return
		}
		if errors.Is(err, service.ErrNoDraft) {
			c.Redirect(http.StatusFound, postsPath)
			return
		}
		c.Error(err)
		a.renderEditor(c, http.StatusInternalServerError, draft)
		return
	}

	a.requestLogger(c).WithFields(logrus.Fields{
		"post_id": post.ID,
		"slug":    post.Slug,
		"status":  post.Status,
	}).Info("post saved")
	a.flash(c, "Post saved.")
	c.Redirect(http.StatusFound, postsPath)
}

func (a *API) uploadCover(c *gin.Context, owner string) error {
	file, err := c.FormFile("cover_file")
	if err != nil {
		return a.notice(owner, "Choose an image to upload.")
	}
	if file.Size > service.MaxCoverUploadSize {
		return a.notice(owner, "The image is larger than 10 MB.")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	cover, err := service.ProcessCoverImage(src)
	if err != nil {
		a.requestLogger(c).WithError(err).WithField("filename", file.Filename).Warn("cover upload rejected")
		switch {
		case errors.Is(err, service.ErrUnsupportedImage):
			return a.notice(owner, "That file is not a supported image.")
		case errors.Is(err, service.ErrImageTooLarge):
			return a.notice(owner, "The image is larger than 10 MB.")
		}
		return a.notice(owner, "The image could not be processed.")
	}
	_, err = a.editor.Update(owner, func(d *service.Draft) { d.SetCover(cover) })
	return err
}

func (a *API) suggestTitles(c *gin.Context, owner string, draft service.Draft) error {
	topic := strings.TrimSpace(draft.AIPrompt)
	if topic == "" {
		topic = strings.TrimSpace(draft.Post.Title)
	}
	if topic == "" {
		return a.notice(owner, "Please enter a topic in the AI prompt box to generate titles.")
	}

	var titles []string
	ran, err := a.runAssist(c, owner, service.AIOpTitles, func(ctx context.Context) {
		titles = a.ai.GenerateTitles(ctx, topic)
	})
	if !ran {
		return err
	}
	_, err = a.editor.Update(owner, func(d *service.Draft) {
		d.TitleSuggestions = titles
		if len(titles) == 0 {
			d.Notice = "No title suggestions are available right now."
		}
	})
	return err
}

func (a *API) appendOutline(c *gin.Context, owner string, draft service.Draft) error {
	title := strings.TrimSpace(draft.Post.Title)
	if title == "" {
		return a.notice(owner, "Add a title before generating an outline.")
	}

	var outline string
	ran, err := a.runAssist(c, owner, service.AIOpOutline, func(ctx context.Context) {
		outline = a.ai.GenerateOutline(ctx, title)
	})
	if !ran {
		return err
	}
	return a.appendGenerated(owner, outline)
}

func (a *API) writeSection(c *gin.Context, owner string, draft service.Draft) error {
	topic := strings.TrimSpace(draft.AIPrompt)
	if topic == "" {
		return a.notice(owner, "Enter a topic for the AI writer.")
	}

	var text string
	ran, err := a.runAssist(c, owner, service.AIOpText, func(ctx context.Context) {
		text = a.ai.GenerateText(ctx, topic, writeSectionTone)
	})
	if !ran {
		return err
	}
	if text == "" {
		return a.notice(owner, "The AI writer is not available right now.")
	}
	_, err = a.editor.Update(owner, func(d *service.Draft) {
		d.AppendContent(text)
		d.AIPrompt = ""
	})
	return err
}

func (a *API) generateSEO(c *gin.Context, owner string, draft service.Draft) error {
	if strings.TrimSpace(draft.Post.Content) == "" {
		return a.notice(owner, "Write some content before generating SEO metadata.")
	}

	var seo service.SEOResult
	ran, err := a.runAssist(c, owner, service.AIOpSEO, func(ctx context.Context) {
		seo = a.ai.GenerateSEO(ctx, draft.Post.Content)
	})
	if !ran {
		return err
	}
	if seo.Title == "" && seo.Description == "" {
		return a.notice(owner, "SEO suggestions are not available right now.")
	}
	_, err = a.editor.Update(owner, func(d *service.Draft) { d.ApplySEO(seo) })
	return err
}

func (a *API) appendGenerated(owner, text string) error {
	if text == "" {
		return a.notice(owner, "The AI assistant is not available right now.")
	}
	_, err := a.editor.Update(owner, func(d *service.Draft) { d.AppendContent(text) })
	return err
}

// runAssist runs fn as the tracked AI task op of owner and reports whether
// it ran. A busy task is reported on the draft instead of starting a second call.
func (a *API) runAssist(c *gin.Context, owner string, op service.AIOperation, fn func(ctx context.Context)) (bool, error) {
	ctx, done, err := a.ai.Tasks().Start(c.Request.Context(), owner, op)
	if err != nil {
		if errors.Is(err, service.ErrTaskBusy) {
			return false, a.notice(owner, "That AI assistant is already running.")
		}
		return false, err
	}
	defer done()
	fn(ctx)
	return true, nil
}

func (a *API) notice(owner, message string) error {
	_, err := a.editor.Update(owner, func(d *service.Draft) { d.Notice = message })
	return err
}
