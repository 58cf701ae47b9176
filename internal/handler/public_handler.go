package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/travelmada/internal/service"
)

const homeLatestPosts = 3

type contactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

func listFilter(c *gin.Context) service.PostFilter {
	return service.PostFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("q")),
	}
}

// ShowHome renders the hero and the latest published posts.
func (a *API) ShowHome(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"posts": a.posts.Latest(homeLatestPosts),
	})
}

// ShowBlogList renders the published posts matching the category and search query.
func (a *API) ShowBlogList(c *gin.Context) {
	filter := listFilter(c)
	a.renderHTML(c, http.StatusOK, "blog_list.html", gin.H{
		"title":      "Blog",
		"posts":      a.posts.List(filter, false),
		"filter":     filter,
		"categories": service.CategoryOptions(),
	})
}

// ShowBlogPost renders one published post. Unknown slugs and drafts get the
// not found page.
func (a *API) ShowBlogPost(c *gin.Context) {
	post, err := a.posts.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
				"title":   "Post not found",
				"message": "Post not found",
			})
			return
		}
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "not_found.html", gin.H{"message": "Something went wrong"})
		return
	}

	description := post.SEODescription
	if description == "" {
		description = post.Excerpt
	}
	title := post.SEOTitle
	if title == "" {
		title = post.Title
	}
	a.renderHTML(c, http.StatusOK, "blog_post.html", gin.H{
		"title":           title,
		"metaDescription": description,
		"post":            post,
	})
}

// ShowDestinations renders the static region cards.
func (a *API) ShowDestinations(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "destinations.html", gin.H{
		"title":        "Destinations",
		"destinations": a.destinations,
	})
}

// ShowAbout renders the about page.
func (a *API) ShowAbout(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{"title": "About"})
}

// ShowContact renders the empty contact form.
func (a *API) ShowContact(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title": "Contact",
		"form":  contactForm{},
	})
}

// SubmitContact stores a contact message and shows the thank-you state.
func (a *API) SubmitContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderContactError(c, form)
		return
	}

	msg, err := a.contact.Submit(service.ContactInput{Name: form.Name, Email: form.Email, Message: form.Message})
	if err != nil {
		if errors.Is(err, service.ErrInvalidContact) {
			a.renderContactError(c, form)
			return
		}
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "contact.html", gin.H{
			"title": "Contact",
			"form":  form,
			"error": "Your message could not be sent. Please try again.",
		})
		return
	}

	a.requestLogger(c).WithField("message_id", msg.ID).Info("contact message received")
	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title":     "Contact",
		"form":      contactForm{},
		"submitted": true,
	})
}

func (a *API) renderContactError(c *gin.Context, form contactForm) {
	a.renderHTML(c, http.StatusBadRequest, "contact.html", gin.H{
		"title": "Contact",
		"form":  form,
		"error": "Please enter your name, a valid email address and a message.",
	})
}

// RenderContactLimited answers a rate limited contact submission.
func (a *API) RenderContactLimited(c *gin.Context) {
	a.renderHTML(c, http.StatusTooManyRequests, "contact.html", gin.H{
		"title": "Contact",
		"form":  contactForm{},
		"error": "You are sending messages too quickly. Please wait a minute and try again.",
	})
}

// Health reports liveness for load balancers.
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"posts":  a.store.Len(),
	})
}
