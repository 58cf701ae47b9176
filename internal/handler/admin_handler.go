package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelmada/internal/service"
)

// ShowDashboard renders the admin overview.
func (a *API) ShowDashboard(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"title": "Dashboard",
		"stats": a.dashboard.Stats(),
	})
}

// ShowPostList renders every post, drafts included, with the list filter applied.
func (a *API) ShowPostList(c *gin.Context) {
	filter := listFilter(c)
	a.renderHTML(c, http.StatusOK, "admin_posts.html", gin.H{
		"title":      "Blog Posts",
		"posts":      a.posts.List(filter, true),
		"filter":     filter,
		"categories": service.CategoryOptions(),
	})
}

// NewPost stages a blank draft and opens the editor.
func (a *API) NewPost(c *gin.Context) {
	a.editor.BeginCreate(a.owner(c))
	c.Redirect(http.StatusFound, editorPath)
}

// EditPost stages a copy of an existing post and opens the editor.
func (a *API) EditPost(c *gin.Context) {
	id := c.Param("id")
	if _, err := a.editor.BeginEdit(a.owner(c), id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.flash(c, "Post not found.")
			c.Redirect(http.StatusFound, postsPath)
			return
		}
		c.Error(err)
		c.Redirect(http.StatusFound, postsPath)
		return
	}
	c.Redirect(http.StatusFound, editorPath)
}

// DeletePost removes a post. Unknown ids are ignored.
func (a *API) DeletePost(c *gin.Context) {
	id := c.Param("id")
	a.posts.Delete(id)
	a.requestLogger(c).WithField("post_id", id).Info("post deleted")
	a.flash(c, "Post deleted.")
	c.Redirect(http.StatusFound, postsPath)
}
