package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelmada/internal/service"
)

type aiTopicRequest struct {
	Topic string `json:"topic" binding:"required"`
	Tone  string `json:"tone"`
}

type aiContentRequest struct {
	Content string `json:"content" binding:"required"`
}

type aiPromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerateText writes a Markdown section about a topic.
func (a *API) GenerateText(c *gin.Context) {
	var req aiTopicRequest
	if !bindJSON(c, &req, "topic is required") {
		return
	}
	a.assistJSON(c, service.AIOpText, func(ctx context.Context) gin.H {
		return gin.H{"text": a.ai.GenerateText(ctx, req.Topic, req.Tone)}
	})
}

// GenerateTitles suggests post titles for a topic.
func (a *API) GenerateTitles(c *gin.Context) {
	var req aiTopicRequest
	if !bindJSON(c, &req, "topic is required") {
		return
	}
	a.assistJSON(c, service.AIOpTitles, func(ctx context.Context) gin.H {
		titles := a.ai.GenerateTitles(ctx, req.Topic)
		if titles == nil {
			titles = []string{}
		}
		return gin.H{"titles": titles}
	})
}

// GenerateOutline drafts a Markdown outline for a title.
func (a *API) GenerateOutline(c *gin.Context) {
	var req aiTopicRequest
	if !bindJSON(c, &req, "topic is required") {
		return
	}
	a.assistJSON(c, service.AIOpOutline, func(ctx context.Context) gin.H {
		return gin.H{"outline": a.ai.GenerateOutline(ctx, req.Topic)}
	})
}

// GenerateSEO proposes a meta title and description for post content.
func (a *API) GenerateSEO(c *gin.Context) {
	var req aiContentRequest
	if !bindJSON(c, &req, "content is required") {
		return
	}
	a.assistJSON(c, service.AIOpSEO, func(ctx context.Context) gin.H {
		seo := a.ai.GenerateSEO(ctx, req.Content)
		return gin.H{"title": seo.Title, "description": seo.Description}
	})
}

// GenerateImage renders an image for a prompt as a data URL.
func (a *API) GenerateImage(c *gin.Context) {
	var req aiPromptRequest
	if !bindJSON(c, &req, "prompt is required") {
		return
	}
	a.assistJSON(c, service.AIOpImage, func(ctx context.Context) gin.H {
		image, ok := a.ai.GenerateImage(ctx, req.Prompt)
		return gin.H{"ok": ok, "image": image.Src()}
	})
}

// AIStatus reports whether the assistant is configured and which of the
// session's operations are running.
func (a *API) AIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"enabled": a.ai.Enabled(),
		"tasks":   a.ai.Tasks().Status(a.owner(c)),
	})
}

// CancelAI aborts a running operation of the session.
func (a *API) CancelAI(c *gin.Context) {
	op, ok := service.ParseAIOperation(c.Param("op"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown operation")
		return
	}
	cancelled := a.ai.Tasks().Cancel(a.owner(c), op)
	if cancelled {
		a.requestLogger(c).WithField("operation", op).Info("ai task cancelled")
	}
	c.JSON(http.StatusOK, gin.H{"operation": op, "cancelled": cancelled})
}

func (a *API) assistJSON(c *gin.Context, op service.AIOperation, fn func(ctx context.Context) gin.H) {
	ctx, done, err := a.ai.Tasks().Start(c.Request.Context(), a.owner(c), op)
	if err != nil {
		if errors.Is(err, service.ErrTaskBusy) {
			respondError(c, http.StatusConflict, "operation already running")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "could not start operation")
		return
	}
	defer done()

	payload := fn(ctx)
	payload["enabled"] = a.ai.Enabled()
	c.JSON(http.StatusOK, payload)
}
