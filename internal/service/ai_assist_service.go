package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/travelmada/internal/model"
)

var aiJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultTone              = "inspiring"
	maxSEOContentRuneCount   = 1000
	titleSuggestionCount     = 5
	defaultAssistTaskTimeout = 60 * time.Second
)

// SEOResult holds generated search metadata. The zero value is the neutral result.
type SEOResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AIAssistOptions configures the assist service.
type AIAssistOptions struct {
	APIKey     string
	TextModel  string
	ImageModel string
	// Timeout bounds every tracked task.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// AIAssistService offers best-effort writing and image help. Every operation
// is fail-soft: a missing credential or a service failure yields the neutral
// result and a log line, never an error.
type AIAssistService struct {
	backend aiBackend
	enabled bool
	tasks   *TaskTracker
	logger  logrus.FieldLogger
}

// NewAIAssistService creates an assist service backed by Gemini.
func NewAIAssistService(opts AIAssistOptions) *AIAssistService {
	backend := newGeminiClient(opts.APIKey, opts.TextModel, opts.ImageModel)
	return newAIAssistService(backend, strings.TrimSpace(opts.APIKey) != "", opts)
}

func newAIAssistService(backend aiBackend, enabled bool, opts AIAssistOptions) *AIAssistService {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAssistTaskTimeout
	}
	return &AIAssistService{
		backend: backend,
		enabled: enabled,
		tasks:   NewTaskTracker(timeout),
		logger:  logger.WithField("component", "ai_assist"),
	}
}

// Enabled reports whether a credential is configured.
func (s *AIAssistService) Enabled() bool {
	return s.enabled
}

// Tasks exposes the busy/idle tracker shared by all callers.
func (s *AIAssistService) Tasks() *TaskTracker {
	return s.tasks
}

// Close releases the underlying client.
func (s *AIAssistService) Close() error {
	return s.backend.Close()
}

// GenerateText writes a Markdown blog section about topic.
func (s *AIAssistService) GenerateText(ctx context.Context, topic, tone string) string {
	if strings.TrimSpace(tone) == "" {
		tone = defaultTone
	}
	prompt := fmt.Sprintf("Write a clear, engaging travel blog section about %q. Tone: %s. Keep it under 300 words. Format with Markdown.", topic, tone)
	text, ok := s.text(ctx, AIOpText, aiRequest{Prompt: prompt})
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// GenerateTitles suggests five catchy titles for topic.
func (s *AIAssistService) GenerateTitles(ctx context.Context, topic string) []string {
	prompt := fmt.Sprintf("Generate %d catchy, SEO-friendly travel blog titles for the topic: %q. Return as a JSON array of strings.", titleSuggestionCount, topic)
	text, ok := s.text(ctx, AIOpTitles, aiRequest{
		Prompt: prompt,
		Schema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	})
	if !ok {
		return nil
	}

	var titles []string
	if err := aiJSON.UnmarshalFromString(text, &titles); err != nil {
		s.logFailure(AIOpTitles, fmt.Errorf("decode titles: %w", err))
		return nil
	}
	cleaned := titles[:0]
	for _, title := range titles {
		if title = strings.TrimSpace(title); title != "" {
			cleaned = append(cleaned, title)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// GenerateOutline drafts a Markdown outline for topic.
func (s *AIAssistService) GenerateOutline(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf("Create a detailed blog post outline for %q. Use Markdown format with Introduction, H2 headings, and bullet points for sub-topics.", topic)
	text, ok := s.text(ctx, AIOpOutline, aiRequest{Prompt: prompt})
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// GenerateSEO derives a search title and meta description from the first
// thousand characters of content.
func (s *AIAssistService) GenerateSEO(ctx context.Context, content string) SEOResult {
	prompt := "Based on the following blog content, generate an SEO-friendly Title (max 60 chars) and Meta Description (max 160 chars). " +
		`Return STRICT JSON format: { "title": "...", "description": "..." }` +
		"\n\n Content: " + truncateRunes(content, maxSEOContentRuneCount) + "..."
	text, ok := s.text(ctx, AIOpSEO, aiRequest{
		Prompt: prompt,
		Schema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":       {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
			},
		},
	})
	if !ok {
		return SEOResult{}
	}

	var result SEOResult
	if err := aiJSON.UnmarshalFromString(text, &result); err != nil {
		s.logFailure(AIOpSEO, fmt.Errorf("decode seo: %w", err))
		return SEOResult{}
	}
	result.Title = strings.TrimSpace(result.Title)
	result.Description = strings.TrimSpace(result.Description)
	return result
}

// GenerateImage renders prompt into an embedded image.
func (s *AIAssistService) GenerateImage(ctx context.Context, prompt string) (model.ImageRef, bool) {
	return s.image(ctx, AIOpImage, prompt)
}

// GenerateLogo asks for a minimalist logo of the site.
func (s *AIAssistService) GenerateLogo(ctx context.Context, siteName, concept string) (model.ImageRef, bool) {
	if strings.TrimSpace(siteName) == "" {
		siteName = model.DefaultSiteName
	}
	prompt := fmt.Sprintf("Design a modern, minimalist logo for a travel brand named '%s'. Concept: %s. Simple vector style, flat colors, white background.", siteName, concept)
	return s.image(ctx, AIOpLogo, prompt)
}

func (s *AIAssistService) text(ctx context.Context, op AIOperation, req aiRequest) (string, bool) {
	if !s.ready(op) {
		return "", false
	}
	logAIExchange(s.logger, string(op), "prompt", req.Prompt)

	text, err := s.backend.GenerateText(ctx, req)
	if err != nil {
		s.logFailure(op, err)
		return "", false
	}
	logAIExchange(s.logger, string(op), "response", text)
	return text, true
}

func (s *AIAssistService) image(ctx context.Context, op AIOperation, prompt string) (model.ImageRef, bool) {
	if !s.ready(op) {
		return model.ImageRef{}, false
	}
	logAIExchange(s.logger, string(op), "prompt", prompt)

	ref, err := s.backend.GenerateImage(ctx, prompt)
	if err != nil {
		s.logFailure(op, err)
		return model.ImageRef{}, false
	}
	if ref.IsZero() {
		s.logFailure(op, ErrAIEmptyResponse)
		return model.ImageRef{}, false
	}
	s.logger.WithFields(logrus.Fields{"ai_op": op, "mime": ref.MIMEType, "bytes": ref.Size()}).Debug("image generated")
	return ref, true
}

func (s *AIAssistService) ready(op AIOperation) bool {
	if s.enabled {
		return true
	}
	s.logger.WithField("ai_op", op).Warn("API_KEY is missing, AI features are disabled")
	return false
}

func (s *AIAssistService) logFailure(op AIOperation, err error) {
	entry := s.logger.WithField("ai_op", op).WithError(err)
	switch {
	case errors.Is(err, context.Canceled):
		entry.Info("ai request cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		entry.Warn("ai request timed out")
	default:
		entry.Error("ai request failed")
	}
}
