package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/travelmada/internal/model"
)

// ErrAIAPIKeyMissing 表示未配置生成式服务所需的 API Key。
var ErrAIAPIKeyMissing = errors.New("api key is required")

// ErrAIEmptyResponse is returned when the model answers without usable parts.
var ErrAIEmptyResponse = errors.New("empty response from generative service")

// aiRequest is a single prompt sent to the generative backend.
type aiRequest struct {
	Prompt string
	// Schema, when set, asks for JSON output matching it.
	Schema *genai.Schema
}

// aiBackend is the narrow surface the assist service needs from the model
// provider. Tests replace it with a fake.
type aiBackend interface {
	GenerateText(ctx context.Context, req aiRequest) (string, error)
	GenerateImage(ctx context.Context, prompt string) (model.ImageRef, error)
	Close() error
}

// geminiClient talks to Google's generative service.
type geminiClient struct {
	apiKey     string
	textModel  string
	imageModel string

	mu     sync.Mutex
	client *genai.Client
}

func newGeminiClient(apiKey, textModel, imageModel string) *geminiClient {
	return &geminiClient{
		apiKey:     strings.TrimSpace(apiKey),
		textModel:  strings.TrimSpace(textModel),
		imageModel: strings.TrimSpace(imageModel),
	}
}

// connect creates the underlying client on first use so a missing credential
// never fails startup.
func (c *geminiClient) connect() (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, ErrAIAPIKeyMissing
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c.client = client
	return client, nil
}

func (c *geminiClient) GenerateText(ctx context.Context, req aiRequest) (string, error) {
	client, err := c.connect()
	if err != nil {
		return "", err
	}

	gm := client.GenerativeModel(c.textModel)
	if req.Schema != nil {
		gm.ResponseMIMEType = "application/json"
		gm.ResponseSchema = req.Schema
	}

	res, err := gm.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(res)
}

func (c *geminiClient) GenerateImage(ctx context.Context, prompt string) (model.ImageRef, error) {
	client, err := c.connect()
	if err != nil {
		return model.ImageRef{}, err
	}

	gm := client.GenerativeModel(c.imageModel)
	res, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return model.ImageRef{}, fmt.Errorf("generate image: %w", err)
	}
	return responseImage(res)
}

func (c *geminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// responseText concatenates the text parts of the first candidate.
func responseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", ErrAIEmptyResponse
	}
	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrAIEmptyResponse
	}
	return b.String(), nil
}

// responseImage returns the first inline image blob of any candidate.
func responseImage(res *genai.GenerateContentResponse) (model.ImageRef, error) {
	if res == nil {
		return model.ImageRef{}, ErrAIEmptyResponse
	}
	for _, cand := range res.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			blob, ok := part.(genai.Blob)
			if !ok || len(blob.Data) == 0 {
				continue
			}
			mimeType := blob.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return model.EmbeddedImage(mimeType, blob.Data), nil
		}
	}
	return model.ImageRef{}, ErrAIEmptyResponse
}
