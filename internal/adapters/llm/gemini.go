package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/PabloGalante/wellbeing-insights/internal/observability"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

type GeminiOption func(*genai.ClientConfig)

// WithBaseURL sends requests to baseURL instead of the public Gemini endpoint
// (a proxy or a test server). Empty keeps the default.
func WithBaseURL(baseURL string) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = baseURL
	}
}

// NewGeminiClient creates an InsightGenerator backed by the Gemini API.
// It does not reach the network; a bad key surfaces on the first call.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if modelName == "" {
		return nil, errors.New("gemini model name is empty")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Generate implements domain.InsightGenerator. The prompt is sent as a single
// user turn with the model's default generation settings.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("gemini call failed",
			"model", g.modelName,
			"upstream_status", UpstreamStatus(err),
			"rate_limited", IsRateLimited(err),
		)
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}

	return text, nil
}

// UpstreamStatus extracts the HTTP status Gemini answered with, if err
// carries one. It returns 0 otherwise.
func UpstreamStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

// IsRateLimited reports whether Gemini rejected the call for quota reasons.
func IsRateLimited(err error) bool {
	return UpstreamStatus(err) == http.StatusTooManyRequests
}
