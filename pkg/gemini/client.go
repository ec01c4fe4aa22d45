// Package gemini wraps the Gemini generateContent API for single-shot
// completions.
package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/csbb5959/sales-challenge-tool/internal/resilience"
)

// Client generates text from a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config configures the Gemini client.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL.
	BaseURL string

	// HTTPClient replaces the default transport.
	HTTPClient *http.Client
}

type genaiClient struct {
	client *genai.Client
	model  string
}

// New creates a Client against the Gemini developer API.
func New(ctx context.Context, cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, eris.New("gemini: api key is required (OUTREACH_GEMINI_KEY)")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, eris.New("gemini: model is required (OUTREACH_GEMINI_MODEL)")
	}

	cc := &genai.ClientConfig{
		APIKey:     strings.TrimSpace(cfg.APIKey),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if u := strings.TrimSpace(cfg.BaseURL); u != "" {
		cc.HTTPOptions.BaseURL = u
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: new client")
	}
	return &genaiClient{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

func (c *genaiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		CandidateCount: 1,
	})
	if err != nil {
		return "", eris.Wrap(classifyErr(err), "gemini: generate content")
	}

	if resp.UsageMetadata != nil {
		zap.L().Info("llm usage",
			zap.String("provider", "gemini"),
			zap.String("model", c.model),
			zap.Int32("input_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("output_tokens", resp.UsageMetadata.CandidatesTokenCount),
		)
	}
	return resp.Text(), nil
}

// classifyErr marks rate limits, server errors and temporary network
// failures as transient.
func classifyErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return resilience.FromStatus(err, apiErr.Code)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return resilience.NewTransientError(err, 0)
	}
	return err
}
