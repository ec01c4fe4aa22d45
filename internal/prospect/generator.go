package prospect

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
	"github.com/csbb5959/sales-challenge-tool/pkg/anthropic"
	"github.com/csbb5959/sales-challenge-tool/pkg/gemini"
)

// Completer turns a prompt into raw model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnthropicCompleter completes prompts with the Messages API.
type AnthropicCompleter struct {
	Client    anthropic.Client
	Model     string
	MaxTokens int64
}

func (a *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.Client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.Model,
		MaxTokens: a.MaxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	resp.Usage.Log(a.Model, "prospect")
	return resp.Text(), nil
}

// GeminiCompleter completes prompts with generateContent.
type GeminiCompleter struct {
	Client gemini.Client
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return g.Client.Generate(ctx, prompt)
}

// Generator produces candidates from a prompt.
type Generator struct {
	completer Completer
}

// NewGenerator creates a Generator over c.
func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c}
}

// Generate returns the raw completion for prompt. A failed completion is the
// one model error that reaches the caller.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return "", eris.Wrap(err, "prospect: generate")
	}
	zap.L().Info("prospect: completion received",
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// Propose generates and parses in one step.
func (g *Generator) Propose(ctx context.Context, prompt string) ([]model.Candidate, string, error) {
	text, err := g.Generate(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	candidates := Parse(text)
	zap.L().Info("prospect: candidates parsed", zap.Int("count", len(candidates)))
	return candidates, text, nil
}
