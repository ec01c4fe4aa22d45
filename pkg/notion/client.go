// Package notion exposes a Notion database as rows of plain-text cells.
package notion

import (
	"context"
	"errors"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/csbb5959/sales-challenge-tool/internal/resilience"
)

// Client is the part of the Notion API a database-backed table needs.
type Client interface {
	QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// ClientOption configures NewClient.
type ClientOption func(*apiClient)

// WithRateLimit sets requests per second. Zero or less disables throttling.
func WithRateLimit(rps float64) ClientOption {
	return func(c *apiClient) {
		c.limiter = nil
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

type apiClient struct {
	db      notionapi.DatabaseService
	pages   notionapi.PageService
	limiter *rate.Limiter
}

// NewClient authenticates with an integration token. Calls are limited to
// 3 req/s, Notion's documented average, unless overridden.
func NewClient(token string, opts ...ClientOption) Client {
	api := notionapi.NewClient(notionapi.Token(token))
	c := &apiClient{
		db:      api.Database,
		pages:   api.Page,
		limiter: rate.NewLimiter(3, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *apiClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return limited(ctx, c.limiter, "notion: query database "+dbID, func() (*notionapi.DatabaseQueryResponse, error) {
		return c.db.Query(ctx, notionapi.DatabaseID(dbID), req)
	})
}

func (c *apiClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return limited(ctx, c.limiter, "notion: create page", func() (*notionapi.Page, error) {
		return c.pages.Create(ctx, req)
	})
}

// limited waits for the limiter, runs fn and wraps a failure with msg.
func limited[T any](ctx context.Context, l *rate.Limiter, msg string, fn func() (T, error)) (T, error) {
	var zero T
	if l != nil {
		if err := l.Wait(ctx); err != nil {
			return zero, eris.Wrap(err, "notion: rate limit")
		}
	}
	v, err := fn()
	if err != nil {
		return zero, eris.Wrap(classify(err), msg)
	}
	return v, nil
}

// classify tags throttling and server errors from the API as transient.
func classify(err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return resilience.FromStatus(err, apiErr.Status)
	}
	return err
}
