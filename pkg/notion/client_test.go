package notion

import (
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csbb5959/sales-challenge-tool/internal/resilience"
)

type fakeDB struct {
	notionapi.DatabaseService
	queryFn func(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

func (f *fakeDB) Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return f.queryFn(ctx, id, req)
}

type fakePages struct {
	notionapi.PageService
	createFn func(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

func (f *fakePages) Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return f.createFn(ctx, req)
}

func TestQueryDatabase(t *testing.T) {
	c := &apiClient{db: &fakeDB{queryFn: func(_ context.Context, id notionapi.DatabaseID, _ *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
		assert.Equal(t, notionapi.DatabaseID("db-1"), id)
		return &notionapi.DatabaseQueryResponse{Results: []notionapi.Page{{ID: "p1"}}}, nil
	}}}

	resp, err := c.QueryDatabase(context.Background(), "db-1", &notionapi.DatabaseQueryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
}

func TestCreatePage_Throttled(t *testing.T) {
	c := &apiClient{pages: &fakePages{createFn: func(context.Context, *notionapi.PageCreateRequest) (*notionapi.Page, error) {
		return nil, &notionapi.Error{Status: 429, Code: "rate_limited", Message: "slow down"}
	}}}

	_, err := c.CreatePage(context.Background(), &notionapi.PageCreateRequest{})
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
	assert.Contains(t, err.Error(), "notion: create page")
}

func TestClassify_Permanent(t *testing.T) {
	err := classify(&notionapi.Error{Status: 400, Code: "validation_error", Message: "bad property"})
	assert.False(t, resilience.IsTransient(err))

	plain := errors.New("decode")
	assert.Same(t, plain, classify(plain))
}

func TestWithRateLimit(t *testing.T) {
	c := NewClient("secret", WithRateLimit(0)).(*apiClient)
	assert.Nil(t, c.limiter)

	c = NewClient("secret", WithRateLimit(5)).(*apiClient)
	require.NotNil(t, c.limiter)
	assert.InDelta(t, 5, float64(c.limiter.Limit()), 0.001)
}

func TestCancelledContextStopsWait(t *testing.T) {
	c := NewClient("secret", WithRateLimit(0.001)).(*apiClient)
	c.db = &fakeDB{queryFn: func(context.Context, notionapi.DatabaseID, *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
		t.Fatal("query should not run")
		return nil, nil
	}}
	// Drain the single burst token.
	c.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.QueryDatabase(ctx, "db", nil)
	assert.ErrorContains(t, err, "notion: rate limit")
}
