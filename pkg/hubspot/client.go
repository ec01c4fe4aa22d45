// Package hubspot provides a client for the HubSpot CRM v3 object APIs.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/csbb5959/sales-challenge-tool/internal/resilience"
)

const defaultBaseURL = "https://api.hubapi.com"

// Object types used by the outreach pipeline.
const (
	ObjectContacts  = "contacts"
	ObjectCompanies = "companies"
)

// Filter operators.
const (
	OperatorEQ            = "EQ"
	OperatorContainsToken = "CONTAINS_TOKEN"
)

// Client defines the HubSpot CRM operations used by the pipeline.
type Client interface {
	// Search runs a filtered search against an object type.
	Search(ctx context.Context, objectType string, req SearchRequest) (*ObjectPage, error)
	// List fetches one page of all objects of a type.
	List(ctx context.Context, objectType string, req ListRequest) (*ObjectPage, error)
}

// SearchRequest is the body of POST /crm/v3/objects/{type}/search.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit,omitempty"`
	After        string        `json:"after,omitempty"`
}

// FilterGroup is a conjunction of filters.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// Filter is a single property predicate.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// ListRequest holds the query parameters of GET /crm/v3/objects/{type}.
type ListRequest struct {
	Limit      int
	After      string
	Properties []string
}

// ObjectPage is a page of CRM objects.
type ObjectPage struct {
	Total   int      `json:"total"`
	Results []Object `json:"results"`
	Paging  *Paging  `json:"paging,omitempty"`
}

// NextAfter returns the cursor of the next page, or "" on the last page.
func (p *ObjectPage) NextAfter() string {
	if p == nil || p.Paging == nil || p.Paging.Next == nil {
		return ""
	}
	return p.Paging.Next.After
}

// Object is a single CRM record. Property values are returned as strings;
// null values decode to "".
type Object struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Paging holds the pagination cursor.
type Paging struct {
	Next *NextPage `json:"next,omitempty"`
}

// NextPage identifies the next page.
type NextPage struct {
	After string `json:"after"`
	Link  string `json:"link,omitempty"`
}

// APIError is returned for non-200 responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default rate limit of 9 req/s. A value <= 0
// disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a HubSpot client authenticated with a private app token.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: rate.NewLimiter(9, 9),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, objectType string, req SearchRequest) (*ObjectPage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: marshal search request")
	}

	endpoint := fmt.Sprintf("%s/crm/v3/objects/%s/search", c.baseURL, url.PathEscape(objectType))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var page ObjectPage
	if err := c.do(ctx, httpReq, &page); err != nil {
		return nil, eris.Wrapf(err, "hubspot: search %s", objectType)
	}
	return &page, nil
}

func (c *httpClient) List(ctx context.Context, objectType string, req ListRequest) (*ObjectPage, error) {
	q := url.Values{}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.After != "" {
		q.Set("after", req.After)
	}
	if len(req.Properties) > 0 {
		q.Set("properties", strings.Join(req.Properties, ","))
	}

	endpoint := fmt.Sprintf("%s/crm/v3/objects/%s?%s", c.baseURL, url.PathEscape(objectType), q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: create request")
	}

	var page ObjectPage
	if err := c.do(ctx, httpReq, &page); err != nil {
		return nil, eris.Wrapf(err, "hubspot: list %s", objectType)
	}
	return &page, nil
}

func (c *httpClient) do(ctx context.Context, req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "rate limit")
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return resilience.FromStatus(&APIError{StatusCode: resp.StatusCode, Body: string(body)}, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "unmarshal response")
	}
	return nil
}
