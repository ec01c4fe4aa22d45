// Package gsheets wraps the Google Sheets v4 values API.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/csbb5959/sales-challenge-tool/internal/resilience"
)

// Client reads and writes cell values of one spreadsheet.
type Client interface {
	// Get returns the formatted values of an A1 range. Trailing empty rows
	// and cells are omitted by the API.
	Get(ctx context.Context, a1 string) ([][]string, error)
	// Append adds rows after the last table row of the range.
	Append(ctx context.Context, a1 string, rows [][]string) error
	// Update overwrites the cells starting at the top-left of the range.
	Update(ctx context.Context, a1 string, rows [][]string) error
}

// Option configures the client.
type Option func(*settings)

type settings struct {
	opts []option.ClientOption
}

// WithCredentialsFile authenticates with a service-account JSON key.
func WithCredentialsFile(path string) Option {
	return func(s *settings) {
		s.opts = append(s.opts, option.WithCredentialsFile(path))
	}
}

// WithEndpoint overrides the API endpoint and disables authentication.
func WithEndpoint(url string) Option {
	return func(s *settings) {
		s.opts = append(s.opts, option.WithEndpoint(url), option.WithoutAuthentication())
	}
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		s.opts = append(s.opts, option.WithHTTPClient(hc))
	}
}

type sheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New creates a Client for spreadsheetID.
func New(ctx context.Context, spreadsheetID string, opts ...Option) (Client, error) {
	if spreadsheetID == "" {
		return nil, eris.New("gsheets: spreadsheet ID is required (OUTREACH_SHEET_SPREADSHEET_ID)")
	}
	s := &settings{opts: []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}}
	for _, o := range opts {
		o(s)
	}

	svc, err := sheets.NewService(ctx, s.opts...)
	if err != nil {
		return nil, eris.Wrap(err, "gsheets: new service")
	}
	return &sheetsClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *sheetsClient) Get(ctx context.Context, a1 string) ([][]string, error) {
	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, eris.Wrap(classify(err), fmt.Sprintf("gsheets: get %s", a1))
	}
	return toStrings(vr.Values), nil
}

func (c *sheetsClient) Append(ctx context.Context, a1 string, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1, &sheets.ValueRange{Values: toValues(rows)}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return eris.Wrap(classify(err), fmt.Sprintf("gsheets: append %s", a1))
	}
	return nil
}

func (c *sheetsClient) Update(ctx context.Context, a1 string, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1, &sheets.ValueRange{Values: toValues(rows)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return eris.Wrap(classify(err), fmt.Sprintf("gsheets: update %s", a1))
	}
	return nil
}

func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return resilience.FromStatus(err, gerr.Code)
	}
	return err
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}
