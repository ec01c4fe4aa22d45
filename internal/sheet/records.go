package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Record is one data row of the sheet.
type Record struct {
	// Row is the 1-based sheet row number.
	Row    int
	Values []string
}

// Get returns the cell at column col, or "".
func (r Record) Get(col int) string {
	if col < 0 || col >= len(r.Values) {
		return ""
	}
	return r.Values[col]
}

// Records is the data region of a sheet with cleaned headers.
type Records struct {
	Headers []string
	Rows    []Record
}

// Field returns the value of the named header in r.
func (rs Records) Field(r Record, header string) string {
	for i, h := range rs.Headers {
		if h == header {
			return r.Get(i)
		}
	}
	return ""
}

// Reader loads sheet records using a layout's header offset.
type Reader struct {
	table  Table
	layout *Layout
}

// NewReader creates a Reader.
func NewReader(t Table, l *Layout) *Reader {
	return &Reader{table: t, layout: l}
}

// Read returns every row below the header block. The header labels come
// from the last header row; rows are padded to the header width.
func (r *Reader) Read(ctx context.Context) (Records, error) {
	rows, err := r.table.Rows(ctx)
	if err != nil {
		return Records{}, eris.Wrap(err, "sheet: read rows")
	}
	return buildRecords(rows, r.layout.HeaderRows, r.layout.Width), nil
}

func buildRecords(rows [][]string, headerRows, width int) Records {
	var raw []string
	if headerRows > 0 && headerRows <= len(rows) {
		raw = rows[headerRows-1]
	}
	for _, row := range rows[min(headerRows, len(rows)):] {
		width = max(width, len(row))
	}

	out := Records{Headers: CleanHeaders(raw, width)}
	for i := headerRows; i < len(rows); i++ {
		values := make([]string, width)
		copy(values, rows[i])
		out.Rows = append(out.Rows, Record{Row: i + 1, Values: values})
	}
	return out
}

// CleanHeaders collapses whitespace, names blank headers Empty_<i> and
// suffixes repeated headers with _<n>. The result has exactly width entries.
func CleanHeaders(raw []string, width int) []string {
	out := make([]string, width)
	counts := make(map[string]int, width)
	for i := 0; i < width; i++ {
		h := ""
		if i < len(raw) {
			h = strings.Join(strings.Fields(raw[i]), " ")
		}
		if h == "" {
			h = fmt.Sprintf("Empty_%d", i)
		}
		counts[h]++
		if n := counts[h]; n > 1 {
			h = fmt.Sprintf("%s_%d", h, n)
		}
		out[i] = h
	}
	return out
}

// Filter selects records by case-insensitive substring. Empty terms match
// everything.
type Filter struct {
	Company string
	Name    string
	Email   string
}

// Apply returns the records with a non-empty company name that match every
// non-empty term.
func (f Filter) Apply(l *Layout, rs Records) []Record {
	company, contact, email := l.NameColumn, l.Index(FieldContactName), l.Index(FieldEmail)

	var out []Record
	for _, r := range rs.Rows {
		if strings.TrimSpace(r.Get(company)) == "" {
			continue
		}
		if !containsFold(r.Get(company), f.Company) ||
			!containsFold(r.Get(contact), f.Name) ||
			!containsFold(r.Get(email), f.Email) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsFold(s, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}
