package sheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

type mockSheets struct {
	getFn    func(ctx context.Context, a1 string) ([][]string, error)
	appendFn func(ctx context.Context, a1 string, rows [][]string) error
	updateFn func(ctx context.Context, a1 string, rows [][]string) error
}

func (m *mockSheets) Get(ctx context.Context, a1 string) ([][]string, error) {
	return m.getFn(ctx, a1)
}

func (m *mockSheets) Append(ctx context.Context, a1 string, rows [][]string) error {
	return m.appendFn(ctx, a1, rows)
}

func (m *mockSheets) Update(ctx context.Context, a1 string, rows [][]string) error {
	return m.updateFn(ctx, a1, rows)
}

func TestGoogleTable_GapWrite(t *testing.T) {
	l := mustLayout("team")
	var updated string
	c := &mockSheets{
		getFn: func(_ context.Context, a1 string) ([][]string, error) {
			assert.Equal(t, "'Team'!D:D", a1)
			return [][]string{{}, {}, {}, {}, {}, {"Unternehmensname"}, {"Old"}, {}, {"Old 2"}}, nil
		},
		updateFn: func(_ context.Context, a1 string, rows [][]string) error {
			updated = a1
			assert.Len(t, rows, 1)
			return nil
		},
	}

	res, err := NewWriter(NewGoogleTable(c, "Team", l.Width), l).WriteNew(context.Background(), []model.Candidate{{Name: "New"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, "'Team'!A8", updated)
}

func TestGoogleTable_Append(t *testing.T) {
	l := mustLayout("kontaktliste")
	c := &mockSheets{
		getFn: func(context.Context, string) ([][]string, error) { return [][]string{{"Unternehmen"}}, nil },
		appendFn: func(_ context.Context, a1 string, rows [][]string) error {
			assert.Equal(t, "'Kontaktliste all'!A:T", a1)
			assert.Equal(t, "Acme", rows[0][3])
			return nil
		},
	}

	res, err := NewWriter(NewGoogleTable(c, "Kontaktliste all", l.Width), l).WriteNew(context.Background(), []model.Candidate{{Name: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
}

func TestXLSXTable_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.xlsx")
	tbl := NewXLSXTable(path, "Kontaktliste all")
	ctx := context.Background()

	rows, err := tbl.Rows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, tbl.WriteAt(ctx, 0, [][]string{{"Gruppe", "Region", "Mitglied", "Unternehmen"}}))

	l := mustLayout("kontaktliste")
	w := NewWriter(tbl, l)
	res, err := w.WriteNew(ctx, []model.Candidate{{Name: "Acme GmbH", Region: "Tirol"}, {Name: "Beta AG"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	col, err := tbl.Column(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Unternehmen", "Acme GmbH", "Beta AG"}, col)

	res, err = w.WriteNew(ctx, []model.Candidate{{Name: "Beta AG"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta AG"}, res.Skipped)

	rs, err := NewReader(tbl, l).Read(ctx)
	require.NoError(t, err)
	require.Len(t, rs.Rows, 2)
	assert.Equal(t, "Tirol", rs.Rows[0].Get(1))
	assert.Equal(t, "Nein", rs.Rows[0].Get(13))
}

func TestLastUsedRow(t *testing.T) {
	assert.Equal(t, -1, lastUsedRow(nil))
	assert.Equal(t, 1, lastUsedRow([][]string{{"a"}, {"", "b"}, {"", ""}}))
}

type mockNotion struct {
	pages   []notionapi.Page
	created []*notionapi.PageCreateRequest
}

func (m *mockNotion) QueryDatabase(context.Context, string, *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return &notionapi.DatabaseQueryResponse{Results: m.pages}, nil
}

func (m *mockNotion) CreatePage(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	m.created = append(m.created, req)
	return &notionapi.Page{ID: "new"}, nil
}

func TestNotionTable(t *testing.T) {
	l := mustLayout("kontaktliste")
	nc := &mockNotion{pages: []notionapi.Page{{Properties: notionapi.Properties{
		"Unternehmen": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "Beta AG"}}},
	}}}}

	tbl, err := NewNotionTable(nc, "db", l)
	require.NoError(t, err)

	res, err := NewWriter(tbl, l).WriteNew(context.Background(), []model.Candidate{{Name: "Beta AG"}, {Name: "Gamma KG", Email: "g@gamma.at"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, []string{"Beta AG"}, res.Skipped)
	require.Len(t, nc.created, 1)

	title, ok := nc.created[0].Properties["Unternehmen"].(notionapi.TitleProperty)
	require.True(t, ok)
	assert.Equal(t, "Gamma KG", title.Title[0].Text.Content)

	assert.ErrorIs(t, tbl.WriteAt(context.Background(), 0, nil), ErrPositionalWrite)
}

func TestNewNotionTable_RejectsGapLayout(t *testing.T) {
	_, err := NewNotionTable(&mockNotion{}, "db", mustLayout("team"))
	assert.ErrorContains(t, err, "cannot be used with notion")

	_, err = NewNotionTable(&mockNotion{}, "", mustLayout("kontaktliste"))
	assert.ErrorContains(t, err, "OUTREACH_SHEET_NOTION_DB")
}
