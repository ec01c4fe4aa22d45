package sheet

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/csbb5959/sales-challenge-tool/pkg/notion"
)

// NotionTable exposes a Notion database as a sheet: the layout headers form
// the first row, followed by one row per page. Properties are matched to
// columns by header label. It can only append.
type NotionTable struct {
	client  notion.Client
	dbID    string
	headers []string
	title   int
}

// NewNotionTable creates a Table over a database. The name column holds the
// title property. The layout must append below a single header row.
func NewNotionTable(c notion.Client, dbID string, l *Layout) (*NotionTable, error) {
	if dbID == "" {
		return nil, eris.New("sheet: notion database ID is required (OUTREACH_SHEET_NOTION_DB)")
	}
	if l.Mode != ModeAppend || l.HeaderRows != 1 {
		return nil, eris.Errorf("sheet: layout %q cannot be used with notion (needs mode append and header_rows 1)", l.Name)
	}
	return &NotionTable{client: c, dbID: dbID, headers: l.Headers(), title: l.NameColumn}, nil
}

func (n *NotionTable) Column(ctx context.Context, col int) ([]string, error) {
	rows, err := n.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		if col < len(r) {
			out[i] = r[col]
		}
	}
	return out, nil
}

func (n *NotionTable) Rows(ctx context.Context) ([][]string, error) {
	pages, err := notion.QueryAll(ctx, n.client, n.dbID, nil)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(pages)+1)
	rows = append(rows, n.headers)
	for _, p := range pages {
		rows = append(rows, notion.RowValues(p, n.headers))
	}
	return rows, nil
}

func (n *NotionTable) Append(ctx context.Context, rows [][]string) error {
	for _, r := range rows {
		if err := notion.CreateRow(ctx, n.client, n.dbID, n.headers, n.title, r); err != nil {
			return err
		}
	}
	return nil
}

func (n *NotionTable) WriteAt(context.Context, int, [][]string) error {
	return ErrPositionalWrite
}
