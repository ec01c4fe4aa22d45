package sheet

import (
	"context"

	"github.com/csbb5959/sales-challenge-tool/pkg/gsheets"
)

// GoogleTable is a worksheet in a Google spreadsheet.
type GoogleTable struct {
	client    gsheets.Client
	worksheet string
	width     int
}

// NewGoogleTable creates a Table over one worksheet, width columns wide.
func NewGoogleTable(c gsheets.Client, worksheet string, width int) *GoogleTable {
	return &GoogleTable{client: c, worksheet: worksheet, width: width}
}

func (g *GoogleTable) Column(ctx context.Context, col int) ([]string, error) {
	rows, err := g.client.Get(ctx, gsheets.ColumnRange(g.worksheet, col))
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		if len(r) > 0 {
			out[i] = r[0]
		}
	}
	return out, nil
}

func (g *GoogleTable) Rows(ctx context.Context) ([][]string, error) {
	return g.client.Get(ctx, gsheets.QuoteSheet(g.worksheet))
}

func (g *GoogleTable) Append(ctx context.Context, rows [][]string) error {
	return g.client.Append(ctx, gsheets.ColumnsRange(g.worksheet, g.width), rows)
}

func (g *GoogleTable) WriteAt(ctx context.Context, start int, rows [][]string) error {
	return g.client.Update(ctx, gsheets.CellRange(g.worksheet, start, 0), rows)
}
