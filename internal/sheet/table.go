package sheet

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrPositionalWrite is returned by tables that can only append.
var ErrPositionalWrite = eris.New("sheet: table does not support positional writes")

// Table is the transport side of a worksheet. Row and column indexes are
// 0-based and count from the top of the sheet, header rows included.
type Table interface {
	// Column returns the values of one column from the first row down.
	// Trailing empty cells may be omitted.
	Column(ctx context.Context, col int) ([]string, error)
	// Rows returns the whole sheet. Rows may be shorter than the layout.
	Rows(ctx context.Context) ([][]string, error)
	// Append adds rows after the last used row.
	Append(ctx context.Context, rows [][]string) error
	// WriteAt overwrites len(rows) rows starting at row start.
	WriteAt(ctx context.Context, start int, rows [][]string) error
}
