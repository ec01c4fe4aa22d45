package sheet

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXTable is a worksheet in a local workbook. A missing file reads as an
// empty sheet and is created on the first write.
type XLSXTable struct {
	path      string
	worksheet string
}

// NewXLSXTable creates a Table over one worksheet of the workbook at path.
func NewXLSXTable(path, worksheet string) *XLSXTable {
	return &XLSXTable{path: path, worksheet: worksheet}
}

func (x *XLSXTable) Column(ctx context.Context, col int) ([]string, error) {
	rows, err := x.Rows(ctx)
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

func (x *XLSXTable) Rows(_ context.Context) ([][]string, error) {
	if !x.exists() {
		return nil, nil
	}
	f, err := xlsx.OpenFile(x.path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	sh, ok := f.Sheet[x.worksheet]
	if !ok {
		return nil, nil
	}

	rows := make([][]string, 0, len(sh.Rows))
	for _, row := range sh.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (x *XLSXTable) Append(ctx context.Context, rows [][]string) error {
	existing, err := x.Rows(ctx)
	if err != nil {
		return err
	}
	return x.WriteAt(ctx, lastUsedRow(existing)+1, rows)
}

func (x *XLSXTable) WriteAt(_ context.Context, start int, rows [][]string) error {
	f, sh, err := x.open()
	if err != nil {
		return err
	}
	for i, row := range rows {
		for j, v := range row {
			sh.Cell(start+i, j).SetString(v)
		}
	}
	if err := f.Save(x.path); err != nil {
		return eris.Wrap(err, "xlsx: save file")
	}
	return nil
}

func (x *XLSXTable) open() (*xlsx.File, *xlsx.Sheet, error) {
	f := xlsx.NewFile()
	if x.exists() {
		var err error
		if f, err = xlsx.OpenFile(x.path); err != nil {
			return nil, nil, eris.Wrap(err, "xlsx: open file")
		}
	}
	if sh, ok := f.Sheet[x.worksheet]; ok {
		return f, sh, nil
	}
	sh, err := f.AddSheet(x.worksheet)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "xlsx: add sheet %s", x.worksheet)
	}
	return f, sh, nil
}

func (x *XLSXTable) exists() bool {
	_, err := os.Stat(x.path)
	return !errors.Is(err, fs.ErrNotExist)
}

// lastUsedRow is the index of the last row with a non-empty cell, or -1.
func lastUsedRow(rows [][]string) int {
	for i := len(rows) - 1; i >= 0; i-- {
		for _, v := range rows[i] {
			if v != "" {
				return i
			}
		}
	}
	return -1
}
