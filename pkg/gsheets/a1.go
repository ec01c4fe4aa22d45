package gsheets

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 0-based column index to its A1 letters
// (0 -> A, 25 -> Z, 26 -> AA).
func ColumnLetter(idx int) string {
	var b []byte
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// QuoteSheet quotes a worksheet title for use in an A1 range.
func QuoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// ColumnRange is the A1 range of one whole column.
func ColumnRange(sheet string, col int) string {
	l := ColumnLetter(col)
	return fmt.Sprintf("%s!%s:%s", QuoteSheet(sheet), l, l)
}

// ColumnsRange spans columns 0..width-1.
func ColumnsRange(sheet string, width int) string {
	return fmt.Sprintf("%s!A:%s", QuoteSheet(sheet), ColumnLetter(width-1))
}

// CellRange names the cell at a 0-based row and column.
func CellRange(sheet string, row, col int) string {
	return fmt.Sprintf("%s!%s%d", QuoteSheet(sheet), ColumnLetter(col), row+1)
}
