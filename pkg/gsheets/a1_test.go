package gsheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnLetter(t *testing.T) {
	tests := map[int]string{0: "A", 3: "D", 16: "Q", 25: "Z", 26: "AA", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for idx, want := range tests {
		assert.Equal(t, want, ColumnLetter(idx), idx)
	}
}

func TestRanges(t *testing.T) {
	assert.Equal(t, "'Kontaktliste all'!D:D", ColumnRange("Kontaktliste all", 3))
	assert.Equal(t, "'Team'!A:T", ColumnsRange("Team", 20))
	assert.Equal(t, "'Team'!A7", CellRange("Team", 6, 0))
	assert.Equal(t, "'Bob''s'!A1", CellRange("Bob's", 0, 0))
}
