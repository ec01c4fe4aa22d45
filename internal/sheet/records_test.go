package sheet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHeaders(t *testing.T) {
	got := CleanHeaders([]string{"  E-Mail ", "", "Name,\n Nachname", "E-Mail", "E-Mail"}, 7)
	want := []string{"E-Mail", "Empty_1", "Name, Nachname", "E-Mail_2", "E-Mail_3", "Empty_5", "Empty_6"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_Read(t *testing.T) {
	l := mustLayout("team")
	rows := header(l)
	rows = append(rows,
		[]string{"G", "Wien", "", "Beta AG", "", "x@beta.at"},
		[]string{"", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "extra"},
	)

	rs, err := NewReader(&memTable{rows: rows}, l).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, rs.Rows, 2)
	assert.Len(t, rs.Headers, 18)
	assert.Equal(t, "Unternehmensname (laut Handelsregister)", rs.Headers[3])
	assert.Equal(t, "Empty_13", rs.Headers[13])
	assert.Equal(t, 7, rs.Rows[0].Row)
	assert.Len(t, rs.Rows[0].Values, 18)
	assert.Equal(t, "x@beta.at", rs.Field(rs.Rows[0], "E-Mail"))
	assert.Equal(t, "", rs.Field(rs.Rows[0], "Missing"))
}

func TestReader_ShortSheet(t *testing.T) {
	l := mustLayout("team")
	rs, err := NewReader(&memTable{rows: [][]string{{"title"}}}, l).Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rs.Rows)
	assert.Len(t, rs.Headers, 17)
}

func TestReader_Error(t *testing.T) {
	_, err := NewReader(&memTable{readErr: errors.New("x")}, mustLayout("team")).Read(context.Background())
	assert.ErrorContains(t, err, "sheet: read rows")
}

func TestFilter_Apply(t *testing.T) {
	l := mustLayout("team")
	rs := Records{Rows: []Record{
		{Row: 7, Values: []string{"", "", "", "Beta AG", "", "office@beta.at", "Bob Bauer"}},
		{Row: 8, Values: []string{"", "", "", "  ", "", "ghost@x.at", "Ghost"}},
		{Row: 9, Values: []string{"", "", "", "Acme GmbH", "", "info@acme.de", "Anna Berger"}},
		{Row: 10, Values: []string{"", "", "", "Acme Bau", "", "bau@acme.at"}},
	}}

	rows := func(rs []Record) []int {
		var out []int
		for _, r := range rs {
			out = append(out, r.Row)
		}
		return out
	}

	assert.Equal(t, []int{7, 9, 10}, rows(Filter{}.Apply(l, rs)))
	assert.Equal(t, []int{9, 10}, rows(Filter{Company: "ACME"}.Apply(l, rs)))
	assert.Equal(t, []int{9}, rows(Filter{Company: "acme", Name: "berger"}.Apply(l, rs)))
	assert.Equal(t, []int{10}, rows(Filter{Email: ".AT", Company: "acme"}.Apply(l, rs)))
	assert.Nil(t, Filter{Name: "nobody"}.Apply(l, rs))
}
