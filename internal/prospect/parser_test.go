package prospect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

func TestParse_Separators(t *testing.T) {
	want := model.Candidate{Name: "Acme GmbH", Website: "acme.de", Region: "Tirol", Email: "info@acme.de"}

	for _, line := range []string{
		"Acme GmbH – acme.de – Tirol – info@acme.de",
		"Acme GmbH - acme.de - Tirol - info@acme.de",
		"Acme GmbH — acme.de — Tirol — info@acme.de",
		"  Acme GmbH-acme.de -Tirol–  info@acme.de  ",
	} {
		got := Parse(line)
		require.Len(t, got, 1, line)
		assert.Equal(t, want, got[0], line)
	}
}

func TestParse_DropsMalformed(t *testing.T) {
	text := `Here are some companies:

Acme GmbH – acme.de – Tirol
Beta AG – beta – Wien – office@beta.at
Gamma KG – gamma.at – Salzburg – not-an-email
Delta OG – delta.at – Graz – office@delta.at`

	got := Parse(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Delta OG", got[0].Name)
}

func TestParse_OrderAndDuplicatesKept(t *testing.T) {
	text := "B – b.at – Wien – b@b.at\r\nA – a.at – Linz – a@a.at\nB – b.at – Wien – b@b.at\n"

	got := Parse(text)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "A", "B"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestParse_UnicodeEmailAndRegion(t *testing.T) {
	got := Parse("Müller Bau – mueller-bau.at – Oberösterreich – büro@müller.at")
	require.Len(t, got, 1)
	assert.Equal(t, "Oberösterreich", got[0].Region)
	assert.Equal(t, "büro@müller.at", got[0].Email)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n  \n"))
}
