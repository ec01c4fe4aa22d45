package review

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

var (
	contactedColor = lipgloss.Color("#FFA500")
	freshColor     = lipgloss.Color("#90EE90")

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var candidateHeaders = []string{
	"#", "Company", "Website", "Region", "E-Mail", "Org last contact", "Contact", "Person last contact",
}

// orgColumn is the index of the org-last-contact column in candidateHeaders.
const orgColumn = 5

// OrgColor is the highlight of the org-last-contact cell: orange when the
// CRM knows the organization, green otherwise.
func OrgColor(c model.Candidate) lipgloss.Color {
	if c.OrgContacted() {
		return contactedColor
	}
	return freshColor
}

// Table renders candidates as a bordered terminal table.
func Table(candidates []model.Candidate) string {
	rows := make([][]string, len(candidates))
	for i, c := range candidates {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			c.Name,
			c.Website,
			c.Region,
			c.Email,
			model.Deref(c.OrgLastContact),
			model.Deref(c.ContactName),
			model.Deref(c.PersonLastContact),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(candidateHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == orgColumn && row >= 0 && row < len(candidates) {
				return cellStyle.Foreground(OrgColor(candidates[row]))
			}
			return cellStyle
		})
	return t.Render()
}

// Grid renders arbitrary rows under headers with the same borders.
func Grid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

// Print writes the table, or a note when there is nothing to show.
func Print(w io.Writer, candidates []model.Candidate) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No companies found.") //nolint:errcheck
		return
	}
	fmt.Fprintln(w, Table(candidates)) //nolint:errcheck
}
