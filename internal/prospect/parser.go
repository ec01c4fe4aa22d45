// Package prospect asks a language model for candidate companies and
// extracts them from the free-text answer.
package prospect

import (
	"regexp"
	"strings"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

// linePattern is name <sep> website <sep> region <sep> email, where <sep> is
// a hyphen, en dash or em dash with optional surrounding whitespace.
var linePattern = regexp.MustCompile(
	`(?i)^\s*(.*?)\s*[-–—]\s*([^\s]+?\.[^\s]+?)\s*[-–—]\s*(.*?)\s*[-–—]\s*([\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.\p{L}+)\s*$`,
)

// Parse extracts one candidate per matching line, in input order. Lines that
// do not fit the grammar are dropped. Duplicates are kept.
func Parse(text string) []model.Candidate {
	var out []model.Candidate
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, model.Candidate{
			Name:    strings.TrimSpace(m[1]),
			Website: strings.TrimSpace(m[2]),
			Region:  strings.TrimSpace(m[3]),
			Email:   strings.TrimSpace(m[4]),
		})
	}
	return out
}
