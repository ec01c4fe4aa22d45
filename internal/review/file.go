// Package review stores a search result for operator editing and renders it
// for the terminal.
package review

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

// DefaultPath is where search results are saved unless overridden.
const DefaultPath = "candidates.json"

// File is the on-disk review document.
type File struct {
	SessionID  string            `json:"session_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Prompt     string            `json:"prompt,omitempty"`
	Candidates []model.Candidate `json:"candidates"`
}

// Save writes f as indented JSON.
func Save(path string, f File) error {
	if f.Candidates == nil {
		f.Candidates = []model.Candidate{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return eris.Wrap(err, "review: encode")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "review: write %s", path)
	}
	return nil
}

// Load reads a review document.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, eris.Wrapf(err, "review: read %s", path)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, eris.Wrapf(err, "review: decode %s", path)
	}
	return f, nil
}
