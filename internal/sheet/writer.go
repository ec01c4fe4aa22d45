package sheet

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/csbb5959/sales-challenge-tool/internal/model"
)

// Result reports what a write did. Skipped holds the trimmed names of
// candidates that were not written, including "" for empty names.
type Result struct {
	Inserted int      `json:"inserted"`
	Names    []string `json:"names"`
	Skipped  []string `json:"skipped"`
}

// Plan is the pure part of a write: the rows to insert and what was skipped.
type Plan struct {
	Rows [][]string
	Result
}

// ExistingNames collects the trimmed, non-empty names below the header block.
func ExistingNames(column []string, headerRows int) map[string]struct{} {
	names := make(map[string]struct{})
	for i := headerRows; i < len(column); i++ {
		if n := strings.TrimSpace(column[i]); n != "" {
			names[n] = struct{}{}
		}
	}
	return names
}

// PlanWrite decides, in input order, which candidates become rows. A name
// that is empty, already in the column, or already planned in this batch is
// skipped. Matching is case-sensitive on the trimmed name.
func PlanWrite(l *Layout, column []string, candidates []model.Candidate) Plan {
	existing := ExistingNames(column, l.HeaderRows)
	p := Plan{Result: Result{Names: []string{}, Skipped: []string{}}}

	for _, c := range candidates {
		name := c.TrimmedName()
		if name == "" {
			p.Skipped = append(p.Skipped, "")
			continue
		}
		if _, ok := existing[name]; ok {
			p.Skipped = append(p.Skipped, name)
			continue
		}
		existing[name] = struct{}{}
		p.Rows = append(p.Rows, l.Row(c))
		p.Names = append(p.Names, name)
	}
	p.Inserted = len(p.Rows)
	return p
}

// FirstGap returns the first row at or below headerRows where n consecutive
// name cells are empty. Rows past the end of column count as empty.
func FirstGap(column []string, headerRows, n int) int {
	run := 0
	for i := headerRows; i < len(column); i++ {
		if strings.TrimSpace(column[i]) != "" {
			run = 0
			continue
		}
		run++
		if run == n {
			return i - n + 1
		}
	}
	start := len(column) - run
	if start < headerRows {
		start = headerRows
	}
	return start
}

// Writer appends new candidates to a table.
type Writer struct {
	table  Table
	layout *Layout
}

// NewWriter creates a Writer.
func NewWriter(t Table, l *Layout) *Writer {
	return &Writer{table: t, layout: l}
}

// Layout returns the writer's column layout.
func (w *Writer) Layout() *Layout {
	return w.layout
}

// WriteNew re-reads the name column, plans the write and performs it as a
// single bulk call. The sheet is only ever added to. On a transport failure
// nothing is reported as inserted.
func (w *Writer) WriteNew(ctx context.Context, candidates []model.Candidate) (Result, error) {
	column, err := w.table.Column(ctx, w.layout.NameColumn)
	if err != nil {
		zap.L().Warn("sheet: read name column failed", zap.String("layout", w.layout.Name), zap.Error(err))
		return Result{}, eris.Wrap(err, "sheet: read name column")
	}

	plan := PlanWrite(w.layout, column, candidates)
	if len(plan.Rows) == 0 {
		zap.L().Info("sheet: nothing to insert", zap.Int("skipped", len(plan.Skipped)))
		return plan.Result, nil
	}

	switch w.layout.Mode {
	case ModeGap:
		start := FirstGap(column, w.layout.HeaderRows, len(plan.Rows))
		err = w.table.WriteAt(ctx, start, plan.Rows)
		zap.L().Debug("sheet: gap write", zap.Int("start_row", start+1), zap.Int("rows", len(plan.Rows)))
	default:
		err = w.table.Append(ctx, plan.Rows)
	}
	if err != nil {
		zap.L().Warn("sheet: write failed",
			zap.String("layout", w.layout.Name),
			zap.Int("rows", len(plan.Rows)),
			zap.Error(err),
		)
		failed := Result{Names: []string{}, Skipped: plan.Skipped}
		return failed, eris.Wrap(err, "sheet: write rows")
	}

	zap.L().Info("sheet: rows inserted",
		zap.String("layout", w.layout.Name),
		zap.Int("inserted", plan.Inserted),
		zap.Strings("skipped", plan.Skipped),
	)
	return plan.Result, nil
}
