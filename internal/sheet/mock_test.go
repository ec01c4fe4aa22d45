package sheet

import (
	"context"
)

// memTable is an in-memory Table.
type memTable struct {
	rows [][]string

	readErr  error
	writeErr error

	appends  int
	writeAts []int
}

func (m *memTable) Column(_ context.Context, col int) ([]string, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		if col < len(r) {
			out[i] = r[col]
		}
	}
	return out, nil
}

func (m *memTable) Rows(context.Context) ([][]string, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.rows, nil
}

func (m *memTable) Append(_ context.Context, rows [][]string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.appends++
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *memTable) WriteAt(_ context.Context, start int, rows [][]string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writeAts = append(m.writeAts, start)
	for len(m.rows) < start+len(rows) {
		m.rows = append(m.rows, nil)
	}
	for i, r := range rows {
		m.rows[start+i] = r
	}
	return nil
}

func mustLayout(name string) *Layout {
	l, err := LoadLayout(name, "")
	if err != nil {
		panic(err)
	}
	return l
}
