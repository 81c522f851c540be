// Package header normalizes multi-row spreadsheet headers into one
// clean long name per column. The pipeline is a chain of pure functions
// over an immutable Grid: detect the data start row, forward fill each
// header row, collapse the header stack per column.
package header

import (
	"strings"

	"gowrangle/domain/core"
)

// Grid is a row-major grid of trimmed string cells. Blank and missing
// cells are the empty string. Rows may have different lengths; reads
// beyond a row's length yield "".
type Grid struct {
	rows [][]string
}

// NewGrid copies raw rows into a Grid, trimming every cell. The input
// is never retained, so callers are free to mutate it afterwards.
func NewGrid(raw [][]string) *Grid {
	rows := make([][]string, len(raw))
	for i, row := range raw {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		rows[i] = cells
	}
	return &Grid{rows: rows}
}

// RowCount returns the number of rows
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// ColumnCount returns the widest row's length
func (g *Grid) ColumnCount() int {
	max := 0
	for _, row := range g.rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Row returns a copy of row i, or nil if i is out of range
func (g *Grid) Row(i int) []string {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	out := make([]string, len(g.rows[i]))
	copy(out, g.rows[i])
	return out
}

// Cell returns the trimmed cell at (row, col), or "" when either index
// falls outside the grid
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.rows) {
		return ""
	}
	if col < 0 || col >= len(g.rows[row]) {
		return ""
	}
	return g.rows[row][col]
}

// HeaderRows returns copies of rows [0, dataStartRow)
func (g *Grid) HeaderRows(dataStartRow int) [][]string {
	if dataStartRow > len(g.rows) {
		dataStartRow = len(g.rows)
	}
	out := make([][]string, 0, dataStartRow)
	for i := 0; i < dataStartRow; i++ {
		out = append(out, g.Row(i))
	}
	return out
}

// Hash fingerprints the grid content
func (g *Grid) Hash() core.GridHash {
	return core.ComputeGridHash(g.rows)
}

// Validate reports input problems that must abort the pipeline
func (g *Grid) Validate() error {
	if len(g.rows) == 0 {
		return core.ErrEmptyGrid
	}
	if g.ColumnCount() == 0 {
		return core.ErrNoColumns
	}
	return nil
}
