package maze

import (
	"fmt"
	"strings"
)

// RowSeparator separates lattice rows in the persisted text form.
const RowSeparator = "|"

const (
	blockedChar = '1'
	openChar    = '0'
)

// Serialize writes the grid as rows of '1' (blocked) and '0' (open) joined by RowSeparator.
func Serialize(g *Grid) string {
	var sb strings.Builder
	sb.Grow(g.Rows() * (g.Cols() + 1))
	for row, flags := range g.blocked {
		if row > 0 {
			sb.WriteString(RowSeparator)
		}
		for _, blocked := range flags {
			if blocked {
				sb.WriteByte(blockedChar)
			} else {
				sb.WriteByte(openChar)
			}
		}
	}
	return sb.String()
}

// Parse reads text produced by Serialize. Any character other than '1' is open.
// The lattice must be rectangular with odd dimensions of at least 3 and a fully
// blocked outer ring.
func Parse(text string) (*Grid, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrMalformedMazeText)
	}

	rows := strings.Split(text, RowSeparator)
	if len(rows) < 3 || len(rows)%2 == 0 {
		return nil, fmt.Errorf("%w: row count %d", ErrMalformedMazeText, len(rows))
	}

	cols := len(rows[0])
	if cols < 3 || cols%2 == 0 {
		return nil, fmt.Errorf("%w: row length %d", ErrMalformedMazeText, cols)
	}

	blocked := make([][]bool, len(rows))
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrMalformedMazeText, i, len(row), cols)
		}
		blocked[i] = make([]bool, cols)
		for j := 0; j < cols; j++ {
			blocked[i][j] = row[j] == blockedChar
		}
	}

	g := &Grid{
		width:   (cols - 1) / 2,
		height:  (len(rows) - 1) / 2,
		blocked: blocked,
	}
	if !g.enclosed() {
		return nil, fmt.Errorf("%w: outer boundary is not fully blocked", ErrMalformedMazeText)
	}
	return g, nil
}

// enclosed reports whether every position of the outer ring is blocked.
func (g *Grid) enclosed() bool {
	last := g.Rows() - 1
	for col := 0; col < g.Cols(); col++ {
		if !g.blocked[0][col] || !g.blocked[last][col] {
			return false
		}
	}
	lastCol := g.Cols() - 1
	for row := 0; row <= last; row++ {
		if !g.blocked[row][0] || !g.blocked[row][lastCol] {
			return false
		}
	}
	return true
}
