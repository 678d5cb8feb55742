/*
Package maze provides the model for rectangular lattice mazes.

A maze is a Grid of cells separated by wall slots, plus a start cell and a goal
cell at the centre of the grid. The package generates perfect mazes with a
randomized depth-first carve, converts grids to and from their persisted
'0'/'1' text form, validates loaded mazes and answers passability queries.
*/
package maze

import (
	"fmt"
	"strings"
)

// Maze is a grid together with its start and goal cells.
// The walls of a Maze never change once it has been built.
type Maze struct {
	*Grid
	Start Cell
	Goal  Cell
}

// FromGrid wraps an existing grid, placing the goal at the grid centre.
func FromGrid(g *Grid, start Cell) (*Maze, error) {
	if !g.InBound(start) {
		return nil, fmt.Errorf("%w: start %s", ErrOutOfBounds, start)
	}
	return &Maze{Grid: g, Start: start, Goal: Goal(g.Width(), g.Height())}, nil
}

// Load parses persisted text and checks that it holds a perfect maze.
// Any failure wraps ErrMalformedMazeText so callers can discard the text.
func Load(text string, start Cell) (*Maze, error) {
	g, err := Parse(text)
	if err != nil {
		return nil, err
	}

	m, err := FromGrid(g, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMazeText, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMazeText, err)
	}
	return m, nil
}

// Validate checks that every cell is open and that the open wall slots form a
// spanning tree over all cells.
func (m *Maze) Validate() error {
	cells := m.Width() * m.Height()
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.blocked[2*y+1][2*x+1] {
				return fmt.Errorf("%w: cell %d,%d is blocked", ErrNotPerfect, x, y)
			}
		}
	}

	if edges := m.OpenEdges(); edges != cells-1 {
		return fmt.Errorf("%w: %d open wall slots for %d cells", ErrNotPerfect, edges, cells)
	}

	if reached := len(m.reachable(m.Start)); reached != cells {
		return fmt.Errorf("%w: %d of %d cells reachable from start", ErrNotPerfect, reached, cells)
	}
	return nil
}

// reachable returns the parent of every cell reachable from origin, found by
// breadth-first search. The origin is its own parent.
func (m *Maze) reachable(origin Cell) map[Cell]Cell {
	parents := map[Cell]Cell{origin: origin}
	queue := []Cell{origin}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors, _ := m.Neighbors(current)
		for _, next := range neighbors {
			if _, seen := parents[next]; !seen {
				parents[next] = current
				queue = append(queue, next)
			}
		}
	}
	return parents
}

// Path returns the cells of a shortest open path from a to b, both included.
// It returns nil if b cannot be reached from a.
func (m *Maze) Path(a, b Cell) ([]Cell, error) {
	if !m.InBound(a) || !m.InBound(b) {
		return nil, fmt.Errorf("%w: %s or %s", ErrOutOfBounds, a, b)
	}

	parents := m.reachable(a)
	if _, ok := parents[b]; !ok {
		return nil, nil
	}

	path := []Cell{b}
	for current := b; current != a; {
		current = parents[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Solvable reports whether the goal can be reached from the start.
func (m *Maze) Solvable() bool {
	_, ok := m.reachable(m.Start)[m.Goal]
	return ok
}

// String provides a textual representation of the maze with the token on the start cell.
func (m *Maze) String() string {
	return m.Render(m.Start)
}

// Render draws the maze in ASCII, marking the goal with G, the start with S
// and the token with @.
func (m *Maze) Render(token Cell) string {
	var sb strings.Builder
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			p := LatticePos{Row: row, Col: col}
			blocked := m.blocked[row][col]
			switch KindOf(p) {
			case KindJoint:
				sb.WriteString("+")
			case KindWallSlot:
				switch {
				case !blocked && row%2 == 0:
					sb.WriteString("   ")
				case !blocked:
					sb.WriteString(" ")
				case row%2 == 0:
					sb.WriteString("---")
				default:
					sb.WriteString("|")
				}
			case KindCell:
				c := Cell{X: (col - 1) / 2, Y: (row - 1) / 2}
				switch c {
				case token:
					sb.WriteString(" @ ")
				case m.Goal:
					sb.WriteString(" G ")
				case m.Start:
					sb.WriteString(" S ")
				default:
					sb.WriteString("   ")
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
