package maze

import "fmt"

// Grid is a rectangular lattice of cells, wall slots and joints.
// For a grid of width x height cells the lattice has 2*height+1 rows and
// 2*width+1 columns; cells sit at odd (row, col) positions.
type Grid struct {
	width   int
	height  int
	blocked [][]bool
}

// NewGrid returns a grid of the given dimensions with every wall slot and
// joint blocked and every cell open.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	blocked := make([][]bool, 2*height+1)
	for row := range blocked {
		blocked[row] = make([]bool, 2*width+1)
		for col := range blocked[row] {
			blocked[row][col] = KindOf(LatticePos{Row: row, Col: col}) != KindCell
		}
	}

	return &Grid{width: width, height: height, blocked: blocked}, nil
}

// Width returns the number of cells per row.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of cells per column.
func (g *Grid) Height() int {
	return g.height
}

// Rows returns the number of lattice rows.
func (g *Grid) Rows() int {
	return len(g.blocked)
}

// Cols returns the number of lattice columns.
func (g *Grid) Cols() int {
	return 2*g.width + 1
}

// InBound reports whether the cell lies inside [0,width) x [0,height).
func (g *Grid) InBound(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid) inLattice(p LatticePos) bool {
	return p.Row >= 0 && p.Row < g.Rows() && p.Col >= 0 && p.Col < g.Cols()
}

// Blocked reports whether the lattice position carries a wall.
func (g *Grid) Blocked(p LatticePos) (bool, error) {
	if !g.inLattice(p) {
		return false, fmt.Errorf("%w: lattice position (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	return g.blocked[p.Row][p.Col], nil
}

// Kind returns the kind of an in-lattice position.
func (g *Grid) Kind(p LatticePos) (Kind, error) {
	if !g.inLattice(p) {
		return 0, fmt.Errorf("%w: lattice position (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	return KindOf(p), nil
}

// CellAt converts a lattice position to its cell coordinate.
func (g *Grid) CellAt(row, col int) (Cell, error) {
	p := LatticePos{Row: row, Col: col}
	if !g.inLattice(p) || KindOf(p) != KindCell {
		return Cell{}, fmt.Errorf("%w: (%d,%d) is not a cell position", ErrOutOfBounds, row, col)
	}
	return Cell{X: (col - 1) / 2, Y: (row - 1) / 2}, nil
}

// LatticePositionOf converts a cell coordinate to its lattice position.
func (g *Grid) LatticePositionOf(c Cell) (LatticePos, error) {
	if !g.InBound(c) {
		return LatticePos{}, fmt.Errorf("%w: cell %s", ErrOutOfBounds, c)
	}
	return LatticePos{Row: 2*c.Y + 1, Col: 2*c.X + 1}, nil
}

// wallBetween returns the wall slot separating two cells after checking that
// both are in bounds and adjacent.
func (g *Grid) wallBetween(a, b Cell) (LatticePos, error) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if abs(dx)+abs(dy) != 1 {
		return LatticePos{}, fmt.Errorf("%w: %s and %s", ErrNotAdjacent, a, b)
	}
	if !g.InBound(a) || !g.InBound(b) {
		return LatticePos{}, fmt.Errorf("%w: %s or %s", ErrOutOfBounds, a, b)
	}
	return LatticePos{Row: 2*a.Y + 1 + dy, Col: 2*a.X + 1 + dx}, nil
}

// IsOpen reports whether the wall slot between two adjacent cells is open.
func (g *Grid) IsOpen(a, b Cell) (bool, error) {
	wall, err := g.wallBetween(a, b)
	if err != nil {
		return false, err
	}
	return !g.blocked[wall.Row][wall.Col], nil
}

// SetOpen opens or closes the wall slot between two adjacent cells.
func (g *Grid) SetOpen(a, b Cell, open bool) error {
	wall, err := g.wallBetween(a, b)
	if err != nil {
		return err
	}
	g.blocked[wall.Row][wall.Col] = !open
	return nil
}

// Neighbors returns the in-bounds cells reachable from c through an open wall
// slot, in Up, Down, Left, Right order.
func (g *Grid) Neighbors(c Cell) ([]Cell, error) {
	if !g.InBound(c) {
		return nil, fmt.Errorf("%w: cell %s", ErrOutOfBounds, c)
	}

	var result []Cell
	for _, d := range steps {
		next := c.Add(d.dx, d.dy)
		if !g.InBound(next) {
			continue
		}
		if open, _ := g.IsOpen(c, next); open {
			result = append(result, next)
		}
	}
	return result, nil
}

// OpenEdges counts the open wall slots between in-bounds cells.
func (g *Grid) OpenEdges() int {
	edges := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x+1 < g.width && !g.blocked[2*y+1][2*x+2] {
				edges++
			}
			if y+1 < g.height && !g.blocked[2*y+2][2*x+1] {
				edges++
			}
		}
	}
	return edges
}

// Lattice returns a copy of the blocked flags, row by row.
func (g *Grid) Lattice() [][]bool {
	out := make([][]bool, len(g.blocked))
	for i, row := range g.blocked {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Equal reports whether two grids have the same dimensions and walls.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for row := range g.blocked {
		for col := range g.blocked[row] {
			if g.blocked[row][col] != other.blocked[row][col] {
				return false
			}
		}
	}
	return true
}

// step is a unit move in the cell grid.
type step struct {
	dx, dy int
}

// steps is the fixed enumeration order used for neighbors and carving.
var steps = [4]step{
	{dx: 0, dy: -1}, // up
	{dx: 0, dy: 1},  // down
	{dx: -1, dy: 0}, // left
	{dx: 1, dy: 0},  // right
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
