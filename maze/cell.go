package maze

import "fmt"

// Cell is the coordinate of a traversable cell, ignoring the walls between cells.
type Cell struct {
	X int `json:"x" bson:"x"` // X is the column of the cell in the cell grid.
	Y int `json:"y" bson:"y"` // Y is the row of the cell in the cell grid.
}

// String returns the cell as "x,y", the format used when persisting a token position.
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Add returns the cell offset by the given deltas.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// ParseCell reads a cell written by Cell.String.
func ParseCell(s string) (Cell, error) {
	var c Cell
	if _, err := fmt.Sscanf(s, "%d,%d", &c.X, &c.Y); err != nil {
		return Cell{}, fmt.Errorf("parsing cell %q: %w", s, err)
	}
	return c, nil
}

// LatticePos addresses any position of the lattice, walls included.
type LatticePos struct {
	Row int
	Col int
}

// Kind classifies a lattice position.
type Kind int

const (
	KindCell     Kind = iota // both row and col odd
	KindWallSlot             // exactly one of row, col even
	KindJoint                // both even
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindWallSlot:
		return "wall slot"
	case KindJoint:
		return "joint"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the kind of the lattice position; it does not check bounds.
func KindOf(p LatticePos) Kind {
	rowOdd, colOdd := p.Row%2 == 1, p.Col%2 == 1
	switch {
	case rowOdd && colOdd:
		return KindCell
	case rowOdd != colOdd:
		return KindWallSlot
	default:
		return KindJoint
	}
}
