package maze

import "math/rand"

// Goal returns the cell nearest the centre of a width x height grid.
func Goal(width, height int) Cell {
	return Cell{X: width / 2, Y: height / 2}
}

// DefaultStart is the start cell used when none is chosen.
var DefaultStart = Cell{X: 0, Y: 0}

// RandomStart picks a uniformly random cell of the grid other than the goal.
// A single-cell grid has no other choice and returns its goal.
func RandomStart(width, height int, rng *rand.Rand) Cell {
	if width*height <= 1 {
		return Goal(width, height)
	}
	for {
		if c := randomCell(width, height, rng); c != Goal(width, height) {
			return c
		}
	}
}

func randomCell(width, height int, rng *rand.Rand) Cell {
	return Cell{X: rng.Intn(width), Y: rng.Intn(height)}
}

// ResolveStart chooses the start cell: an explicit cell wins, then a random
// one if requested, then DefaultStart. The explicit cell is not bounds checked
// here; the generator rejects it if it lies outside the grid.
func ResolveStart(width, height int, explicit *Cell, random bool, rng *rand.Rand) Cell {
	switch {
	case explicit != nil:
		return *explicit
	case random:
		return RandomStart(width, height, rng)
	default:
		return DefaultStart
	}
}
