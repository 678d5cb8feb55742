package maze

import "errors"

// Maze-related errors.
var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrNotAdjacent       = errors.New("cells are not adjacent")
	ErrMalformedMazeText = errors.New("malformed maze text")
	ErrNotPerfect        = errors.New("maze is not a perfect maze")
)
