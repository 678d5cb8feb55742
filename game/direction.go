package game

import (
	"fmt"
	"strings"
)

// Direction is one of the four moves a token can make.
type Direction int

// Directions in their fixed enumeration order.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta returns the unit vector of the direction in cell coordinates.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection reads a direction name as written by String, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// ParseKey maps a keyboard key identifier to a direction. Arrow keys and WASD
// are accepted case-insensitively; ok is false for any other key.
func ParseKey(key string) (d Direction, ok bool) {
	switch strings.ToLower(key) {
	case "arrowup", "w":
		return Up, true
	case "arrowdown", "s":
		return Down, true
	case "arrowleft", "a":
		return Left, true
	case "arrowright", "d":
		return Right, true
	}
	return 0, false
}
