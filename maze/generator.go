package maze

import (
	"fmt"
	"math/rand"
)

// Generate carves a perfect maze of width x height cells with a randomized
// depth-first search (recursive backtracker) rooted at start. The random
// source is the only nondeterministic input: the same rng state always yields
// the same maze. A nil rng falls back to a source seeded with 0.
func Generate(width, height int, start Cell, rng *rand.Rand) (*Maze, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	if !g.InBound(start) {
		return nil, fmt.Errorf("%w: start %s", ErrOutOfBounds, start)
	}

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	stack := []Cell{start}
	visited[start.Y][start.X] = true

	candidates := make([]Cell, 0, len(steps))
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, d := range steps {
			next := top.Add(d.dx, d.dy)
			if g.InBound(next) && !visited[next.Y][next.X] {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		// The wall slot between two adjacent cells sits at the sum of their coordinates plus one.
		g.blocked[top.Y+next.Y+1][top.X+next.X+1] = false
		visited[next.Y][next.X] = true
		stack = append(stack, next)
	}

	return FromGrid(g, start)
}

// Config describes how a new maze is placed and generated.
type Config struct {
	Width       int   // Width in cells.
	Height      int   // Height in cells.
	Start       *Cell // Start cell; nil means (0,0) unless RandomStart is set.
	RandomStart bool  // Pick a uniformly random start when Start is nil.
	Seed        int64 // Seed for the random source.
}

// New generates a maze from the configuration.
func New(c Config) (*Maze, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}

	rng := rand.New(rand.NewSource(c.Seed))
	start := ResolveStart(c.Width, c.Height, c.Start, c.RandomStart, rng)
	return Generate(c.Width, c.Height, start, rng)
}
