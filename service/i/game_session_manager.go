package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// NewSessionOptions tunes the maze generated for a new session.
// Zero values fall back to the configured defaults.
type NewSessionOptions struct {
	Width       int
	Height      int
	Start       *maze.Cell
	RandomStart *bool
	Seed        *int64
}

// Snapshot is a consistent view of a session for the renderer.
type Snapshot struct {
	ID     uuid.UUID
	Maze   *maze.Maze
	Token  maze.Cell
	Moves  int
	Solved bool
}

// MoveOutcome is the result of one move request.
type MoveOutcome struct {
	game.MoveResult
	Snapshot *Snapshot
}

// MazeSessionManager owns the lifecycle of maze sessions.
type MazeSessionManager interface {
	// NewSession generates a maze and returns its snapshot with a bearer token for the session.
	NewSession(ctx context.Context, opts NewSessionOptions) (*Snapshot, string, error)

	// Current returns the session snapshot, generating a fresh maze if the
	// stored state is missing or corrupt.
	Current(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// Move applies a key or direction name to the session token.
	Move(ctx context.Context, id uuid.UUID, input string) (*MoveOutcome, error)

	// Stats reports aggregate results of solved sessions.
	Stats(ctx context.Context) (*dmn.SolveStats, error)
}
