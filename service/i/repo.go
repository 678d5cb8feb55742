package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// Repository errors.
var (
	ErrNotFound      = errors.New("repository: record not found")
	ErrCorruptRecord = errors.New("repository: record is corrupt")
)

// SessionStore persists the state of unfinished maze sessions.
type SessionStore interface {
	// Save inserts or replaces the state of a session.
	Save(ctx context.Context, state *dmn.SessionState) error

	// ByID retrieves the state of a session.
	// Returns ErrNotFound if the session has no stored state and
	// ErrCorruptRecord if the stored fields cannot be decoded.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.SessionState, error)

	// Delete discards the stored state of a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Lock acquires the session's move lock and returns the function releasing it.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}

// SolvedArchive records finished sessions.
type SolvedArchive interface {
	// Save stores a solved maze.
	Save(ctx context.Context, solved *dmn.SolvedMaze) error

	// Stats aggregates every archived session.
	Stats(ctx context.Context) (*dmn.SolveStats, error)
}
