// Package domain holds the records persisted for maze sessions.
package domain

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// SessionState is the persisted state of an unfinished maze session.
type SessionState struct {
	ID        uuid.UUID // Session identifier.
	MazeText  string    // Maze grid in the codec's text form.
	Start     maze.Cell // Start cell the maze was carved from.
	Token     maze.Cell // Current token cell.
	Moves     int       // Accepted moves so far.
	CreatedAt time.Time // Time the maze was generated.
}

// SolvedMaze is the archived record of a finished session.
type SolvedMaze struct {
	ID           uuid.UUID `bson:"_id"`
	MazeText     string    `bson:"mazeText"`
	Width        int       `bson:"width"`
	Height       int       `bson:"height"`
	Start        maze.Cell `bson:"start"`
	Goal         maze.Cell `bson:"goal"`
	Moves        int       `bson:"moves"`
	OptimalMoves int       `bson:"optimalMoves"`
	CreatedAt    time.Time `bson:"createdAt"`
	SolvedAt     time.Time `bson:"solvedAt"`
}

// SolveStats aggregates archived sessions.
type SolveStats struct {
	Solved       int64   `json:"solved"`
	AverageMoves float64 `json:"average_moves"`
	BestRatio    float64 `json:"best_ratio"` // Lowest moves / optimal moves seen.
}
