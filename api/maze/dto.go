// Package mazeapi exposes maze sessions over HTTP and websockets.
package mazeapi

import (
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

// NewMazeRequest represents a request to start a maze session. Every field is optional.
type NewMazeRequest struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	RandomStart *bool      `json:"random_start"`
	Start       *maze.Cell `json:"start"`
	Seed        *int64     `json:"seed"`
}

// MoveRequest carries either a key identifier ("ArrowUp", "w") or a direction name ("up").
type MoveRequest struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// StateResponse is everything a renderer needs to draw a session.
type StateResponse struct {
	SessionID     string    `json:"session_id"`
	Rows          []string  `json:"rows"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Start         maze.Cell `json:"start"`
	Goal          maze.Cell `json:"goal"`
	Token         maze.Cell `json:"token"`
	Moves         int       `json:"moves"`
	Solved        bool      `json:"solved"`
	DividerPixels int       `json:"divider_pixels"`
}

// NewMazeResponse represents the response to a new session request.
type NewMazeResponse struct {
	SessionID string        `json:"session_id"`
	Token     string        `json:"token"`
	State     StateResponse `json:"state"`
}

// MoveResponse reports one processed move.
type MoveResponse struct {
	Moved  bool          `json:"moved"`
	Solved bool          `json:"solved"`
	State  StateResponse `json:"state"`
}

func (r NewMazeRequest) options() i.NewSessionOptions {
	return i.NewSessionOptions{
		Width:       r.Width,
		Height:      r.Height,
		Start:       r.Start,
		RandomStart: r.RandomStart,
		Seed:        r.Seed,
	}
}

func (r MoveRequest) input() string {
	if r.Key != "" {
		return r.Key
	}
	return r.Direction
}

func stateResponse(s *i.Snapshot, dividerPixels int) StateResponse {
	return StateResponse{
		SessionID:     s.ID.String(),
		Rows:          strings.Split(maze.Serialize(s.Maze.Grid), maze.RowSeparator),
		Width:         s.Maze.Width(),
		Height:        s.Maze.Height(),
		Start:         s.Maze.Start,
		Goal:          s.Maze.Goal,
		Token:         s.Token,
		Moves:         s.Moves,
		Solved:        s.Solved,
		DividerPixels: dividerPixels,
	}
}
