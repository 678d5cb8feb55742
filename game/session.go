package game

import (
	"errors"
	"sync"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Game-related errors.
var (
	ErrNilMaze               = errors.New("maze is required")
	ErrInvalidPlayerPosition = errors.New("player is out of the maze")
	ErrUnknownDirection      = errors.New("unknown direction")
)

// MoveResult reports the outcome of a single move request.
// A rejected move leaves Token unchanged and is not an error.
type MoveResult struct {
	Moved  bool      // Moved is true if the token changed cell.
	Solved bool      // Solved is true once the token has reached the goal.
	Token  maze.Cell // Token is the token position after the move.
}

// Session owns a maze and the token moving through it.
// Moves are applied one at a time; the maze itself is never modified.
type Session struct {
	maze   *maze.Maze
	token  maze.Cell
	solved bool
	moves  int
	sync.Mutex
}

// NewSession starts a session with the token on the maze start.
func NewSession(m *maze.Maze) (*Session, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	return &Session{maze: m, token: m.Start, solved: m.Start == m.Goal}, nil
}

// Restore resumes a session with the token at a previously saved cell and
// the number of moves already made.
func Restore(m *maze.Maze, token maze.Cell, moves int) (*Session, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if !m.InBound(token) {
		return nil, ErrInvalidPlayerPosition
	}
	return &Session{maze: m, token: token, moves: moves, solved: token == m.Goal}, nil
}

// Maze returns the session maze.
func (s *Session) Maze() *maze.Maze {
	return s.maze
}

// Token returns the current token cell.
func (s *Session) Token() maze.Cell {
	s.Lock()
	defer s.Unlock()
	return s.token
}

// Solved reports whether the token has reached the goal.
func (s *Session) Solved() bool {
	s.Lock()
	defer s.Unlock()
	return s.solved
}

// Moves returns the number of accepted moves.
func (s *Session) Moves() int {
	s.Lock()
	defer s.Unlock()
	return s.moves
}

// Move tries to move the token one cell in the given direction. The move is
// rejected when the destination lies outside the maze, when a wall blocks it,
// or when the session is already solved.
func (s *Session) Move(d Direction) MoveResult {
	s.Lock()
	defer s.Unlock()

	rejected := MoveResult{Solved: s.solved, Token: s.token}
	if s.solved {
		return rejected
	}

	dx, dy := d.Delta()
	if dx == 0 && dy == 0 {
		return rejected
	}

	candidate := s.token.Add(dx, dy)
	if !s.maze.InBound(candidate) {
		return rejected
	}

	open, err := s.maze.IsOpen(s.token, candidate)
	if err != nil || !open {
		return rejected
	}

	s.token = candidate
	s.moves++
	s.solved = candidate == s.maze.Goal
	return MoveResult{Moved: true, Solved: s.solved, Token: s.token}
}

// MoveKey maps a key identifier to a direction and applies it. Unknown keys
// are ignored and reported as a rejected move.
func (s *Session) MoveKey(key string) MoveResult {
	d, ok := ParseKey(key)
	if !ok {
		s.Lock()
		defer s.Unlock()
		return MoveResult{Solved: s.solved, Token: s.token}
	}
	return s.Move(d)
}
