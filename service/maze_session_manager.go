package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// MaxMazeSide bounds the width and height a client may request.
	MaxMazeSide = 100

	defaultTokenTTL = 24 * time.Hour

	// ClaimSessionID is the token claim carrying the session id.
	ClaimSessionID = "session_id"
)

// MazeDefaults is the maze layout used when a request leaves fields unset.
type MazeDefaults struct {
	Width       int
	Height      int
	RandomStart bool
	Start       *maze.Cell
}

// MazeSessionManager generates, resumes and advances maze sessions held in a SessionStore.
type MazeSessionManager struct {
	store     i.SessionStore
	archive   i.SolvedArchive
	tokenizer i.Tokenizer
	defaults  MazeDefaults
	tokenTTL  time.Duration
	logger    *logrus.Entry
	clock     func() time.Time
	seeder    func() int64
}

// Config holds the dependencies of a MazeSessionManager.
type Config struct {
	Store     i.SessionStore
	Archive   i.SolvedArchive // Optional; solved sessions are not archived when nil.
	Tokenizer i.Tokenizer
	Defaults  MazeDefaults
	TokenTTL  time.Duration
	Logger    *logrus.Entry
	Clock     func() time.Time // Defaults to time.Now.
	Seeder    func() int64     // Defaults to the wall clock in nanoseconds.
}

// NewMazeSessionManager validates the configuration and builds a manager.
func NewMazeSessionManager(c *Config) (*MazeSessionManager, error) {
	if c.Store == nil {
		return nil, errors.New("session store is required")
	}
	if c.Tokenizer == nil {
		return nil, errors.New("tokenizer is required")
	}
	if err := checkDimensions(c.Defaults.Width, c.Defaults.Height); err != nil {
		return nil, err
	}
	if start := c.Defaults.Start; start != nil && !fits(*start, c.Defaults.Width, c.Defaults.Height) {
		return nil, fmt.Errorf("%w: default start %s outside %dx%d", maze.ErrOutOfBounds, start, c.Defaults.Width, c.Defaults.Height)
	}

	m := &MazeSessionManager{
		store:     c.Store,
		archive:   c.Archive,
		tokenizer: c.Tokenizer,
		defaults:  c.Defaults,
		tokenTTL:  c.TokenTTL,
		logger:    c.Logger,
		clock:     c.Clock,
		seeder:    c.Seeder,
	}
	if m.tokenTTL <= 0 {
		m.tokenTTL = defaultTokenTTL
	}
	if m.logger == nil {
		m.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.seeder == nil {
		m.seeder = func() int64 { return time.Now().UnixNano() }
	}
	return m, nil
}

// NewSession generates a maze for a new session and issues its bearer token.
func (m *MazeSessionManager) NewSession(ctx context.Context, opts i.NewSessionOptions) (*i.Snapshot, string, error) {
	cfg := m.mazeConfig(opts)
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, "", err
	}

	mz, err := maze.New(cfg)
	if err != nil {
		return nil, "", err
	}

	id := uuid.New()
	session, err := game.NewSession(mz)
	if err != nil {
		return nil, "", err
	}

	createdAt := m.clock().UTC()
	if err := m.keep(ctx, id, session, createdAt); err != nil {
		return nil, "", err
	}

	token, err := m.tokenizer.Generate(map[string]interface{}{ClaimSessionID: id.String()}, m.tokenTTL)
	if err != nil {
		m.logger.WithError(err).WithField("session_id", id).Error("issuing session token")
		return nil, "", fmt.Errorf("%w: %w", ErrTokenIssue, err)
	}

	m.logger.WithFields(logrus.Fields{
		"session_id": id,
		"width":      mz.Width(),
		"height":     mz.Height(),
		"start":      mz.Start.String(),
		"seed":       cfg.Seed,
	}).Info("created maze session")
	return snapshotOf(id, session), token, nil
}

// Current returns the session snapshot. Missing state yields a fresh maze
// under the same id; corrupt state is discarded and replaced the same way.
func (m *MazeSessionManager) Current(ctx context.Context, id uuid.UUID) (*i.Snapshot, error) {
	unlock, err := m.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, _, err := m.resume(ctx, id)
	if err != nil {
		return nil, err
	}
	return snapshotOf(id, session), nil
}

// Move applies a key identifier or direction name to the session token.
// Unrecognised input and blocked moves are reported as rejected moves, not errors.
func (m *MazeSessionManager) Move(ctx context.Context, id uuid.UUID, input string) (*i.MoveOutcome, error) {
	unlock, err := m.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, createdAt, err := m.resume(ctx, id)
	if err != nil {
		return nil, err
	}

	var result game.MoveResult
	if d, ok := parseInput(input); ok {
		result = session.Move(d)
	} else {
		result = session.MoveKey(input)
	}

	if result.Moved {
		if result.Solved {
			m.finish(ctx, id, session, createdAt)
		} else if err := m.save(ctx, id, session, createdAt); err != nil {
			return nil, err
		}
	}

	return &i.MoveOutcome{MoveResult: result, Snapshot: snapshotOf(id, session)}, nil
}

// Stats reports aggregate results of archived sessions.
func (m *MazeSessionManager) Stats(ctx context.Context) (*dmn.SolveStats, error) {
	if m.archive == nil {
		return &dmn.SolveStats{}, nil
	}
	return m.archive.Stats(ctx)
}

func (m *MazeSessionManager) mazeConfig(opts i.NewSessionOptions) maze.Config {
	cfg := maze.Config{
		Width:       m.defaults.Width,
		Height:      m.defaults.Height,
		Start:       m.defaults.Start,
		RandomStart: m.defaults.RandomStart,
	}
	if opts.Width != 0 {
		cfg.Width = opts.Width
	}
	if opts.Height != 0 {
		cfg.Height = opts.Height
	}
	if cfg.Start != nil && !fits(*cfg.Start, cfg.Width, cfg.Height) {
		cfg.Start = nil
	}
	if opts.RandomStart != nil {
		cfg.RandomStart = *opts.RandomStart
		if cfg.RandomStart {
			cfg.Start = nil
		}
	}
	if opts.Start != nil {
		cfg.Start = opts.Start
	}
	if opts.Seed != nil {
		cfg.Seed = *opts.Seed
	} else {
		cfg.Seed = m.seeder()
	}
	return cfg
}

// resume loads the session state, replacing it with a fresh maze when it is
// missing or cannot be rebuilt.
func (m *MazeSessionManager) resume(ctx context.Context, id uuid.UUID) (*game.Session, time.Time, error) {
	logger := m.logger.WithField("session_id", id)

	state, err := m.store.ByID(ctx, id)
	switch {
	case errors.Is(err, i.ErrNotFound):
		logger.Info("no stored maze, generating a new one")
		return m.regenerate(ctx, id)
	case errors.Is(err, i.ErrCorruptRecord):
		// discarded below
	case err != nil:
		logger.WithError(err).Error("loading session state")
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		var mz *maze.Maze
		mz, err = maze.Load(state.MazeText, state.Start)
		if err == nil {
			var session *game.Session
			session, err = game.Restore(mz, state.Token, state.Moves)
			if err == nil && !session.Solved() {
				return session, state.CreatedAt, nil
			}
			if err == nil {
				err = errAlreadySolved
			}
		}
	}

	logger.WithError(err).Warn("discarding stored session state")
	if err := m.store.Delete(ctx, id); err != nil {
		logger.WithError(err).Error("deleting stored session state")
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return m.regenerate(ctx, id)
}

func (m *MazeSessionManager) regenerate(ctx context.Context, id uuid.UUID) (*game.Session, time.Time, error) {
	mz, err := maze.New(m.mazeConfig(i.NewSessionOptions{}))
	if err != nil {
		return nil, time.Time{}, err
	}
	session, err := game.NewSession(mz)
	if err != nil {
		return nil, time.Time{}, err
	}

	createdAt := m.clock().UTC()
	if err := m.keep(ctx, id, session, createdAt); err != nil {
		return nil, time.Time{}, err
	}
	return session, createdAt, nil
}

// keep saves a freshly generated session. A maze whose start is its goal is
// solved before any move, so nothing is kept and the next load starts over.
func (m *MazeSessionManager) keep(ctx context.Context, id uuid.UUID, s *game.Session, createdAt time.Time) error {
	if s.Solved() {
		m.logger.WithField("session_id", id).Info("maze starts on its goal, not storing it")
		return nil
	}
	return m.save(ctx, id, s, createdAt)
}

func (m *MazeSessionManager) save(ctx context.Context, id uuid.UUID, s *game.Session, createdAt time.Time) error {
	mz := s.Maze()
	state := &dmn.SessionState{
		ID:        id,
		MazeText:  maze.Serialize(mz.Grid),
		Start:     mz.Start,
		Token:     s.Token(),
		Moves:     s.Moves(),
		CreatedAt: createdAt,
	}
	if err := m.store.Save(ctx, state); err != nil {
		m.logger.WithError(err).WithField("session_id", id).Error("saving session state")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// finish drops the state of a solved session and archives it. Failures are
// logged only; the move itself has already succeeded.
func (m *MazeSessionManager) finish(ctx context.Context, id uuid.UUID, s *game.Session, createdAt time.Time) {
	logger := m.logger.WithField("session_id", id)
	if err := m.store.Delete(ctx, id); err != nil {
		logger.WithError(err).Error("deleting solved session state")
	}

	mz := s.Maze()
	optimal := 0
	if path, err := mz.Path(mz.Start, mz.Goal); err == nil {
		optimal = len(path) - 1
	}
	logger = logger.WithFields(logrus.Fields{"moves": s.Moves(), "optimal_moves": optimal})
	logger.Info("maze solved")

	if m.archive == nil {
		return
	}
	solved := &dmn.SolvedMaze{
		ID:           id,
		MazeText:     maze.Serialize(mz.Grid),
		Width:        mz.Width(),
		Height:       mz.Height(),
		Start:        mz.Start,
		Goal:         mz.Goal,
		Moves:        s.Moves(),
		OptimalMoves: optimal,
		CreatedAt:    createdAt,
		SolvedAt:     m.clock().UTC(),
	}
	if err := m.archive.Save(ctx, solved); err != nil {
		logger.WithError(err).Error("archiving solved maze")
	}
}

func (m *MazeSessionManager) lock(ctx context.Context, id uuid.UUID) (func(), error) {
	unlock, err := m.store.Lock(ctx, id)
	if err != nil {
		m.logger.WithError(err).WithField("session_id", id).Error("locking session")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return unlock, nil
}

func fits(c maze.Cell, width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxMazeSide || height > MaxMazeSide {
		return fmt.Errorf("%w: %dx%d, each side must be within 1..%d", maze.ErrInvalidDimensions, width, height, MaxMazeSide)
	}
	return nil
}

// parseInput accepts a direction name; key identifiers are left to the session.
func parseInput(input string) (game.Direction, bool) {
	d, err := game.ParseDirection(input)
	return d, err == nil
}

func snapshotOf(id uuid.UUID, s *game.Session) *i.Snapshot {
	return &i.Snapshot{
		ID:     id,
		Maze:   s.Maze(),
		Token:  s.Token(),
		Moves:  s.Moves(),
		Solved: s.Solved(),
	}
}
