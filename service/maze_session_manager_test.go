package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store     *MockSessionStore
	archive   *MockSolvedArchive
	tokenizer *MockTokenizer
	logs      *test.Hook
	manager   *MazeSessionManager
}

func newFixture(t *testing.T, defaults MazeDefaults) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	f := &fixture{
		store:     new(MockSessionStore),
		archive:   new(MockSolvedArchive),
		tokenizer: new(MockTokenizer),
		logs:      hook,
	}

	var err error
	f.manager, err = NewMazeSessionManager(&Config{
		Store:     f.store,
		Archive:   f.archive,
		Tokenizer: f.tokenizer,
		Defaults:  defaults,
		TokenTTL:  time.Hour,
		Logger:    logrus.NewEntry(logger),
		Clock:     func() time.Time { return fixedNow },
		Seeder:    func() int64 { return 7 },
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.store.AssertExpectations(t)
	f.archive.AssertExpectations(t)
	f.tokenizer.AssertExpectations(t)
}

// storedState builds the persisted form of a freshly generated maze.
func storedState(t *testing.T, id uuid.UUID, width, height int, seed int64) *dmn.SessionState {
	t.Helper()
	mz, err := maze.New(maze.Config{Width: width, Height: height, Seed: seed})
	require.NoError(t, err)
	return &dmn.SessionState{
		ID:        id,
		MazeText:  maze.Serialize(mz.Grid),
		Start:     mz.Start,
		Token:     mz.Start,
		CreatedAt: fixedNow.Add(-time.Minute),
	}
}

// solvedOnStart is a 5x5 maze carved from its own goal with the token still there.
func solvedOnStart(t *testing.T, id uuid.UUID) *dmn.SessionState {
	t.Helper()
	goal := maze.Goal(5, 5)
	mz, err := maze.New(maze.Config{Width: 5, Height: 5, Start: &goal, Seed: 11})
	require.NoError(t, err)
	return &dmn.SessionState{ID: id, MazeText: maze.Serialize(mz.Grid), Start: goal, Token: goal}
}

func noop() {}

func TestNewMazeSessionManager(t *testing.T) {
	_, err := NewMazeSessionManager(&Config{Tokenizer: new(MockTokenizer), Defaults: MazeDefaults{Width: 3, Height: 3}})
	assert.Error(t, err)

	_, err = NewMazeSessionManager(&Config{Store: new(MockSessionStore), Defaults: MazeDefaults{Width: 3, Height: 3}})
	assert.Error(t, err)

	_, err = NewMazeSessionManager(&Config{Store: new(MockSessionStore), Tokenizer: new(MockTokenizer)})
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

	outside := maze.Cell{X: 5, Y: 0}
	_, err = NewMazeSessionManager(&Config{
		Store:     new(MockSessionStore),
		Tokenizer: new(MockTokenizer),
		Defaults:  MazeDefaults{Width: 5, Height: 5, Start: &outside},
	})
	assert.ErrorIs(t, err, maze.ErrOutOfBounds)
}

func TestNewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 25, Height: 13})
		f.store.On("Save", ctx, mock.MatchedBy(func(s *dmn.SessionState) bool {
			return s.Start == maze.DefaultStart && s.Token == maze.DefaultStart && s.Moves == 0 && s.CreatedAt.Equal(fixedNow)
		})).Return(nil).Once()
		f.tokenizer.On("Generate", mock.MatchedBy(func(c map[string]interface{}) bool {
			_, err := uuid.Parse(c[ClaimSessionID].(string))
			return err == nil
		}), time.Hour).Return("signed", nil).Once()

		snapshot, token, err := f.manager.NewSession(ctx, i.NewSessionOptions{})
		require.NoError(t, err)
		assert.Equal(t, "signed", token)
		assert.Equal(t, 25, snapshot.Maze.Width())
		assert.Equal(t, 13, snapshot.Maze.Height())
		assert.Equal(t, maze.Cell{X: 12, Y: 6}, snapshot.Maze.Goal)
		assert.NoError(t, snapshot.Maze.Validate())
		assert.False(t, snapshot.Solved)
		f.assertExpectations(t)
	})

	t.Run("Options override defaults", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 25, Height: 13})
		f.store.On("Save", ctx, mock.Anything).Return(nil).Once()
		f.tokenizer.On("Generate", mock.Anything, time.Hour).Return("signed", nil).Once()

		seed := int64(99)
		start := maze.Cell{X: 4, Y: 2}
		snapshot, _, err := f.manager.NewSession(ctx, i.NewSessionOptions{Width: 5, Height: 3, Start: &start, Seed: &seed})
		require.NoError(t, err)
		assert.Equal(t, start, snapshot.Maze.Start)
		assert.Equal(t, start, snapshot.Token)

		expected, err := maze.New(maze.Config{Width: 5, Height: 3, Start: &start, Seed: seed})
		require.NoError(t, err)
		assert.True(t, expected.Grid.Equal(snapshot.Maze.Grid))
		f.assertExpectations(t)
	})

	t.Run("Rejects oversized and empty mazes", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 25, Height: 13})
		for _, opts := range []i.NewSessionOptions{{Width: MaxMazeSide + 1}, {Height: -1}} {
			_, _, err := f.manager.NewSession(ctx, opts)
			assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		}
		f.assertExpectations(t)
	})

	t.Run("Maze starting on its goal is not stored", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.tokenizer.On("Generate", mock.Anything, time.Hour).Return("signed", nil).Once()

		snapshot, _, err := f.manager.NewSession(ctx, i.NewSessionOptions{Width: 1, Height: 1})
		require.NoError(t, err)
		assert.True(t, snapshot.Solved)
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Smaller request drops a default start that no longer fits", func(t *testing.T) {
		start := maze.Cell{X: 6, Y: 4}
		f := newFixture(t, MazeDefaults{Width: 10, Height: 8, Start: &start})
		f.store.On("Save", ctx, mock.Anything).Return(nil).Once()
		f.tokenizer.On("Generate", mock.Anything, time.Hour).Return("signed", nil).Once()

		snapshot, _, err := f.manager.NewSession(ctx, i.NewSessionOptions{Width: 4, Height: 3})
		require.NoError(t, err)
		assert.Equal(t, maze.DefaultStart, snapshot.Maze.Start)
		f.assertExpectations(t)
	})

	t.Run("Rejects a start outside the grid", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		start := maze.Cell{X: 3, Y: 0}
		_, _, err := f.manager.NewSession(ctx, i.NewSessionOptions{Start: &start})
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
		f.assertExpectations(t)
	})

	t.Run("Store failure", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Save", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

		_, _, err := f.manager.NewSession(ctx, i.NewSessionOptions{})
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		f.assertExpectations(t)
	})

	t.Run("Token failure", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Save", ctx, mock.Anything).Return(nil).Once()
		f.tokenizer.On("Generate", mock.Anything, time.Hour).Return("", errors.New("bad key")).Once()

		_, _, err := f.manager.NewSession(ctx, i.NewSessionOptions{})
		assert.ErrorIs(t, err, ErrTokenIssue)
		f.assertExpectations(t)
	})
}

func TestCurrent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Resumes stored state", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		state := storedState(t, id, 4, 4, 3)
		state.Token = maze.Cell{X: 3, Y: 3}
		state.Moves = 6
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(state, nil).Once()

		snapshot, err := f.manager.Current(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, snapshot.ID)
		assert.Equal(t, state.Token, snapshot.Token)
		assert.Equal(t, 6, snapshot.Moves)
		assert.Equal(t, state.MazeText, maze.Serialize(snapshot.Maze.Grid))
		f.assertExpectations(t)
	})

	t.Run("Missing state yields a fresh maze", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(nil, i.ErrNotFound).Once()
		f.store.On("Save", ctx, mock.MatchedBy(func(s *dmn.SessionState) bool { return s.ID == id })).Return(nil).Once()

		snapshot, err := f.manager.Current(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, maze.DefaultStart, snapshot.Token)
		assert.NoError(t, snapshot.Maze.Validate())
		f.assertExpectations(t)
	})

	t.Run("Corrupt state is replaced", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(&dmn.SessionState{ID: id, MazeText: maze.ExampleMazeText}, nil).Once()
		f.store.On("Delete", ctx, id).Return(nil).Once()
		f.store.On("Save", ctx, mock.Anything).Return(nil).Once()

		snapshot, err := f.manager.Current(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 3, snapshot.Maze.Width())
		assert.NotEmpty(t, f.logs.AllEntries())
		f.assertExpectations(t)
	})

	t.Run("Undecodable record is replaced", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(nil, i.ErrCorruptRecord).Once()
		f.store.On("Delete", ctx, id).Return(nil).Once()
		f.store.On("Save", ctx, mock.Anything).Return(nil).Once()

		_, err := f.manager.Current(ctx, id)
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("Token outside the stored maze is corrupt", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		state := storedState(t, id, 3, 3, 1)
		state.Token = maze.Cell{X: 9, Y: 9}
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(state, nil).Once()
		f.store.On("Delete", ctx, id).Return(nil).Once()
		f.store.On("Save", ctx, mock.Anything).Return(nil).Once()

		snapshot, err := f.manager.Current(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, maze.DefaultStart, snapshot.Token)
		f.assertExpectations(t)
	})

	t.Run("Stored maze already solved is replaced", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(solvedOnStart(t, id), nil).Once()
		f.store.On("Delete", ctx, id).Return(nil).Once()
		f.store.On("Save", ctx, mock.MatchedBy(func(s *dmn.SessionState) bool {
			return s.ID == id && s.Token == maze.DefaultStart
		})).Return(nil).Once()

		snapshot, err := f.manager.Current(ctx, id)
		require.NoError(t, err)
		assert.False(t, snapshot.Solved)
		assert.Equal(t, 3, snapshot.Maze.Width())
		f.assertExpectations(t)
	})

	t.Run("Lock failure", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(nil, errors.New("redsync: failed to acquire lock")).Once()

		_, err := f.manager.Current(ctx, id)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		f.assertExpectations(t)
	})

	t.Run("Store failure", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(nil, errors.New("i/o timeout")).Once()

		_, err := f.manager.Current(ctx, id)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		f.assertExpectations(t)
	})
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Solving archives the session", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		state := storedState(t, id, 2, 1, 5)
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(state, nil).Once()
		f.store.On("Delete", ctx, id).Return(nil).Once()
		f.archive.On("Save", ctx, mock.MatchedBy(func(s *dmn.SolvedMaze) bool {
			return s.ID == id && s.Moves == 1 && s.OptimalMoves == 1 &&
				s.Goal == (maze.Cell{X: 1, Y: 0}) && s.SolvedAt.Equal(fixedNow) && s.MazeText == state.MazeText
		})).Return(nil).Once()

		outcome, err := f.manager.Move(ctx, id, "ArrowRight")
		require.NoError(t, err)
		assert.True(t, outcome.Moved)
		assert.True(t, outcome.Solved)
		assert.Equal(t, maze.Cell{X: 1, Y: 0}, outcome.Token)
		assert.True(t, outcome.Snapshot.Solved)
		f.assertExpectations(t)
	})

	t.Run("Archive failure does not fail the move", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(storedState(t, id, 2, 1, 5), nil).Once()
		f.store.On("Delete", ctx, id).Return(nil).Once()
		f.archive.On("Save", ctx, mock.Anything).Return(errors.New("mongo down")).Once()

		outcome, err := f.manager.Move(ctx, id, "right")
		require.NoError(t, err)
		assert.True(t, outcome.Solved)
		f.assertExpectations(t)
	})

	t.Run("Accepted move is saved", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		state := storedState(t, id, 5, 1, 5)
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(state, nil).Once()
		f.store.On("Save", ctx, mock.MatchedBy(func(s *dmn.SessionState) bool {
			return s.Token == (maze.Cell{X: 1, Y: 0}) && s.Moves == 1 && s.CreatedAt.Equal(state.CreatedAt)
		})).Return(nil).Once()

		outcome, err := f.manager.Move(ctx, id, "d")
		require.NoError(t, err)
		assert.True(t, outcome.Moved)
		assert.False(t, outcome.Solved)
		assert.Equal(t, 1, outcome.Snapshot.Moves)
		f.assertExpectations(t)
	})

	t.Run("Rejected moves are not saved", func(t *testing.T) {
		for _, input := range []string{"left", "ArrowUp", "Escape", ""} {
			f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
			f.store.On("Lock", ctx, id).Return(noop, nil).Once()
			f.store.On("ByID", ctx, id).Return(storedState(t, id, 2, 1, 5), nil).Once()

			outcome, err := f.manager.Move(ctx, id, input)
			require.NoError(t, err, input)
			assert.False(t, outcome.Moved, input)
			assert.False(t, outcome.Solved, input)
			assert.Equal(t, maze.DefaultStart, outcome.Token, input)
			f.assertExpectations(t)
		}
	})

	t.Run("Move on a maze stored solved starts over", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(solvedOnStart(t, id), nil).Once()
		f.store.On("Delete", ctx, id).Return(nil).Once()
		f.store.On("Save", ctx, mock.Anything).Return(nil).Once()

		outcome, err := f.manager.Move(ctx, id, "up")
		require.NoError(t, err)
		assert.False(t, outcome.Moved)
		assert.False(t, outcome.Solved)
		assert.Equal(t, maze.DefaultStart, outcome.Token)
		f.assertExpectations(t)
	})

	t.Run("Save failure", func(t *testing.T) {
		f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
		f.store.On("Lock", ctx, id).Return(noop, nil).Once()
		f.store.On("ByID", ctx, id).Return(storedState(t, id, 5, 1, 5), nil).Once()
		f.store.On("Save", ctx, mock.Anything).Return(errors.New("READONLY")).Once()

		_, err := f.manager.Move(ctx, id, "right")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		f.assertExpectations(t)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, MazeDefaults{Width: 3, Height: 3})
	want := &dmn.SolveStats{Solved: 3, AverageMoves: 12.5, BestRatio: 1}
	f.archive.On("Stats", ctx).Return(want, nil).Once()

	got, err := f.manager.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	f.assertExpectations(t)
}
