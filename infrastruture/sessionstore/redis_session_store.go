package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldMaze      = "maze"
	fieldStart     = "start"
	fieldToken     = "token"
	fieldMoves     = "moves"
	fieldWidth     = "width"
	fieldHeight    = "height"
	fieldCreatedAt = "created_at"

	defaultLockExpiry = 5 * time.Second
)

// RedisSessionStore keeps each session in a Redis hash that expires after a
// period of inactivity. Moves on one session are serialised by a redsync mutex.
type RedisSessionStore struct {
	client     *redis.Client
	locker     *redsync.Redsync
	prefix     string
	ttl        time.Duration
	lockExpiry time.Duration
}

// Config configures a RedisSessionStore.
type Config struct {
	Client     *redis.Client
	KeyPrefix  string
	TTL        time.Duration // Idle lifetime of a session; zero disables expiry.
	LockExpiry time.Duration // Lifetime of a move lock; defaults to five seconds.
}

// NewRedisSessionStore initializes a RedisSessionStore with the provided Redis client.
func NewRedisSessionStore(c Config) (*RedisSessionStore, error) {
	if c.Client == nil {
		return nil, errors.New("redis client is required")
	}
	store := &RedisSessionStore{
		client:     c.Client,
		prefix:     c.KeyPrefix,
		ttl:        c.TTL,
		lockExpiry: c.LockExpiry,
	}
	if store.lockExpiry <= 0 {
		store.lockExpiry = defaultLockExpiry
	}
	pool := goredis.NewPool(c.Client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Save writes the session hash and refreshes its expiry.
func (s *RedisSessionStore) Save(ctx context.Context, state *dmn.SessionState) error {
	key := s.sessionKey(state.ID)
	g, err := maze.Parse(state.MazeText)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldMaze, state.MazeText,
			fieldStart, state.Start.String(),
			fieldToken, state.Token.String(),
			fieldMoves, state.Moves,
			fieldWidth, g.Width(),
			fieldHeight, g.Height(),
			fieldCreatedAt, state.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

// ByID reads the session hash back into a SessionState.
func (s *RedisSessionStore) ByID(ctx context.Context, id uuid.UUID) (*dmn.SessionState, error) {
	fields, err := s.client.HGetAll(ctx, s.sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, i.ErrNotFound
	}

	state := &dmn.SessionState{ID: id}
	text, ok := fields[fieldMaze]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", i.ErrCorruptRecord, fieldMaze)
	}
	state.MazeText = text

	if state.Start, err = maze.ParseCell(fields[fieldStart]); err != nil {
		return nil, fmt.Errorf("%w: %w", i.ErrCorruptRecord, err)
	}
	if state.Token, err = maze.ParseCell(fields[fieldToken]); err != nil {
		return nil, fmt.Errorf("%w: %w", i.ErrCorruptRecord, err)
	}
	if moves, ok := fields[fieldMoves]; ok {
		if state.Moves, err = strconv.Atoi(moves); err != nil {
			return nil, fmt.Errorf("%w: %w", i.ErrCorruptRecord, err)
		}
	}
	if created, ok := fields[fieldCreatedAt]; ok {
		if state.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("%w: %w", i.ErrCorruptRecord, err)
		}
	}

	return state, nil
}

// Delete removes the session hash.
func (s *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, s.sessionKey(id)).Err()
}

// Lock acquires the move lock of a session.
func (s *RedisSessionStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	mutex := s.locker.NewMutex(s.sessionKey(id)+":move_lock", redsync.WithExpiry(s.lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func (s *RedisSessionStore) sessionKey(id uuid.UUID) string {
	return s.prefix + "session:" + id.String()
}
