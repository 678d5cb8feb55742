package service

import (
	"context"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, state *dmn.SessionState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockSessionStore) ByID(ctx context.Context, id uuid.UUID) (*dmn.SessionState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dmn.SessionState), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type MockSolvedArchive struct {
	mock.Mock
}

func (m *MockSolvedArchive) Save(ctx context.Context, solved *dmn.SolvedMaze) error {
	args := m.Called(ctx, solved)
	return args.Error(0)
}

func (m *MockSolvedArchive) Stats(ctx context.Context) (*dmn.SolveStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dmn.SolveStats), args.Error(1)
}

type MockTokenizer struct {
	mock.Mock
}

func (m *MockTokenizer) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	args := m.Called(claims, expTime)
	return args.String(0), args.Error(1)
}

func (m *MockTokenizer) Decode(token string) (map[string]interface{}, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}
