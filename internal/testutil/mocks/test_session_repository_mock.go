package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mindflow/mindflow/internal/models"
)

// MockTestSessionRepository is a mock implementation of repository.TestSessionRepository
type MockTestSessionRepository struct {
	mock.Mock
}

func (m *MockTestSessionRepository) Insert(ctx context.Context, session models.TestSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockTestSessionRepository) Get(ctx context.Context, id string) (*models.TestSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestSession), args.Error(1)
}

func (m *MockTestSessionRepository) Complete(ctx context.Context, id string, endTime time.Time) error {
	args := m.Called(ctx, id, endTime)
	return args.Error(0)
}

func (m *MockTestSessionRepository) ListByPlayer(ctx context.Context, playerID string, completedOnly bool) ([]models.TestSession, error) {
	args := m.Called(ctx, playerID, completedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TestSession), args.Error(1)
}

func (m *MockTestSessionRepository) ListAll(ctx context.Context) ([]models.TestSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TestSession), args.Error(1)
}
