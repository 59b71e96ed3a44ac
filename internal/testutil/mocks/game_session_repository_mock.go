package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mindflow/mindflow/internal/models"
)

// MockGameSessionRepository is a mock implementation of repository.GameSessionRepository
type MockGameSessionRepository struct {
	mock.Mock
}

func (m *MockGameSessionRepository) Record(ctx context.Context, session models.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockGameSessionRepository) List(ctx context.Context, filter models.GameSessionFilter) ([]models.GameSession, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameSession), args.Error(1)
}
