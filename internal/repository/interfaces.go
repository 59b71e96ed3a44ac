package repository

import (
	"context"
	"time"

	"github.com/mindflow/mindflow/internal/models"
)

// PlayerRepository handles player data access
type PlayerRepository interface {
	Insert(ctx context.Context, player models.Player) error
	Get(ctx context.Context, id string) (*models.Player, error)
	// List returns players, optionally narrowed to those whose name or
	// email contains search.
	List(ctx context.Context, search string) ([]models.Player, error)
	UpdateLastPlayed(ctx context.Context, id string, t time.Time) error
}

// TestSessionRepository handles test session data access
type TestSessionRepository interface {
	Insert(ctx context.Context, session models.TestSession) error
	// Get returns the session with its completed games populated, or nil
	// when absent.
	Get(ctx context.Context, id string) (*models.TestSession, error)
	Complete(ctx context.Context, id string, endTime time.Time) error
	// ListByPlayer returns a player's sessions, newest first, with
	// completed games populated.
	ListByPlayer(ctx context.Context, playerID string, completedOnly bool) ([]models.TestSession, error)
	ListAll(ctx context.Context) ([]models.TestSession, error)
}

// GameSessionRepository handles game session data access
type GameSessionRepository interface {
	// Record appends the game session to the global list and advances its
	// parent test session's game index, atomically.
	Record(ctx context.Context, session models.GameSession) error
	List(ctx context.Context, filter models.GameSessionFilter) ([]models.GameSession, error)
}
