package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mindflow/mindflow/internal/db"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/repository"
)

type testSessionRepository struct {
	db *db.DB
}

// NewTestSessionRepository creates a new TestSessionRepository implementation
func NewTestSessionRepository(db *db.DB) repository.TestSessionRepository {
	return &testSessionRepository{db: db}
}

func (r *testSessionRepository) Insert(ctx context.Context, s models.TestSession) error {
	log := logger.FromContext(ctx).WithPrefix("test_session_repo")
	log.Debug("inserting test session: id=%s, player_id=%s", s.ID, s.PlayerID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO test_sessions (id, player_id, start_time, end_time, current_game_index, is_completed)
VALUES (?, ?, ?, ?, ?, ?)
`, s.ID, s.PlayerID, s.StartTime, s.EndTime, s.CurrentGameIndex, s.IsCompleted)
	if err != nil {
		log.Error("failed to insert test session: %v", err)
	}
	return err
}

func (r *testSessionRepository) Get(ctx context.Context, id string) (*models.TestSession, error) {
	log := logger.FromContext(ctx).WithPrefix("test_session_repo")
	log.Debug("fetching test session: id=%s", id)

	var s models.TestSession
	var endTime sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, player_id, start_time, end_time, current_game_index, is_completed
FROM test_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.PlayerID, &s.StartTime, &endTime, &s.CurrentGameIndex, &s.IsCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("test session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get test session: %v", err)
		return nil, err
	}
	if endTime.Valid {
		s.EndTime = &endTime.Time
	}
	if err := r.attachGames(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *testSessionRepository) Complete(ctx context.Context, id string, endTime time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("test_session_repo")
	log.Debug("completing test session: id=%s", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE test_sessions SET end_time = ?, is_completed = 1 WHERE id = ?
`, endTime, id)
	if err != nil {
		log.Error("failed to complete test session: %v", err)
	}
	return err
}

func (r *testSessionRepository) ListByPlayer(ctx context.Context, playerID string, completedOnly bool) ([]models.TestSession, error) {
	log := logger.FromContext(ctx).WithPrefix("test_session_repo")
	log.Debug("listing test sessions: player_id=%s, completed_only=%v", playerID, completedOnly)

	query := sqlBuilder.Select("id", "player_id", "start_time", "end_time", "current_game_index", "is_completed").
		From("test_sessions").
		Where(squirrel.Eq{"player_id": playerID}).
		OrderBy("start_time DESC")
	if completedOnly {
		query = query.Where(squirrel.Eq{"is_completed": true})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	return r.list(ctx, sqlStr, args...)
}

func (r *testSessionRepository) ListAll(ctx context.Context) ([]models.TestSession, error) {
	return r.list(ctx, `
SELECT id, player_id, start_time, end_time, current_game_index, is_completed
FROM test_sessions
ORDER BY start_time ASC
`)
}

func (r *testSessionRepository) list(ctx context.Context, query string, args ...any) ([]models.TestSession, error) {
	log := logger.FromContext(ctx).WithPrefix("test_session_repo")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list test sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.TestSession
	for rows.Next() {
		var s models.TestSession
		var endTime sql.NullTime
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.StartTime, &endTime, &s.CurrentGameIndex, &s.IsCompleted); err != nil {
			log.Error("failed to scan test session row: %v", err)
			return nil, err
		}
		if endTime.Valid {
			s.EndTime = &endTime.Time
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if err := r.attachGames(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}
	log.Debug("found %d test sessions", len(sessions))
	return sessions, nil
}

// attachGames populates the session's completed games, oldest first,
// matching the order they were recorded in.
func (r *testSessionRepository) attachGames(ctx context.Context, s *models.TestSession) error {
	log := logger.FromContext(ctx).WithPrefix("test_session_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+gameSessionColumns+`
FROM game_sessions
WHERE test_session_id = ?
ORDER BY end_time ASC
`, s.ID)
	if err != nil {
		log.Error("failed to query session games: %v", err)
		return err
	}
	defer rows.Close()

	games, err := scanGameSessions(rows)
	if err != nil {
		log.Error("failed to scan session games: %v", err)
		return err
	}
	if games == nil {
		games = []models.GameSession{}
	}
	s.CompletedGames = games
	return nil
}
