package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/mindflow/mindflow/internal/db"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/repository"
)

type gameSessionRepository struct {
	db *db.DB
}

// NewGameSessionRepository creates a new GameSessionRepository implementation
func NewGameSessionRepository(db *db.DB) repository.GameSessionRepository {
	return &gameSessionRepository{db: db}
}

const gameSessionColumns = "id, player_id, test_session_id, game_type, start_time, end_time, score, total_clicks, hits, misses, accuracy, miss_rate, time_spent, game_data"

func (r *gameSessionRepository) Record(ctx context.Context, s models.GameSession) error {
	log := logger.FromContext(ctx).WithPrefix("game_session_repo")
	log.Debug("recording game session: id=%s, game_type=%s, score=%d", s.ID, s.GameType, s.Score)

	gameData, err := json.Marshal(s.GameData)
	if err != nil {
		log.Error("failed to marshal game data: %v", err)
		return err
	}

	// One transaction: the session joins the global list and its parent
	// test session advances, or neither happens.
	err = r.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO game_sessions (`+gameSessionColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.ID, s.PlayerID, s.TestSessionID, s.GameType, s.StartTime, s.EndTime, s.Score, s.TotalClicks, s.Hits, s.Misses, s.Accuracy, s.MissRate, s.TimeSpent, string(gameData)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
UPDATE test_sessions SET current_game_index = current_game_index + 1 WHERE id = ?
`, s.TestSessionID)
		return err
	})
	if err != nil {
		log.Error("failed to record game session: %v", err)
	}
	return err
}

func (r *gameSessionRepository) List(ctx context.Context, filter models.GameSessionFilter) ([]models.GameSession, error) {
	log := logger.FromContext(ctx).WithPrefix("game_session_repo")
	log.Debug("listing game sessions: player_id=%s, game_type=%s", filter.PlayerID, filter.GameType)

	query := sqlBuilder.Select(
		"id", "player_id", "test_session_id", "game_type", "start_time", "end_time",
		"score", "total_clicks", "hits", "misses", "accuracy", "miss_rate",
		"time_spent", "game_data",
	).From("game_sessions")

	if filter.PlayerID != "" {
		query = query.Where(squirrel.Eq{"player_id": filter.PlayerID})
	}
	if filter.GameType != "" {
		query = query.Where(squirrel.Eq{"game_type": filter.GameType})
	}
	query = query.OrderBy("end_time DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list game sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	sessions, err := scanGameSessions(rows)
	if err != nil {
		log.Error("failed to scan game sessions: %v", err)
		return nil, err
	}
	log.Debug("found %d game sessions", len(sessions))
	return sessions, nil
}

func scanGameSessions(rows *sql.Rows) ([]models.GameSession, error) {
	var sessions []models.GameSession
	for rows.Next() {
		var s models.GameSession
		var gameData string
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.TestSessionID, &s.GameType, &s.StartTime, &s.EndTime,
			&s.Score, &s.TotalClicks, &s.Hits, &s.Misses, &s.Accuracy, &s.MissRate,
			&s.TimeSpent, &gameData); err != nil {
			return nil, err
		}
		if gameData != "" {
			if err := json.Unmarshal([]byte(gameData), &s.GameData); err != nil {
				return nil, err
			}
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
