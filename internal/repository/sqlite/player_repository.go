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

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type playerRepository struct {
	db *db.DB
}

// NewPlayerRepository creates a new PlayerRepository implementation
func NewPlayerRepository(db *db.DB) repository.PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Insert(ctx context.Context, p models.Player) error {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("inserting player: id=%s, name=%s", p.ID, p.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO players (id, name, age, email, created_at, last_played)
VALUES (?, ?, ?, ?, ?, ?)
`, p.ID, p.Name, p.Age, p.Email, p.CreatedAt, p.LastPlayed)
	if err != nil {
		log.Error("failed to insert player: %v", err)
	}
	return err
}

func (r *playerRepository) Get(ctx context.Context, id string) (*models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("fetching player: id=%s", id)

	var p models.Player
	var lastPlayed sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, age, email, created_at, last_played
FROM players
WHERE id = ?
`, id).Scan(&p.ID, &p.Name, &p.Age, &p.Email, &p.CreatedAt, &lastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("player not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get player: %v", err)
		return nil, err
	}
	if lastPlayed.Valid {
		p.LastPlayed = &lastPlayed.Time
	}
	return &p, nil
}

func (r *playerRepository) List(ctx context.Context, search string) ([]models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("listing players: search=%q", search)

	query := sqlBuilder.Select("id", "name", "age", "email", "created_at", "last_played").
		From("players").
		OrderBy("created_at ASC")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"name": pattern},
			squirrel.Like{"email": pattern},
		})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list players: %v", err)
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		var lastPlayed sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Email, &p.CreatedAt, &lastPlayed); err != nil {
			log.Error("failed to scan player row: %v", err)
			return nil, err
		}
		if lastPlayed.Valid {
			p.LastPlayed = &lastPlayed.Time
		}
		players = append(players, p)
	}
	log.Debug("found %d players", len(players))
	return players, rows.Err()
}

func (r *playerRepository) UpdateLastPlayed(ctx context.Context, id string, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("updating last played: id=%s", id)

	_, err := r.db.ExecContext(ctx, `UPDATE players SET last_played = ? WHERE id = ?`, t, id)
	if err != nil {
		log.Error("failed to update last played: %v", err)
	}
	return err
}
