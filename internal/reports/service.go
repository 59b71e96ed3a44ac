// Package reports derives display aggregates from recorded history. It only
// reads; nothing here mutates the aggregator's state.
package reports

import (
	"context"
	"math"

	apperrors "github.com/mindflow/mindflow/internal/errors"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/repository"
	"github.com/mindflow/mindflow/internal/score"
)

// Service computes the results-page and admin-dashboard aggregates.
type Service interface {
	// LatestReport summarizes the player's most recently completed test
	// session, or nil when none exists.
	LatestReport(ctx context.Context, playerID string) (*models.SessionReport, error)
	// AllPlayerStats returns per-player aggregates for every player whose
	// name or email matches search (all players when empty).
	AllPlayerStats(ctx context.Context, search string) ([]models.PlayerStats, error)
	// PlayerSessions returns the player's completed test sessions, newest
	// first.
	PlayerSessions(ctx context.Context, playerID string) ([]models.TestSession, error)
	// GameTypeSessions returns every recorded session of one game type.
	GameTypeSessions(ctx context.Context, gameType models.GameType) ([]models.GameSession, error)
	// Overview returns the admin header totals.
	Overview(ctx context.Context) (*Totals, error)
}

// Totals is the admin dashboard's headline row.
type Totals struct {
	Players           int `json:"players"`
	CompletedSessions int `json:"completed_sessions"`
	GamesPlayed       int `json:"games_played"`
	AverageAccuracy   int `json:"average_accuracy"`
}

type service struct {
	players      repository.PlayerRepository
	testSessions repository.TestSessionRepository
	gameSessions repository.GameSessionRepository
}

// NewService creates a reporting service over the given repositories.
func NewService(players repository.PlayerRepository, testSessions repository.TestSessionRepository, gameSessions repository.GameSessionRepository) Service {
	return &service{players: players, testSessions: testSessions, gameSessions: gameSessions}
}

func (s *service) LatestReport(ctx context.Context, playerID string) (*models.SessionReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("building latest report: player_id=%s", playerID)

	sessions, err := s.testSessions.ListByPlayer(ctx, playerID, true)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(sessions) == 0 {
		log.Debug("no completed sessions for player %s", playerID)
		return nil, nil
	}

	report := BuildReport(sessions[0])
	return &report, nil
}

// BuildReport folds one completed test session into its summary.
func BuildReport(session models.TestSession) models.SessionReport {
	var report models.SessionReport
	report.Session = session
	for _, g := range session.CompletedGames {
		report.TotalScore += g.Score
		report.TotalHits += g.Hits
		report.TotalMisses += g.Misses
		report.TotalClicks += g.TotalClicks
		report.TotalTime += g.TimeSpent
	}
	report.OverallAccuracy = score.Accuracy(report.TotalHits, report.TotalClicks)
	if report.TotalClicks > 0 {
		report.AvgResponseTime = math.Round(float64(report.TotalTime)/float64(report.TotalClicks)*10) / 10
	}
	report.Performance = score.Performance(report.OverallAccuracy).Level
	return report
}

func (s *service) AllPlayerStats(ctx context.Context, search string) ([]models.PlayerStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("building player stats: search=%q", search)

	players, err := s.players.List(ctx, search)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	stats := make([]models.PlayerStats, 0, len(players))
	for _, player := range players {
		games, err := s.gameSessions.List(ctx, models.GameSessionFilter{PlayerID: player.ID})
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		sessions, err := s.testSessions.ListByPlayer(ctx, player.ID, true)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		stats = append(stats, buildPlayerStats(player, sessions, games))
	}
	return stats, nil
}

// buildPlayerStats sums a player's games. Average accuracy is the rounded
// arithmetic mean of per-game accuracy values, zero when no games.
func buildPlayerStats(player models.Player, sessions []models.TestSession, games []models.GameSession) models.PlayerStats {
	stats := models.PlayerStats{
		Player:        player,
		TotalSessions: len(sessions),
		TotalGames:    len(games),
	}
	accuracySum := 0
	for _, g := range games {
		stats.TotalScore += g.Score
		stats.TotalHits += g.Hits
		stats.TotalMisses += g.Misses
		stats.TotalTime += g.TimeSpent
		accuracySum += g.Accuracy
	}
	if len(games) > 0 {
		stats.AverageAccuracy = int(math.Round(float64(accuracySum) / float64(len(games))))
	}
	return stats
}

func (s *service) PlayerSessions(ctx context.Context, playerID string) ([]models.TestSession, error) {
	sessions, err := s.testSessions.ListByPlayer(ctx, playerID, true)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return sessions, nil
}

func (s *service) GameTypeSessions(ctx context.Context, gameType models.GameType) ([]models.GameSession, error) {
	sessions, err := s.gameSessions.List(ctx, models.GameSessionFilter{GameType: gameType})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return sessions, nil
}

func (s *service) Overview(ctx context.Context) (*Totals, error) {
	players, err := s.players.List(ctx, "")
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	games, err := s.gameSessions.List(ctx, models.GameSessionFilter{})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	sessions, err := s.testSessions.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	totals := &Totals{Players: len(players), GamesPlayed: len(games)}
	for _, ts := range sessions {
		if ts.IsCompleted {
			totals.CompletedSessions++
		}
	}
	accuracySum := 0
	for _, g := range games {
		accuracySum += g.Accuracy
	}
	if len(games) > 0 {
		totals.AverageAccuracy = int(math.Round(float64(accuracySum) / float64(len(games))))
	}
	return totals, nil
}
