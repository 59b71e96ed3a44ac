package api

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/models"
)

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	player := s.Aggregator.CurrentPlayer()
	if player == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	report, err := s.Reports.LatestReport(r.Context(), player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/results.html", pageData{
		"report": report,
		"games":  models.GameConfigs,
	})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")

	totals, err := s.Reports.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	stats, err := s.Reports.AllPlayerStats(r.Context(), search)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/admin.html", pageData{
		"totals": totals,
		"stats":  stats,
		"search": search,
		"games":  models.GameConfigs,
	})
}

func (s *Server) handleAdminGame(w http.ResponseWriter, r *http.Request) {
	gameType := models.GameType(chi.URLParam(r, "gameID"))
	config := models.GameConfigByID(gameType)
	if config == nil {
		s.render(w, r, "pages/not_found.html", pageData{
			"resource": fmt.Sprintf("game %q", gameType),
		})
		return
	}

	sessions, err := s.Reports.GameTypeSessions(r.Context(), gameType)
	if err != nil {
		handleError(w, r, err)
		return
	}

	accuracySum := 0
	for _, g := range sessions {
		accuracySum += g.Accuracy
	}
	average := 0
	if len(sessions) > 0 {
		average = int(math.Round(float64(accuracySum) / float64(len(sessions))))
	}

	s.render(w, r, "pages/admin_game.html", pageData{
		"config":          config,
		"sessions":        sessions,
		"averageAccuracy": average,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	now := time.Now()

	if r.URL.Query().Get("scope") == "current" {
		payload := map[string]any{
			"export_date": now.Format(time.RFC3339),
			"player":      s.Aggregator.CurrentPlayer(),
			"session":     s.Aggregator.CurrentSession(),
		}
		s.writeJSON(w, r, payload)
		return
	}

	snapshot, err := s.Aggregator.Snapshot(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("exporting snapshot: players=%d, test_sessions=%d, game_sessions=%d",
		len(snapshot.Players), len(snapshot.TestSessions), len(snapshot.GameSessions))

	filename := fmt.Sprintf("mindflow-export-%s.json", now.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	s.writeJSON(w, r, map[string]any{
		"export_date":   now.Format(time.RFC3339),
		"players":       snapshot.Players,
		"test_sessions": snapshot.TestSessions,
		"game_sessions": snapshot.GameSessions,
	})
}
