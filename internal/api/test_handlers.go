package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mindflow/mindflow/internal/engine"
	"github.com/mindflow/mindflow/internal/errors"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/models"
)

// handleTestRunner renders the multi-game runner. Without a current player
// and session there is nothing to run, so it sends the visitor home.
func (s *Server) handleTestRunner(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	player := s.Aggregator.CurrentPlayer()
	session := s.Aggregator.CurrentSession()
	if player == nil || session == nil {
		log.Debug("no active player or session, redirecting home")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.render(w, r, "pages/test.html", pageData{
		"session": session,
		"games":   models.GameConfigs,
	})
}

func (s *Server) handleStartTest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	session, err := s.Aggregator.StartTestSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("test session started: id=%s", session.ID)
	http.Redirect(w, r, "/test", http.StatusSeeOther)
}

func (s *Server) handleCompleteTest(w http.ResponseWriter, r *http.Request) {
	if err := s.Aggregator.CompleteTestSession(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	gameType := models.GameType(chi.URLParam(r, "gameType"))
	if models.GameConfigByID(gameType) == nil {
		handleError(w, r, errors.NewNotFoundError("game", gameType))
		return
	}

	view, err := s.Aggregator.StartGame(r.Context(), gameType)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("game started: game_type=%s", gameType)
	s.writeJSON(w, r, map[string]any{"game": view})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	view, err := s.Aggregator.GameView()
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, map[string]any{"game": view})
}

func (s *Server) handleGameClick(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var in engine.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid input payload"))
		return
	}

	view, recorded, err := s.Aggregator.Interact(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response := map[string]any{"game": view}
	if recorded != nil {
		log.Info("game completed: game_type=%s, score=%d", recorded.GameType, recorded.Score)
		response["recorded"] = recorded
	}
	s.writeJSON(w, r, response)
}

func (s *Server) handleGameFinish(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	view, recorded, err := s.Aggregator.FinishGame(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("game finished early: game_type=%s, score=%d", recorded.GameType, recorded.Score)
	s.writeJSON(w, r, map[string]any{"game": view, "recorded": recorded})
}
