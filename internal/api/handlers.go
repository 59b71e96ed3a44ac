package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mindflow/mindflow/internal/errors"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")

	s.render(w, r, "pages/home.html", pageData{
		"games":   models.GameConfigs,
		"session": s.Aggregator.CurrentSession(),
	})
}

func (s *Server) handlePlayerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "pages/players.html", nil)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	ageStr := strings.TrimSpace(r.FormValue("age"))
	email := strings.TrimSpace(r.FormValue("email"))

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		handleError(w, r, errors.NewValidationError("age", "must be a number"))
		return
	}
	if err := validatePlayerInput(name, age, email); err != nil {
		log.Warn("player intake rejected: %v", err)
		handleError(w, r, err)
		return
	}

	player, err := s.Aggregator.CreatePlayer(r.Context(), name, age, email)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("player registered: id=%s", player.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelectPlayer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := s.Aggregator.SelectPlayer(r.Context(), id); err != nil {
		log.Warn("player selection failed: id=%s", id)
		handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
