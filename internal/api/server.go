package api

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/reports"
	"github.com/mindflow/mindflow/internal/store"
)

type Server struct {
	Aggregator *store.Aggregator
	Reports    reports.Service
	Templates  *template.Template
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["player"]; !ok {
		data["player"] = s.Aggregator.CurrentPlayer()
	}

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
