package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/players", s.handlePlayerForm)
	r.Post("/players", s.handleCreatePlayer)
	r.Post("/players/{id}/select", s.handleSelectPlayer)

	r.Get("/test", s.handleTestRunner)
	r.Post("/test/start", s.handleStartTest)
	r.Post("/test/complete", s.handleCompleteTest)
	r.Post("/test/games/{gameType}/start", s.handleStartGame)
	r.Get("/test/games/state", s.handleGameState)
	r.Post("/test/games/click", s.handleGameClick)
	r.Post("/test/games/finish", s.handleGameFinish)

	r.Get("/results", s.handleResults)
	r.Get("/admin", s.handleAdmin)
	r.Get("/admin/{gameID}", s.handleAdminGame)
	r.Get("/export", s.handleExport)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
