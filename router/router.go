// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/univote/cliparse"
	"github.com/danielhkuo/univote/eligibility"
	"github.com/danielhkuo/univote/handlers"
	"github.com/danielhkuo/univote/metrics"
	"github.com/danielhkuo/univote/middleware"
	"github.com/danielhkuo/univote/sessions"
)

// Services are the long-lived dependencies shared by handlers
type Services struct {
	Tables   eligibility.Tables
	Sessions *sessions.Store
	Metrics  *metrics.Metrics
}

func NewRouter(db *sql.DB, cfg cliparse.Config, svc Services) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	solutionHandler := handlers.NewSolutionHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	formHandler := handlers.NewFormHandler(db, cfg, svc.Tables, svc.Sessions, svc.Metrics)
	votingHandler := handlers.NewVotingHandler(db, cfg, svc.Tables, svc.Metrics)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", svc.Metrics.Handler())

	// Solutions (listing is public, adding requires X-Admin-Key)
	mux.HandleFunc("GET /solutions", middleware.WithLogging(solutionHandler.ListSolutions))
	mux.HandleFunc("POST /solutions", middleware.WithLogging(solutionHandler.AddSolution))

	// Results
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /results/count", middleware.WithLogging(resultsHandler.GetVoteCount))

	// Form sessions
	mux.HandleFunc("POST /forms", middleware.WithLogging(formHandler.CreateForm))
	mux.HandleFunc("GET /forms/{id}", middleware.WithLogging(formHandler.GetForm))
	mux.HandleFunc("DELETE /forms/{id}", middleware.WithLogging(formHandler.DeleteForm))
	mux.HandleFunc("POST /forms/{id}/email", middleware.WithLogging(formHandler.EmailChanged))
	mux.HandleFunc("POST /forms/{id}/name", middleware.WithLogging(formHandler.NameChanged))
	mux.HandleFunc("POST /forms/{id}/solutions/{slug}", middleware.WithLogging(formHandler.ToggleSolution))
	mux.HandleFunc("POST /forms/{id}/accept", middleware.WithLogging(formHandler.AcceptChanged))
	mux.HandleFunc("POST /forms/{id}/submit", middleware.WithLogging(formHandler.SubmitForm))

	// Stateless voting
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /votes/{id}", middleware.WithLogging(votingHandler.GetVote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("univote API v1"))
	})

	return mux
}
