// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/univote/cliparse"
	"github.com/danielhkuo/univote/middleware"
	"github.com/danielhkuo/univote/models"
	"github.com/danielhkuo/univote/voteform"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /results
// Returns 403 when results are hidden
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.ShowResults {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are hidden")
		return
	}

	ranked, err := loadRankedTallies(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load tallies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voteCount, err := h.countVotes(r)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Results:   rankResults(ranked),
		VoteCount: voteCount,
	})
}

// GetVoteCount handles GET /results/count
// The total is public even when results are hidden
func (h *ResultsHandler) GetVoteCount(w http.ResponseWriter, r *http.Request) {
	voteCount, err := h.countVotes(r)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int{
		"vote_count": voteCount,
	})
}

func (h *ResultsHandler) countVotes(r *http.Request) (int, error) {
	var n int
	err := h.db.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM vote").Scan(&n)
	return n, err
}

// rankResults attaches bars and 1-indexed ranks. Tied counts share a rank.
func rankResults(ranked []rankedTally) []models.ResultEntry {
	tallies := make([]voteform.Tally, len(ranked))
	for i, t := range ranked {
		tallies[i] = t.Tally
	}

	results := make([]models.ResultEntry, 0, len(ranked))
	rank := 0
	for i, t := range ranked {
		if i == 0 || t.VoteCount != ranked[i-1].VoteCount {
			rank = i + 1
		}

		// every slug comes from the same tally slice
		bar, _ := voteform.BarFor(t.Solution, tallies)

		results = append(results, models.ResultEntry{
			Solution:     t.Solution,
			Name:         t.Name,
			VoteCount:    t.VoteCount,
			WidthPercent: bar.WidthPercent,
			Rank:         rank,
		})
	}

	return results
}
