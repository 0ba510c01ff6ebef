// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/univote/auth"
	"github.com/danielhkuo/univote/cliparse"
	"github.com/danielhkuo/univote/eligibility"
	"github.com/danielhkuo/univote/metrics"
	"github.com/danielhkuo/univote/middleware"
	"github.com/danielhkuo/univote/models"
	"github.com/danielhkuo/univote/voteform"
)

type VotingHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	tables  eligibility.Tables
	metrics *metrics.Metrics
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, tables eligibility.Tables, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, tables: tables, metrics: m}
}

// CastVote handles POST /votes
// Replays the payload through a fresh form so the same gate applies
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !voteform.NativeOpinionValidity(req.Opinion) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "opinion must be at most 160 characters")
		return
	}

	formCfg, err := FormConfig(r.Context(), h.db, h.cfg.ExpectedSolutions, h.tables, false)
	if err != nil {
		slog.Error("failed to load form config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	form, err := voteform.New(formCfg)
	if err != nil {
		slog.Error("form cannot be built", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Voting is not configured")
		return
	}

	form.EmailChanged(req.Email, voteform.NativeEmailValidity(req.Email))
	form.NameChanged(req.Name, voteform.NativeNameValidity(req.Name))
	for _, slug := range req.Solutions {
		if err := form.ToggleSolution(slug, true); errors.Is(err, voteform.ErrSelectionFull) {
			h.metrics.IncrementVoteRejected("not_submittable")
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Too many solutions selected")
			return
		}
	}
	form.SetAccepted(req.Accepted)

	draft, err := form.Draft(req.Opinion)
	if err != nil {
		h.metrics.IncrementVoteRejected("not_submittable")
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, models.NotSubmittableResponse{
			Error:      http.StatusText(http.StatusUnprocessableEntity),
			Message:    "Vote is not submittable",
			Advisories: form.Snapshot().Advisories,
		})
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	voteID, err := castVote(r.Context(), h.db, draft, ipHash, r.UserAgent())
	if errors.Is(err, ErrDuplicateVote) {
		h.metrics.IncrementVoteRejected("duplicate_email")
		middleware.ErrorResponse(w, http.StatusConflict, ErrDuplicateVote.Error())
		return
	}
	if err != nil {
		slog.Error("failed to cast vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	h.metrics.IncrementVoteCast(draft.Classification.String())
	slog.Info("vote cast", "vote_id", voteID, "domain", draft.Domain,
		"classification", draft.Classification.String())

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  voteID,
		Message: "Vote submitted successfully",
	})
}

// GetVote handles GET /votes/{id}
func (h *VotingHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_id is required")
		return
	}

	var vote models.Vote
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, name, opinion, email_domain, classification, created_at
		FROM vote
		WHERE id = $1
	`, voteID).Scan(&vote.ID, &vote.Name, &vote.Opinion, &vote.EmailDomain,
		&vote.Classification, &vote.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to query vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT vs.solution_slug
		FROM vote_solution vs
		JOIN solution s ON s.slug = vs.solution_slug
		WHERE vs.vote_id = $1
		ORDER BY s.position, s.slug
	`, voteID)
	if err != nil {
		slog.Error("failed to query vote solutions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	vote.Solutions = []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			slog.Error("failed to scan vote solution", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		vote.Solutions = append(vote.Solutions, slug)
	}

	middleware.JSONResponse(w, http.StatusOK, vote)
}
