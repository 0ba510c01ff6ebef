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
	"github.com/danielhkuo/univote/sessions"
	"github.com/danielhkuo/univote/voteform"
)

type FormHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	tables   eligibility.Tables
	sessions *sessions.Store
	metrics  *metrics.Metrics
}

func NewFormHandler(db *sql.DB, cfg cliparse.Config, tables eligibility.Tables, store *sessions.Store, m *metrics.Metrics) *FormHandler {
	return &FormHandler{db: db, cfg: cfg, tables: tables, sessions: store, metrics: m}
}

// CreateForm handles POST /forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	formCfg, err := FormConfig(r.Context(), h.db, h.cfg.ExpectedSolutions, h.tables, h.cfg.ShowResults)
	if err != nil {
		slog.Error("failed to load form config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	sess, err := h.sessions.Create(formCfg)
	if errors.Is(err, voteform.ErrInvalidConfig) {
		slog.Error("form cannot be built", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Voting is not configured")
		return
	}
	if err != nil {
		slog.Error("failed to create form session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	snap := sess.Snapshot()
	reportMissingTallies(h.metrics, snap)

	slog.Info("form created", "form_id", sess.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.FormResponse{
		FormID: sess.ID,
		State:  snap,
	})
}

// GetForm handles GET /forms/{id}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FormResponse{
		FormID: sess.ID,
		State:  sess.Snapshot(),
	})
}

// DeleteForm handles DELETE /forms/{id}
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(r.PathValue("id")) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EmailChanged handles POST /forms/{id}/email
func (h *FormHandler) EmailChanged(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.EmailEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var snap voteform.Snapshot
	_ = sess.Do(func(form *voteform.Controller) error {
		form.EmailChanged(req.Email, voteform.NativeEmailValidity(req.Email))
		snap = form.Snapshot()
		return nil
	})

	h.metrics.IncrementFormEvent("email")
	if snap.Email.Classification != eligibility.NoInput {
		h.metrics.IncrementEmailClassification(snap.Email.Classification.String())
	}

	h.respond(w, sess.ID, snap)
}

// NameChanged handles POST /forms/{id}/name
func (h *FormHandler) NameChanged(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.NameEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var snap voteform.Snapshot
	_ = sess.Do(func(form *voteform.Controller) error {
		form.NameChanged(req.Name, voteform.NativeNameValidity(req.Name))
		snap = form.Snapshot()
		return nil
	})

	h.metrics.IncrementFormEvent("name")
	h.respond(w, sess.ID, snap)
}

// ToggleSolution handles POST /forms/{id}/solutions/{slug}
func (h *FormHandler) ToggleSolution(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req models.ToggleSolutionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var snap voteform.Snapshot
	err := sess.Do(func(form *voteform.Controller) error {
		err := form.ToggleSolution(slug, req.Checked)
		snap = form.Snapshot()
		return err
	})
	if errors.Is(err, voteform.ErrSelectionFull) {
		middleware.ErrorResponse(w, http.StatusConflict, "Selection quota reached")
		return
	}

	h.metrics.IncrementFormEvent("solution")
	h.respond(w, sess.ID, snap)
}

// AcceptChanged handles POST /forms/{id}/accept
func (h *FormHandler) AcceptChanged(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.AcceptEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var snap voteform.Snapshot
	_ = sess.Do(func(form *voteform.Controller) error {
		form.SetAccepted(req.Accepted)
		snap = form.Snapshot()
		return nil
	})

	h.metrics.IncrementFormEvent("accept")
	h.respond(w, sess.ID, snap)
}

// SubmitForm handles POST /forms/{id}/submit
// Returns 409 if the form is not submittable or the email already voted
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.SubmitFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !voteform.NativeOpinionValidity(req.Opinion) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "opinion must be at most 160 characters")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	var (
		voteID string
		draft  voteform.Draft
		snap   voteform.Snapshot
	)
	// The session stays locked until the vote is stored, so a form submits once
	err := sess.Do(func(form *voteform.Controller) error {
		var err error
		snap = form.Snapshot()
		draft, err = form.Draft(req.Opinion)
		if err != nil {
			return err
		}
		voteID, err = castVote(r.Context(), h.db, draft, ipHash, r.UserAgent())
		return err
	})

	switch {
	case errors.Is(err, voteform.ErrNotSubmittable):
		h.metrics.IncrementVoteRejected("not_submittable")
		middleware.JSONResponse(w, http.StatusConflict, models.NotSubmittableResponse{
			Error:      http.StatusText(http.StatusConflict),
			Message:    "Form is not submittable",
			Advisories: snap.Advisories,
		})
		return
	case errors.Is(err, ErrDuplicateVote):
		h.metrics.IncrementVoteRejected("duplicate_email")
		middleware.ErrorResponse(w, http.StatusConflict, ErrDuplicateVote.Error())
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "form_id", sess.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	h.sessions.Delete(sess.ID)
	h.metrics.IncrementVoteCast(draft.Classification.String())

	slog.Info("vote cast", "vote_id", voteID, "form_id", sess.ID,
		"domain", draft.Domain, "classification", draft.Classification.String())

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  voteID,
		Message: "Vote submitted successfully",
	})
}

// session resolves the {id} path value, writing a 404 when it is unknown
func (h *FormHandler) session(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return nil, false
	}
	return sess, true
}

func (h *FormHandler) respond(w http.ResponseWriter, formID string, snap voteform.Snapshot) {
	middleware.JSONResponse(w, http.StatusOK, models.FormResponse{
		FormID: formID,
		State:  snap,
	})
}
