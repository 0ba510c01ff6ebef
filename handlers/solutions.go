// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/danielhkuo/univote/auth"
	"github.com/danielhkuo/univote/cliparse"
	"github.com/danielhkuo/univote/db"
	"github.com/danielhkuo/univote/middleware"
	"github.com/danielhkuo/univote/models"
	"github.com/danielhkuo/univote/voteform"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type SolutionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSolutionHandler(db *sql.DB, cfg cliparse.Config) *SolutionHandler {
	return &SolutionHandler{db: db, cfg: cfg}
}

// ListSolutions handles GET /solutions
func (h *SolutionHandler) ListSolutions(w http.ResponseWriter, r *http.Request) {
	solutions, err := LoadSolutions(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load solutions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SolutionsResponse{
		Solutions:         solutions,
		ExpectedSolutions: h.cfg.ExpectedSolutions,
	})
}

// AddSolution handles POST /solutions
func (h *SolutionHandler) AddSolution(w http.ResponseWriter, r *http.Request) {
	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.AddSolutionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Slug = strings.TrimSpace(req.Slug)
	req.Name = strings.TrimSpace(req.Name)

	if req.Slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}
	if !slugPattern.MatchString(req.Slug) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug must be lowercase letters, digits and dashes")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	// Append after the current last solution
	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO solution (slug, name, position)
		SELECT CAST($1 AS TEXT), CAST($2 AS TEXT), COALESCE(MAX(position), 0) + 1 FROM solution
	`, req.Slug, req.Name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Solution already exists")
			return
		}
		slog.Error("failed to insert solution", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add solution")
		return
	}

	slog.Info("solution added", "slug", req.Slug)

	middleware.JSONResponse(w, http.StatusCreated, voteform.Candidate{
		Slug: req.Slug,
		Name: req.Name,
	})
}
