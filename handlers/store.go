// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/univote/db"
	"github.com/danielhkuo/univote/eligibility"
	"github.com/danielhkuo/univote/metrics"
	"github.com/danielhkuo/univote/voteform"
)

// ErrDuplicateVote is returned when a vote for the email already exists
var ErrDuplicateVote = errors.New("vote already exists for this email")

// LoadSolutions returns the candidate solutions in display order
func LoadSolutions(ctx context.Context, conn *sql.DB) ([]voteform.Candidate, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT slug, name
		FROM solution
		ORDER BY position, slug
	`)
	if err != nil {
		return nil, fmt.Errorf("query solutions: %w", err)
	}
	defer rows.Close()

	solutions := []voteform.Candidate{}
	for rows.Next() {
		var c voteform.Candidate
		if err := rows.Scan(&c.Slug, &c.Name); err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		solutions = append(solutions, c)
	}

	return solutions, rows.Err()
}

// rankedTally is a tally row with its display name
type rankedTally struct {
	voteform.Tally
	Name string
}

func loadRankedTallies(ctx context.Context, conn *sql.DB) ([]rankedTally, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT s.slug, s.name, COUNT(vs.vote_id) AS votes
		FROM solution s
		LEFT JOIN vote_solution vs ON vs.solution_slug = s.slug
		GROUP BY s.slug, s.name, s.position
		ORDER BY votes DESC, s.position, s.slug
	`)
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	tallies := []rankedTally{}
	for rows.Next() {
		var t rankedTally
		if err := rows.Scan(&t.Solution, &t.Name, &t.VoteCount); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}

	return tallies, rows.Err()
}

// LoadTallies returns vote counts per solution, highest first. Every
// solution appears, including those with no votes.
func LoadTallies(ctx context.Context, conn *sql.DB) ([]voteform.Tally, error) {
	ranked, err := loadRankedTallies(ctx, conn)
	if err != nil {
		return nil, err
	}

	tallies := make([]voteform.Tally, len(ranked))
	for i, t := range ranked {
		tallies[i] = t.Tally
	}
	return tallies, nil
}

// FormConfig assembles the form input from the stored solutions and, when
// results are shown, their tallies
func FormConfig(ctx context.Context, conn *sql.DB, expected int, tables eligibility.Tables, withResults bool) (voteform.Config, error) {
	solutions, err := LoadSolutions(ctx, conn)
	if err != nil {
		return voteform.Config{}, err
	}

	cfg := voteform.Config{
		Candidates:        solutions,
		ExpectedSolutions: expected,
		Tables:            tables,
	}

	if withResults {
		cfg.Tallies, err = LoadTallies(ctx, conn)
		if err != nil {
			return voteform.Config{}, err
		}
	}

	return cfg, nil
}

// reportMissingTallies logs and counts candidates rendered without a tally
func reportMissingTallies(m *metrics.Metrics, snap voteform.Snapshot) {
	if len(snap.MissingTallies) == 0 {
		return
	}
	slog.Warn("missing tally entries", "solutions", snap.MissingTallies)
	m.AddMissingTallyEntries(len(snap.MissingTallies))
}

// castVote stores a submitted draft and its selected solutions in one
// transaction and returns the new vote ID
func castVote(ctx context.Context, conn *sql.DB, draft voteform.Draft, ipHash, userAgent string) (string, error) {
	voteID := uuid.NewString()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, email, name, opinion, email_domain, classification, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, voteID, strings.ToLower(draft.Email), draft.Name, draft.Opinion, draft.Domain,
		draft.Classification.String(), nullable(ipHash), nullable(userAgent), time.Now().UTC())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return "", ErrDuplicateVote
		}
		return "", fmt.Errorf("insert vote: %w", err)
	}

	for _, slug := range draft.Solutions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vote_solution (vote_id, solution_slug)
			VALUES ($1, $2)
		`, voteID, slug)
		if err != nil {
			return "", fmt.Errorf("insert vote solution %s: %w", slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit vote: %w", err)
	}

	return voteID, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
