// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/univote/cliparse"
	"github.com/danielhkuo/univote/db"
	"github.com/danielhkuo/univote/eligibility"
)

// TestAdminKey is the admin key of GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       ":memory:",
		DatabaseType:      db.TypeSQLite,
		AdminKey:          TestAdminKey,
		IPHashSalt:        "test-ip-salt",
		ExpectedSolutions: 2,
		ShowResults:       true,
		SessionTTL:        30 * time.Minute,
		SweepSchedule:     "@every 5m",
		ResultsSchedule:   "@every 1m",
		LogLevel:          "debug",
	}
}

// TestTables returns small domain tables: mit.edu and stanford.edu are
// universities, gmail.com and outlook.com are providers
func TestTables() eligibility.Tables {
	return eligibility.NewTables(
		[]eligibility.University{
			{Name: "Massachusetts Institute of Technology", Country: "United States", Domains: []string{"mit.edu"}},
			{Name: "Stanford University", Country: "United States", Domains: []string{"stanford.edu"}},
		},
		[]string{"gmail.com", "outlook.com"},
	)
}

// AddTestSolution appends a solution to the display order
func AddTestSolution(t *testing.T, conn *sql.DB, slug, name string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO solution (slug, name, position)
		SELECT CAST($1 AS TEXT), CAST($2 AS TEXT), COALESCE(MAX(position), 0) + 1 FROM solution
	`, slug, name)
	if err != nil {
		t.Fatalf("Failed to create test solution: %v", err)
	}
}

// CastTestVote stores an eligible vote for email selecting slugs and
// returns its ID
func CastTestVote(t *testing.T, conn *sql.DB, email string, slugs ...string) string {
	t.Helper()

	voteID := uuid.NewString()
	domain := email[strings.LastIndex(email, "@")+1:]
	_, err := conn.Exec(`
		INSERT INTO vote (id, email, name, opinion, email_domain, classification, created_at)
		VALUES ($1, $2, 'Test Voter', '', $3, 'eligible', $4)
	`, voteID, strings.ToLower(email), domain, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	for _, slug := range slugs {
		_, err := conn.Exec(`
			INSERT INTO vote_solution (vote_id, solution_slug)
			VALUES ($1, $2)
		`, voteID, slug)
		if err != nil {
			t.Fatalf("Failed to create test vote solution: %v", err)
		}
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
