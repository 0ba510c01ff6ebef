// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/univote/models"
	"github.com/danielhkuo/univote/testutil"
	"github.com/danielhkuo/univote/voteform"
)

func TestListSolutions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSolutionHandler(db, cfg)

	t.Run("empty", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListSolutions(w, testutil.MakeRequest("GET", "/solutions", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SolutionsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Solutions == nil || len(resp.Solutions) != 0 {
			t.Errorf("Expected empty solutions array, got %v", resp.Solutions)
		}
		if resp.ExpectedSolutions != cfg.ExpectedSolutions {
			t.Errorf("Expected expected_solutions %d, got %d", cfg.ExpectedSolutions, resp.ExpectedSolutions)
		}
	})

	t.Run("insertion order", func(t *testing.T) {
		testutil.AddTestSolution(t, db, "solar-roofs", "Solar roofs")
		testutil.AddTestSolution(t, db, "carbon-tax", "Carbon tax")
		testutil.AddTestSolution(t, db, "plant-trees", "Plant trees")

		w := httptest.NewRecorder()
		handler.ListSolutions(w, testutil.MakeRequest("GET", "/solutions", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SolutionsResponse
		testutil.AssertJSON(t, w, &resp)

		expected := []string{"solar-roofs", "carbon-tax", "plant-trees"}
		if len(resp.Solutions) != len(expected) {
			t.Fatalf("Expected %d solutions, got %d", len(expected), len(resp.Solutions))
		}
		for i, slug := range expected {
			if resp.Solutions[i].Slug != slug {
				t.Errorf("Position %d: expected %s, got %s", i, slug, resp.Solutions[i].Slug)
			}
		}
	})
}

func TestAddSolution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewSolutionHandler(db, cfg)
	admin := map[string]string{"X-Admin-Key": testutil.TestAdminKey}

	tests := []struct {
		name           string
		body           any
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "valid solution",
			body:           models.AddSolutionRequest{Slug: "carbon-tax", Name: "Carbon tax"},
			headers:        admin,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate slug",
			body:           models.AddSolutionRequest{Slug: "carbon-tax", Name: "Carbon tax again"},
			headers:        admin,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing admin key",
			body:           models.AddSolutionRequest{Slug: "rail-first", Name: "Rail first"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong admin key",
			body:           models.AddSolutionRequest{Slug: "rail-first", Name: "Rail first"},
			headers:        map[string]string{"X-Admin-Key": "guess"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing slug",
			body:           models.AddSolutionRequest{Name: "Rail first"},
			headers:        admin,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed slug",
			body:           models.AddSolutionRequest{Slug: "Rail First!", Name: "Rail first"},
			headers:        admin,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           models.AddSolutionRequest{Slug: "rail-first", Name: "   "},
			headers:        admin,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.AddSolution(w, testutil.MakeRequest("POST", "/solutions", tt.body, tt.headers))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/solutions", strings.NewReader("{"))
		req.Header.Set("X-Admin-Key", testutil.TestAdminKey)
		w := httptest.NewRecorder()

		handler.AddSolution(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("appends to display order", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.AddSolution(w, testutil.MakeRequest("POST", "/solutions",
			models.AddSolutionRequest{Slug: "rail-first", Name: " Rail first "}, admin))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var created voteform.Candidate
		testutil.AssertJSON(t, w, &created)
		if created.Name != "Rail first" {
			t.Errorf("Expected trimmed name, got %q", created.Name)
		}

		solutions, err := LoadSolutions(t.Context(), db)
		if err != nil {
			t.Fatalf("LoadSolutions: %v", err)
		}
		if len(solutions) != 2 || solutions[1].Slug != "rail-first" {
			t.Errorf("Expected rail-first last, got %v", solutions)
		}
	})
}
