// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/univote/eligibility"
	"github.com/danielhkuo/univote/testutil"
	"github.com/danielhkuo/univote/voteform"
)

func TestLoadTallies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	tallies, err := LoadTallies(t.Context(), db)
	require.NoError(t, err)
	assert.Empty(t, tallies)

	testutil.AddTestSolution(t, db, "plant-trees", "Plant trees")
	testutil.AddTestSolution(t, db, "carbon-tax", "Carbon tax")
	testutil.AddTestSolution(t, db, "solar-roofs", "Solar roofs")
	testutil.CastTestVote(t, db, "a@mit.edu", "solar-roofs")

	tallies, err = LoadTallies(t.Context(), db)
	require.NoError(t, err)

	assert.Equal(t, []voteform.Tally{
		{Solution: "solar-roofs", VoteCount: 1},
		{Solution: "plant-trees", VoteCount: 0},
		{Solution: "carbon-tax", VoteCount: 0},
	}, tallies)
}

func TestFormConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.AddTestSolution(t, db, "plant-trees", "Plant trees")
	testutil.AddTestSolution(t, db, "carbon-tax", "Carbon tax")

	cfg, err := FormConfig(t.Context(), db, 2, testutil.TestTables(), false)
	require.NoError(t, err)
	assert.Len(t, cfg.Candidates, 2)
	assert.Nil(t, cfg.Tallies)
	assert.NoError(t, cfg.Validate())

	cfg, err = FormConfig(t.Context(), db, 2, testutil.TestTables(), true)
	require.NoError(t, err)
	assert.Len(t, cfg.Tallies, 2)
}

func TestCastVoteRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.AddTestSolution(t, db, "carbon-tax", "Carbon tax")

	draft := voteform.Draft{
		Email:          "a@mit.edu",
		Name:           "Ada",
		Solutions:      []string{"carbon-tax", "no-such-solution"},
		Domain:         "mit.edu",
		Classification: eligibility.Eligible,
	}

	_, err := castVote(t.Context(), db, draft, "", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateVote)

	var votes int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM vote").Scan(&votes))
	assert.Equal(t, 0, votes)
}

func TestCastVoteDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.AddTestSolution(t, db, "carbon-tax", "Carbon tax")
	draft := voteform.Draft{
		Email:          "a@mit.edu",
		Name:           "Ada",
		Solutions:      []string{"carbon-tax"},
		Domain:         "mit.edu",
		Classification: eligibility.Eligible,
	}

	_, err := castVote(t.Context(), db, draft, "hash", "test-agent")
	require.NoError(t, err)

	draft.Email = "A@MIT.EDU"
	_, err = castVote(t.Context(), db, draft, "hash", "test-agent")
	assert.ErrorIs(t, err, ErrDuplicateVote)
}
