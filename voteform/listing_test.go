// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listedSlugs(listing Listing) []string {
	out := make([]string, len(listing.Candidates))
	for i, c := range listing.Candidates {
		out[i] = c.Slug
	}
	return out
}

func TestBuildListing_QuotaHidesUnselected(t *testing.T) {
	candidates := []Candidate{{Slug: "x"}, {Slug: "y"}, {Slug: "z"}, {Slug: "w"}}
	selection := NewSelectionSet(2)
	require.NoError(t, selection.Toggle("x", true))

	listing := BuildListing(candidates, selection, 2, nil)
	assert.Equal(t, []string{"x", "y", "z", "w"}, listedSlugs(listing))

	require.NoError(t, selection.Toggle("y", true))
	listing = BuildListing(candidates, selection, 2, nil)
	assert.Equal(t, []string{"x", "y"}, listedSlugs(listing))
	for _, c := range listing.Candidates {
		assert.True(t, c.Selected)
		assert.Nil(t, c.Bar)
	}

	require.NoError(t, selection.Toggle("x", false))
	listing = BuildListing(candidates, selection, 2, nil)
	assert.Equal(t, []string{"x", "y", "z", "w"}, listedSlugs(listing))
}

func TestBuildListing_WithTallies(t *testing.T) {
	candidates := []Candidate{{Slug: "a", Name: "A"}, {Slug: "b", Name: "B"}, {Slug: "c", Name: "C"}}
	tallies := []Tally{
		{Solution: "b", VoteCount: 70},
		{Solution: "a", VoteCount: 30},
	}

	listing := BuildListing(candidates, NewSelectionSet(2), 2, tallies)

	require.Equal(t, []string{"b", "a", "c"}, listedSlugs(listing))
	assert.Equal(t, []string{"c"}, listing.MissingTallies)

	require.NotNil(t, listing.Candidates[0].Bar)
	assert.InDelta(t, 140.0, listing.Candidates[0].Bar.WidthPercent, 1e-9)
	assert.InDelta(t, 60.0, listing.Candidates[1].Bar.WidthPercent, 1e-9)

	// missing entry renders as an empty bar instead of failing
	require.NotNil(t, listing.Candidates[2].Bar)
	assert.Equal(t, Bar{}, *listing.Candidates[2].Bar)
}

func TestVisible(t *testing.T) {
	selection := NewSelectionSet(1)
	assert.True(t, Visible("a", selection, 1))

	require.NoError(t, selection.Toggle("a", true))
	assert.True(t, Visible("a", selection, 1))
	assert.False(t, Visible("b", selection, 1))
}
