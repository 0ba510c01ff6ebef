// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

// Visible reports whether a candidate can be shown. Once the quota is
// reached only selected candidates stay visible.
func Visible(slug string, selection *SelectionSet, expected int) bool {
	return selection.Size() < expected || selection.Contains(slug)
}

// BuildListing orders candidates, applies the visibility policy and attaches
// selection state and, when tallies exist, result bars.
func BuildListing(candidates []Candidate, selection *SelectionSet, expected int, tallies []Tally) Listing {
	ordered, missing := Order(candidates, tallies)

	listing := Listing{
		Candidates:     make([]ListedCandidate, 0, len(ordered)),
		MissingTallies: missing,
	}

	for _, c := range ordered {
		if !Visible(c.Slug, selection, expected) {
			continue
		}

		item := ListedCandidate{
			Candidate: c,
			Selected:  selection.Contains(c.Slug),
		}

		if len(tallies) > 0 {
			// missing entries were already reported by Order
			bar, _ := BarFor(c.Slug, tallies)
			item.Bar = &bar
		}

		listing.Candidates = append(listing.Candidates, item)
	}

	return listing
}
