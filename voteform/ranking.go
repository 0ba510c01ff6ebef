// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import (
	"fmt"
	"sort"
)

// Order sorts candidates by the position of their entry in tallies. With no
// tallies the supplied order is kept. Candidates without a tally entry go
// last, in supplied order, and their slugs are returned as missing.
func Order(candidates []Candidate, tallies []Tally) ([]Candidate, []string) {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	if len(tallies) == 0 {
		return ordered, nil
	}

	positions := tallyPositions(tallies)

	var missing []string
	for _, c := range ordered {
		if _, ok := positions[c.Slug]; !ok {
			missing = append(missing, c.Slug)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, iOK := positions[ordered[i].Slug]
		pj, jOK := positions[ordered[j].Slug]

		// 1. Tallied candidates come first
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}

		// 2. Earlier tally entry wins
		return pi < pj
	})

	return ordered, missing
}

// BarFor computes the result bar for slug. Width is count / (sum/2) * 100, so
// a solution holding half of all votes renders at full width. A zero sum
// yields width 0. A slug with no entry returns a zero Bar and an error
// wrapping ErrMissingTallyEntry; callers render the zero Bar.
func BarFor(slug string, tallies []Tally) (Bar, error) {
	i := tallyIndex(slug, tallies)
	if i < 0 {
		return Bar{}, fmt.Errorf("%w: %s", ErrMissingTallyEntry, slug)
	}

	bar := Bar{Count: tallies[i].VoteCount}

	sum := tallySum(tallies)
	if sum > 0 {
		bar.WidthPercent = float64(bar.Count) / (float64(sum) / 2) * 100
	}

	return bar, nil
}

// tallyPositions maps each slug to its first index in tallies
func tallyPositions(tallies []Tally) map[string]int {
	positions := make(map[string]int, len(tallies))
	for i, t := range tallies {
		if _, seen := positions[t.Solution]; !seen {
			positions[t.Solution] = i
		}
	}
	return positions
}

func tallyIndex(slug string, tallies []Tally) int {
	for i, t := range tallies {
		if t.Solution == slug {
			return i
		}
	}
	return -1
}

func tallySum(tallies []Tally) int {
	sum := 0
	for _, t := range tallies {
		sum += t.VoteCount
	}
	return sum
}
