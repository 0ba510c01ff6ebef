// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import "github.com/danielhkuo/univote/eligibility"

// CanSubmit aggregates every field into the submit decision.
// Eligible and UnknownUniversity both pass; only NonUniversity blocks.
func CanSubmit(email EmailState, name NameState, accept AcceptState, selection *SelectionSet, expected int) bool {
	if email.Raw == "" {
		return false
	}
	if email.Classification == eligibility.NonUniversity {
		return false
	}
	if !name.Valid || !accept.Accepted {
		return false
	}
	return selection.Size() == expected
}
