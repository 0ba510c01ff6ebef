// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voteform implements the vote form state machine.

# Components

  - FieldValidity: email and name validity, annotated with eligibility
  - SelectionSet: ordered, capacity-bounded set of chosen solutions
  - Order / BarFor: result ordering and bar widths
  - BuildListing: visibility policy over the candidate list
  - CanSubmit: the submit gate
  - Advisories: info and error messages for the renderer
  - Controller: composition root that owns all of the above

# Data Flow

Every Controller event mutates one field and recomputes an immutable
Snapshot before returning:

	ctrl, err := voteform.New(voteform.Config{
		Candidates:        candidates,
		ExpectedSolutions: 3,
		Tables:            tables,
	})
	ctrl.EmailChanged("student@cs.mit.edu", true)
	ctrl.ToggleSolution("plant-trees", true)
	snap := ctrl.Snapshot() // snap.CanSubmit, snap.Candidates, snap.Advisories

# Quota

The selection quota is a hard invariant: ToggleSolution returns
ErrSelectionFull rather than exceeding ExpectedSolutions. The listing also
hides unselected candidates once the quota is reached.

# Result Bars

Bars are scaled against half the vote total:

	width = count / (sum / 2) * 100

A solution holding half of all votes renders at full width.
*/
package voteform
