// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import (
	"errors"

	"github.com/danielhkuo/univote/eligibility"
)

var (
	ErrSelectionFull     = errors.New("selection quota reached")
	ErrMissingTallyEntry = errors.New("missing tally entry")
	ErrInvalidConfig     = errors.New("invalid form configuration")
	ErrNotSubmittable    = errors.New("form is not submittable")
)

// Candidate is one selectable solution
type Candidate struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Tally is the prior vote count for one solution. The order of a tally
// slice is the display order.
type Tally struct {
	Solution  string `json:"solution"`
	VoteCount int    `json:"vote_count"`
}

// Bar is the rendered result bar for one candidate.
// WidthPercent is scaled against half of all votes, so it can exceed 100.
type Bar struct {
	Count        int     `json:"count"`
	WidthPercent float64 `json:"width_percent"`
}

// EmailState is the semantic state of the email field. Raw and Domain stay
// empty until the field holds a syntactically valid address.
type EmailState struct {
	Raw            string                     `json:"raw,omitempty"`
	Domain         string                     `json:"domain,omitempty"`
	Classification eligibility.Classification `json:"classification"`
}

type NameState struct {
	Valid bool `json:"valid"`
}

type AcceptState struct {
	Accepted bool `json:"accepted"`
}

// ListedCandidate is a visible candidate with its selection and bar state
type ListedCandidate struct {
	Candidate
	Selected bool `json:"selected"`
	Bar      *Bar `json:"bar,omitempty"`
}

// Listing is the ordered set of visible candidates
type Listing struct {
	Candidates     []ListedCandidate
	MissingTallies []string
}

// Snapshot is the derived form state published after every mutation.
// Treat it as read-only.
type Snapshot struct {
	Email             EmailState        `json:"email"`
	NameValid         bool              `json:"name_valid"`
	Accepted          bool              `json:"accepted"`
	ExpectedSolutions int               `json:"expected_solutions"`
	Selected          []string          `json:"selected"`
	Candidates        []ListedCandidate `json:"candidates"`
	Advisories        []Advisory        `json:"advisories"`
	MissingTallies    []string          `json:"missing_tallies,omitempty"`
	CanSubmit         bool              `json:"can_submit"`
}

// Draft is the vote handed off to the transport on submit
type Draft struct {
	Email          string                     `json:"email"`
	Name           string                     `json:"name"`
	Opinion        string                     `json:"opinion"`
	Solutions      []string                   `json:"solutions"`
	Domain         string                     `json:"-"`
	Classification eligibility.Classification `json:"-"`
}
