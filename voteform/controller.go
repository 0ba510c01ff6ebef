// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/univote/eligibility"
)

// Config is the static input of a form
type Config struct {
	Candidates        []Candidate
	Tallies           []Tally
	ExpectedSolutions int
	Tables            eligibility.Tables
}

// Validate rejects configurations the form could never be submitted with
func (c Config) Validate() error {
	if c.ExpectedSolutions <= 0 {
		return fmt.Errorf("%w: expected solutions must be positive, got %d", ErrInvalidConfig, c.ExpectedSolutions)
	}
	if c.ExpectedSolutions > len(c.Candidates) {
		return fmt.Errorf("%w: expected solutions (%d) exceeds candidate count (%d)",
			ErrInvalidConfig, c.ExpectedSolutions, len(c.Candidates))
	}

	seen := make(map[string]bool, len(c.Candidates))
	for _, cand := range c.Candidates {
		if cand.Slug == "" {
			return fmt.Errorf("%w: candidate slug cannot be empty", ErrInvalidConfig)
		}
		if seen[cand.Slug] {
			return fmt.Errorf("%w: duplicate candidate slug %q", ErrInvalidConfig, cand.Slug)
		}
		seen[cand.Slug] = true
	}

	return nil
}

// Controller owns the form state. Every event handler mutates one field and
// then recomputes the snapshot before returning. It is not safe for
// concurrent use; callers sharing one must serialize access.
type Controller struct {
	candidates []Candidate
	known      map[string]bool
	tallies    []Tally
	expected   int

	fields    *FieldValidity
	name      string
	accept    AcceptState
	selection *SelectionSet

	snapshot Snapshot
}

func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		candidates: append([]Candidate(nil), cfg.Candidates...),
		known:      make(map[string]bool, len(cfg.Candidates)),
		tallies:    append([]Tally(nil), cfg.Tallies...),
		expected:   cfg.ExpectedSolutions,
		fields:     NewFieldValidity(cfg.Tables),
		selection:  NewSelectionSet(cfg.ExpectedSolutions),
	}
	for _, cand := range cfg.Candidates {
		c.known[cand.Slug] = true
	}

	c.recompute()
	return c, nil
}

// EmailChanged feeds a native validation result for the email field and
// returns nativeValid unchanged.
func (c *Controller) EmailChanged(raw string, nativeValid bool) bool {
	valid := c.fields.OnEmailValidated(raw, nativeValid)
	c.recompute()
	return valid
}

// NameChanged feeds a native validation result for the name field
func (c *Controller) NameChanged(raw string, nativeValid bool) bool {
	valid := c.fields.OnNameValidated(nativeValid)
	c.name = ""
	if valid {
		c.name = strings.TrimSpace(raw)
	}
	c.recompute()
	return valid
}

// ToggleSolution checks or unchecks a candidate. Unknown slugs are ignored.
func (c *Controller) ToggleSolution(slug string, checked bool) error {
	if !c.known[slug] {
		return nil
	}

	err := c.selection.Toggle(slug, checked)
	c.recompute()
	return err
}

func (c *Controller) SetAccepted(accepted bool) {
	c.accept.Accepted = accepted
	c.recompute()
}

// SetResults replaces the tallies used for ordering and bars
func (c *Controller) SetResults(tallies []Tally) {
	c.tallies = append([]Tally(nil), tallies...)
	c.recompute()
}

// Snapshot returns the state published by the last event
func (c *Controller) Snapshot() Snapshot {
	return c.snapshot
}

// Draft builds the vote to hand off to the transport
func (c *Controller) Draft(opinion string) (Draft, error) {
	if !c.snapshot.CanSubmit {
		return Draft{}, ErrNotSubmittable
	}

	return Draft{
		Email:          c.fields.Email.Raw,
		Name:           c.name,
		Opinion:        strings.TrimSpace(opinion),
		Solutions:      c.selection.Slugs(),
		Domain:         c.fields.Email.Domain,
		Classification: c.fields.Email.Classification,
	}, nil
}

func (c *Controller) recompute() {
	listing := BuildListing(c.candidates, c.selection, c.expected, c.tallies)

	c.snapshot = Snapshot{
		Email:             c.fields.Email,
		NameValid:         c.fields.Name.Valid,
		Accepted:          c.accept.Accepted,
		ExpectedSolutions: c.expected,
		Selected:          c.selection.Slugs(),
		Candidates:        listing.Candidates,
		Advisories:        Advisories(c.fields.Email, c.selection, c.expected),
		MissingTallies:    listing.MissingTallies,
		CanSubmit:         CanSubmit(c.fields.Email, c.fields.Name, c.accept, c.selection, c.expected),
	}
}
