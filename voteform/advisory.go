// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import (
	"fmt"

	"github.com/danielhkuo/univote/eligibility"
)

// Advisory levels
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Advisory kinds
const (
	KindSelectMore        = "select_more"
	KindUnknownUniversity = "unknown_university"
	KindNonUniversity     = "non_university"
)

const (
	unknownUniversityMessage = "Domain of your email address doesn't appear to be from any of the " +
		"participating universities. We will receive your vote and contact you in order to " +
		"coordinate adding the participation of your university."
	nonUniversityMessage = "It appears that you've entered email address provided by one of known " +
		"non university email providers. Please enter email address provided by your university."
)

// Advisory is a message for the renderer. It carries no state of its own.
type Advisory struct {
	Level     string `json:"level"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Remaining int    `json:"remaining,omitempty"`
}

// Advisories derives the messages to show for the current state
func Advisories(email EmailState, selection *SelectionSet, expected int) []Advisory {
	advisories := []Advisory{}

	if remaining := expected - selection.Size(); remaining != 0 {
		noun := "solutions"
		if remaining == 1 {
			noun = "solution"
		}
		advisories = append(advisories, Advisory{
			Level:     LevelError,
			Kind:      KindSelectMore,
			Message:   fmt.Sprintf("Select %d more %s", remaining, noun),
			Remaining: remaining,
		})
	}

	if email.Raw == "" {
		return advisories
	}

	switch email.Classification {
	case eligibility.UnknownUniversity:
		advisories = append(advisories, Advisory{
			Level:   LevelInfo,
			Kind:    KindUnknownUniversity,
			Message: unknownUniversityMessage,
		})
	case eligibility.NonUniversity:
		advisories = append(advisories, Advisory{
			Level:   LevelError,
			Kind:    KindNonUniversity,
			Message: nonUniversityMessage,
		})
	}

	return advisories
}
