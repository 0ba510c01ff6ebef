// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import (
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/univote/eligibility"
)

// Field limits mirrored from the form inputs
const (
	MaxEmailLength   = 50
	MaxNameLength    = 50
	MaxOpinionLength = 160
)

// FieldValidity tracks the email and name fields. It annotates semantic
// eligibility on top of native validity but never overrides it.
type FieldValidity struct {
	tables eligibility.Tables
	Email  EmailState
	Name   NameState
}

func NewFieldValidity(tables eligibility.Tables) *FieldValidity {
	return &FieldValidity{tables: tables}
}

// OnEmailValidated records the outcome of native validation for the email
// field and returns nativeValid unchanged.
func (f *FieldValidity) OnEmailValidated(raw string, nativeValid bool) bool {
	f.Email = EmailState{Classification: eligibility.NoInput}
	if !nativeValid {
		return nativeValid
	}

	class := eligibility.Classify(raw, f.tables)
	if class == eligibility.NoInput {
		return nativeValid
	}

	f.Email = EmailState{
		Raw:            raw,
		Domain:         eligibility.Domain(raw),
		Classification: class,
	}
	return nativeValid
}

// OnNameValidated records native validity for the name field
func (f *FieldValidity) OnNameValidated(nativeValid bool) bool {
	f.Name.Valid = nativeValid
	return nativeValid
}

// NativeEmailValidity is the server-side stand-in for the input widget's
// required/type=email/maxLength checks.
func NativeEmailValidity(raw string) bool {
	if raw == "" || utf8.RuneCountInString(raw) > MaxEmailLength {
		return false
	}
	return eligibility.Domain(raw) != ""
}

func NativeNameValidity(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	return utf8.RuneCountInString(raw) <= MaxNameLength
}

// NativeOpinionValidity accepts an empty opinion
func NativeOpinionValidity(raw string) bool {
	return utf8.RuneCountInString(raw) <= MaxOpinionLength
}
