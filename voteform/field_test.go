// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

import (
	"strings"
	"testing"

	"github.com/danielhkuo/univote/eligibility"
	"github.com/stretchr/testify/assert"
)

func testTables() eligibility.Tables {
	return eligibility.NewTables(
		[]eligibility.University{{Name: "MIT", Domains: []string{"mit.edu"}}},
		[]string{"gmail.com"},
	)
}

func TestOnEmailValidated(t *testing.T) {
	f := NewFieldValidity(testTables())

	assert.True(t, f.OnEmailValidated("student@cs.mit.edu", true))
	assert.Equal(t, EmailState{
		Raw:            "student@cs.mit.edu",
		Domain:         "cs.mit.edu",
		Classification: eligibility.Eligible,
	}, f.Email)

	// semantic ineligibility never flips native validity
	assert.True(t, f.OnEmailValidated("someone@gmail.com", true))
	assert.Equal(t, eligibility.NonUniversity, f.Email.Classification)
	assert.Equal(t, "someone@gmail.com", f.Email.Raw)

	assert.False(t, f.OnEmailValidated("student@cs.mit.edu", false))
	assert.Equal(t, EmailState{Classification: eligibility.NoInput}, f.Email)
}

func TestOnEmailValidated_NativeValidButUnparsable(t *testing.T) {
	f := NewFieldValidity(testTables())

	assert.True(t, f.OnEmailValidated("not-an-email", true))
	assert.Equal(t, "", f.Email.Raw)
	assert.Equal(t, eligibility.NoInput, f.Email.Classification)
}

func TestOnNameValidated(t *testing.T) {
	f := NewFieldValidity(testTables())

	assert.True(t, f.OnNameValidated(true))
	assert.True(t, f.Name.Valid)
	assert.False(t, f.OnNameValidated(false))
	assert.False(t, f.Name.Valid)
}

func TestNativeValidity(t *testing.T) {
	assert.True(t, NativeEmailValidity("a@mit.edu"))
	assert.False(t, NativeEmailValidity(""))
	assert.False(t, NativeEmailValidity("a@"))
	assert.False(t, NativeEmailValidity(strings.Repeat("a", 45)+"@mit.edu"))

	assert.True(t, NativeNameValidity("Ada Lovelace"))
	assert.False(t, NativeNameValidity("   "))
	assert.False(t, NativeNameValidity(strings.Repeat("n", MaxNameLength+1)))

	assert.True(t, NativeOpinionValidity(""))
	assert.True(t, NativeOpinionValidity(strings.Repeat("o", MaxOpinionLength)))
	assert.False(t, NativeOpinionValidity(strings.Repeat("o", MaxOpinionLength+1)))
}
