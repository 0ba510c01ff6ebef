// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eligibility

import (
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
)

// Classification is the eligibility outcome for an email address
type Classification int

const (
	NoInput Classification = iota
	Eligible
	NonUniversity
	UnknownUniversity
)

func (c Classification) String() string {
	switch c {
	case Eligible:
		return "eligible"
	case NonUniversity:
		return "non_university"
	case UnknownUniversity:
		return "unknown_university"
	default:
		return "no_input"
	}
}

// MarshalText lets classifications appear as strings in JSON payloads
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Classification) UnmarshalText(text []byte) error {
	switch string(text) {
	case "no_input":
		*c = NoInput
	case "eligible":
		*c = Eligible
	case "non_university":
		*c = NonUniversity
	case "unknown_university":
		*c = UnknownUniversity
	default:
		return fmt.Errorf("unknown classification %q", text)
	}
	return nil
}

// Classify decides which table (if any) the email's domain belongs to.
// University domains take precedence over providers. Malformed input is
// NoInput, never an error.
func Classify(email string, t Tables) Classification {
	domain := Domain(email)
	if domain == "" {
		return NoInput
	}

	if t.isUniversity(domain) {
		return Eligible
	}
	if t.isProvider(domain) {
		return NonUniversity
	}

	return UnknownUniversity
}

// Domain returns the normalized domain of a bare email address, or "" if the
// address is not syntactically valid.
func Domain(email string) string {
	if email == "" {
		return ""
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return ""
	}

	at := strings.IndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}

	domain, err := idna.Lookup.ToASCII(strings.ToLower(email[at+1:]))
	if err != nil {
		return ""
	}

	return domain
}

// hasSuffixIn reports whether domain ends with any of the given entries
func hasSuffixIn(domain string, entries []string) bool {
	for _, entry := range entries {
		if strings.HasSuffix(domain, entry) {
			return true
		}
	}
	return false
}
