// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eligibility

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/idna"
)

//go:embed data/universities.json data/providers.json
var defaultData embed.FS

// University is one entry of the university domain table
type University struct {
	Name    string   `json:"name"`
	Country string   `json:"country,omitempty"`
	Domains []string `json:"domains"`
}

// Tables holds the read-only lookup data used by Classify.
// Build it with NewTables so entries are normalized.
type Tables struct {
	universities []University
	providers    []string
}

// NewTables normalizes domain entries (lowercase ASCII, no surrounding spaces
// or leading '@') and drops empty or invalid ones. An empty entry would
// otherwise match everything.
func NewTables(universities []University, providers []string) Tables {
	t := Tables{
		universities: make([]University, 0, len(universities)),
		providers:    normalizeEntries(providers),
	}

	for _, u := range universities {
		domains := normalizeEntries(u.Domains)
		if len(domains) == 0 {
			continue
		}
		t.universities = append(t.universities, University{
			Name:    u.Name,
			Country: u.Country,
			Domains: domains,
		})
	}

	return t
}

// LoadTables reads the university and provider tables from JSON files.
// An empty path falls back to the embedded default for that table.
func LoadTables(universitiesPath, providersPath string) (Tables, error) {
	uniData, err := readTable(universitiesPath, "data/universities.json")
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read universities table: %w", err)
	}

	provData, err := readTable(providersPath, "data/providers.json")
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read providers table: %w", err)
	}

	var universities []University
	if err := json.Unmarshal(uniData, &universities); err != nil {
		return Tables{}, fmt.Errorf("failed to parse universities table: %w", err)
	}

	var providers []string
	if err := json.Unmarshal(provData, &providers); err != nil {
		return Tables{}, fmt.Errorf("failed to parse providers table: %w", err)
	}

	return NewTables(universities, providers), nil
}

// DefaultTables returns the embedded sample tables
func DefaultTables() (Tables, error) {
	return LoadTables("", "")
}

func readTable(path, embedded string) ([]byte, error) {
	if path == "" {
		return defaultData.ReadFile(embedded)
	}
	return os.ReadFile(path)
}

// Universities returns a copy of the university table
func (t Tables) Universities() []University {
	out := make([]University, len(t.universities))
	copy(out, t.universities)
	return out
}

// Providers returns a copy of the provider table
func (t Tables) Providers() []string {
	out := make([]string, len(t.providers))
	copy(out, t.providers)
	return out
}

// UniversityFor returns the first university whose domains suffix-match domain
func (t Tables) UniversityFor(domain string) (University, bool) {
	for _, u := range t.universities {
		if hasSuffixIn(domain, u.Domains) {
			return u, true
		}
	}
	return University{}, false
}

func (t Tables) isUniversity(domain string) bool {
	_, ok := t.UniversityFor(domain)
	return ok
}

func (t Tables) isProvider(domain string) bool {
	return hasSuffixIn(domain, t.providers)
}

func normalizeEntries(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), "@")
		if e == "" {
			continue
		}
		// same form as Domain, so unicode entries match punycode domains
		ascii, err := idna.Lookup.ToASCII(e)
		if err != nil || ascii == "" {
			continue
		}
		out = append(out, ascii)
	}
	return out
}
