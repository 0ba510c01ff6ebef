// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eligibility

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() Tables {
	return NewTables(
		[]University{
			{Name: "Massachusetts Institute of Technology", Domains: []string{"mit.edu"}},
			{Name: "University of Oxford", Domains: []string{" OX.AC.UK "}},
			{Name: "Universität zu Köln", Domains: []string{"uni-köln.de"}},
		},
		[]string{"gmail.com", "@outlook.com", "müller-mail.de"},
	)
}

func TestClassify(t *testing.T) {
	tables := testTables()

	testCases := []struct {
		name  string
		email string
		want  Classification
	}{
		{"empty", "", NoInput},
		{"no at sign", "student", NoInput},
		{"no domain", "student@", NoInput},
		{"display name form", "Student <student@mit.edu>", NoInput},
		{"exact university domain", "a@mit.edu", Eligible},
		{"department subdomain", "a@mail.mit.edu", Eligible},
		{"uppercase domain", "a@CS.MIT.EDU", Eligible},
		{"normalized table entry", "a@ox.ac.uk", Eligible},
		{"lookalike suffix", "a@mit.edu.evil.com", UnknownUniversity},
		{"provider", "a@gmail.com", NonUniversity},
		{"provider with at prefix in table", "a@outlook.com", NonUniversity},
		{"unknown domain", "a@uni-somewhere.ac.at", UnknownUniversity},
		{"unicode table entry", "a@uni-köln.de", Eligible},
		{"unicode table entry, punycode address", "a@xn--uni-kln-e1a.de", Eligible},
		{"unicode provider entry", "a@müller-mail.de", NonUniversity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.email, tables))
		})
	}
}

func TestClassify_EmptyTables(t *testing.T) {
	empty := NewTables(nil, nil)

	assert.Equal(t, NoInput, Classify("", empty))
	assert.Equal(t, UnknownUniversity, Classify("a@mit.edu", empty))
}

func TestClassify_UniversityWinsOverProvider(t *testing.T) {
	tables := NewTables(
		[]University{{Name: "Provider U", Domains: []string{"gmail.com"}}},
		[]string{"gmail.com"},
	)

	assert.Equal(t, Eligible, Classify("a@gmail.com", tables))
}

func TestNewTables_PunycodeEntries(t *testing.T) {
	tables := NewTables(
		[]University{{Name: "Universität zu Köln", Domains: []string{"Uni-Köln.de"}}},
		nil,
	)

	require.Len(t, tables.Universities(), 1)
	assert.Equal(t, []string{"xn--uni-kln-e1a.de"}, tables.Universities()[0].Domains)
	assert.Equal(t, Eligible, Classify("student@uni-köln.de", tables))
}

func TestNewTables_DropsEmptyEntries(t *testing.T) {
	tables := NewTables(
		[]University{
			{Name: "Blank", Domains: []string{"", "  "}},
			{Name: "Real", Domains: []string{"tum.de", ""}},
		},
		[]string{"", "gmail.com"},
	)

	require.Len(t, tables.Universities(), 1)
	assert.Equal(t, []string{"tum.de"}, tables.Universities()[0].Domains)
	assert.Equal(t, []string{"gmail.com"}, tables.Providers())

	// an empty suffix would have classified everything as a provider
	assert.Equal(t, UnknownUniversity, Classify("a@example.org", tables))
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "cs.mit.edu", Domain("a@CS.mit.edu"))
	assert.Equal(t, "", Domain("not-an-email"))
	assert.Equal(t, "", Domain(""))
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "no_input", NoInput.String())
	assert.Equal(t, "eligible", Eligible.String())
	assert.Equal(t, "non_university", NonUniversity.String())
	assert.Equal(t, "unknown_university", UnknownUniversity.String())

	text, err := Eligible.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "eligible", string(text))

	for _, c := range []Classification{NoInput, Eligible, NonUniversity, UnknownUniversity} {
		var back Classification
		require.NoError(t, back.UnmarshalText([]byte(c.String())))
		assert.Equal(t, c, back)
	}

	var bad Classification
	assert.Error(t, bad.UnmarshalText([]byte("maybe")))
}

func TestDefaultTables(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	assert.NotEmpty(t, tables.Universities())
	assert.NotEmpty(t, tables.Providers())
	assert.Equal(t, Eligible, Classify("student@cs.mit.edu", tables))
	assert.Equal(t, NonUniversity, Classify("student@gmail.com", tables))
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()
	uniPath := filepath.Join(dir, "universities.json")
	provPath := filepath.Join(dir, "providers.json")

	require.NoError(t, os.WriteFile(uniPath, []byte(`[
		{"name": "Test University", "country": "Nowhere", "domains": ["test.edu"], "web_pages": ["https://test.edu"]}
	]`), 0644))
	require.NoError(t, os.WriteFile(provPath, []byte(`["mail.example"]`), 0644))

	t.Run("FromFiles", func(t *testing.T) {
		tables, err := LoadTables(uniPath, provPath)
		require.NoError(t, err)

		assert.Equal(t, Eligible, Classify("a@test.edu", tables))
		assert.Equal(t, NonUniversity, Classify("a@mail.example", tables))
		assert.Equal(t, UnknownUniversity, Classify("a@mit.edu", tables))

		u, ok := tables.UniversityFor("dept.test.edu")
		require.True(t, ok)
		assert.Equal(t, "Test University", u.Name)
	})

	t.Run("EmbeddedProvidersFallback", func(t *testing.T) {
		tables, err := LoadTables(uniPath, "")
		require.NoError(t, err)
		assert.Equal(t, NonUniversity, Classify("a@gmail.com", tables))
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadTables(filepath.Join(dir, "missing.json"), "")
		assert.Error(t, err)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		badPath := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(badPath, []byte(`{not json`), 0644))

		_, err := LoadTables("", badPath)
		assert.Error(t, err)
	})
}
