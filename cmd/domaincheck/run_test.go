// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPlain(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Arguments(t *testing.T) {
	code, out, _ := runPlain(t, "", "student@mit.edu", "someone@college.edu")
	assert.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "eligible")
	assert.Contains(t, lines[0], "Massachusetts Institute of Technology")
	assert.Contains(t, lines[1], "unknown_university")
	assert.Contains(t, lines[1], "someone@college.edu")
}

func TestRun_ProviderRejected(t *testing.T) {
	code, out, _ := runPlain(t, "", "student@mit.edu", "someone@gmail.com")
	assert.Equal(t, exitRejected, code)
	assert.Contains(t, out, "non_university")
}

func TestRun_Stdin(t *testing.T) {
	code, out, _ := runPlain(t, "student@stanford.edu\n\n  \nfoo@bar.ac.uk\n")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, "Stanford University")
}

func TestRun_MissingTable(t *testing.T) {
	code, _, errOut := runPlain(t, "", "--universities", "/nonexistent/unis.json", "a@mit.edu")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "load tables")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runPlain(t, "", "--bogus")
	assert.Equal(t, exitUsage, code)
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader(" a@b.edu \n\nc@d.edu"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.edu", "c@d.edu"}, lines)
}
