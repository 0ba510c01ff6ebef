// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/danielhkuo/univote/eligibility"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

var classColors = map[eligibility.Classification]*color.Color{
	eligibility.Eligible:          color.New(color.FgGreen),
	eligibility.UnknownUniversity: color.New(color.FgYellow),
	eligibility.NonUniversity:     color.New(color.FgRed, color.Bold),
	eligibility.NoInput:           color.New(color.Faint),
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("domaincheck", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	universities := flags.String("universities", "", "University domain table (JSON); embedded sample if empty")
	providers := flags.String("providers", "", "Email provider table (JSON); embedded sample if empty")
	noColor := flags.Bool("no-color", false, "Disable colored output")

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if *noColor {
		color.NoColor = true
	}

	tables, err := eligibility.LoadTables(*universities, *providers)
	if err != nil {
		fmt.Fprintf(stderr, "load tables: %v\n", err)
		return exitUsage
	}

	emails := flags.Args()
	if len(emails) == 0 {
		emails, err = readLines(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "read stdin: %v\n", err)
			return exitUsage
		}
	}

	code := exitOK
	for _, email := range emails {
		class := eligibility.Classify(email, tables)
		if class == eligibility.NonUniversity {
			code = exitRejected
		}
		printResult(stdout, email, class, tables)
	}

	return code
}

func printResult(w io.Writer, email string, class eligibility.Classification, tables eligibility.Tables) {
	detail := ""
	if class == eligibility.Eligible {
		if uni, ok := tables.UniversityFor(eligibility.Domain(email)); ok {
			detail = "\t" + uni.Name
		}
	}

	classColors[class].Fprintf(w, "%-18s", class)
	fmt.Fprintf(w, "\t%s%s\n", email, detail)
}

// readLines returns the non-blank lines of r
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
