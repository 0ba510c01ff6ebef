// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command domaincheck classifies email addresses against the university and
// provider domain tables the server uses.
//
//	domaincheck student@mit.edu someone@gmail.com
//	cat emails.txt | domaincheck --universities unis.json
//
// The exit status is 1 if any address belongs to a public email provider
// and 2 on usage or table errors.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
