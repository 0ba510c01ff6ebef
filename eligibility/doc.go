// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package eligibility classifies voter email addresses by domain.

# Classification

Classify maps an email onto one of four outcomes:

  - NoInput: empty or syntactically invalid address
  - Eligible: domain suffix-matches a university domain
  - NonUniversity: domain suffix-matches a generic email provider
  - UnknownUniversity: valid domain found in neither table

Suffix matching lets department subdomains through without listing them:

	tables := eligibility.NewTables(
		[]eligibility.University{{Name: "MIT", Domains: []string{"mit.edu"}}},
		[]string{"gmail.com"},
	)
	eligibility.Classify("a@cs.mit.edu", tables) // Eligible

# Tables

Tables are injected rather than global. LoadTables reads JSON files in the
world-universities format; empty paths fall back to the embedded sample data.
*/
package eligibility
