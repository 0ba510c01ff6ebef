// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the univote API server.

univote collects votes for climate solutions from university members.
A voter enters an email address, a name, picks a fixed number of
solutions and accepts the terms. Email domains are classified against a
table of university domains and a table of public email providers:
university addresses are eligible, unknown domains are accepted with an
advisory, and provider addresses block submission.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:univote.db ADMIN_KEY=... IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -n 3

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - ADMIN_KEY (--admin-key): Key for adding solutions
  - IP_HASH_SALT (--ip-salt): Salt for client IP hashing

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - EXPECTED_SOLUTIONS (-n): Solutions per vote (default: 3)
  - SHOW_RESULTS: Show prior results on forms (default: true)
  - LOG_LEVEL, LOG_FILE: Logging

A .env file and a --config file are also read; see package cliparse.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voteform: Form state machine (fields, selection quota, ordering, gate)
  - eligibility: Email domain classification
  - sessions: Server-side form sessions and scheduled jobs
  - handlers: HTTP request handlers (solutions, results, forms, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin key validation and IP hashing
  - db: Connections and schema creation
  - logging, metrics: zap-backed slog and Prometheus
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
