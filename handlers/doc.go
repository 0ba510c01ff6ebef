// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the univote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SolutionHandler: Candidate solutions (list, admin add)
  - ResultsHandler: Ranked tallies and vote count
  - FormHandler: Server-side form sessions, one event per request
  - VotingHandler: Stateless vote casting and vote receipts

Handlers are created via constructor functions:

	solutionHandler := handlers.NewSolutionHandler(db, cfg)
	formHandler := handlers.NewFormHandler(db, cfg, tables, store, m)

# Form Sessions

A form session wraps a voteform.Controller. Every event endpoint applies
the server-side equivalent of the input's native validation, feeds the
controller, and returns the new snapshot:

	POST /forms                       → CreateForm
	POST /forms/{id}/email            → EmailChanged
	POST /forms/{id}/name             → NameChanged
	POST /forms/{id}/solutions/{slug} → ToggleSolution (409 past the quota)
	POST /forms/{id}/accept           → AcceptChanged
	POST /forms/{id}/submit           → SubmitForm

SubmitForm stores the vote only when the snapshot is submittable, then
discards the session.

# Stateless Voting

POST /votes replays a complete payload through a fresh controller, so the
same gate applies. Rejections return 422 with the advisories that explain
them.

# Storage

castVote writes the vote and its selected solutions in one transaction.
Emails are unique case-insensitively; a second vote returns
ErrDuplicateVote (409). LoadSolutions and LoadTallies feed both the forms
and the scheduled results refresh.

Solution management requires the X-Admin-Key header.
*/
package handlers
