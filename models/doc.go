// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - AddSolutionRequest: slug, name
  - EmailEventRequest: email
  - NameEventRequest: name
  - ToggleSolutionRequest: checked
  - AcceptEventRequest: accepted
  - SubmitFormRequest: opinion
  - CastVoteRequest: email, name, opinion, solutions, accepted

# Response Types

Types for JSON responses:

  - SolutionsResponse: solutions, expected_solutions
  - FormResponse: form_id, state (voteform.Snapshot)
  - CastVoteResponse: vote_id, message
  - NotSubmittableResponse: error, message, advisories
  - ResultsResponse: results (ranked, with bar widths), vote_count
  - ErrorResponse: error, message

# Domain Types

  - Vote: a cast vote; email, IP hash and user agent never leave the server

Candidates, tallies and form snapshots are the voteform package's types.
*/
package models
