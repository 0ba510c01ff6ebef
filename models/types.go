package models

import (
	"time"

	"github.com/danielhkuo/univote/voteform"
)

// Request types

type AddSolutionRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type EmailEventRequest struct {
	Email string `json:"email"`
}

type NameEventRequest struct {
	Name string `json:"name"`
}

type ToggleSolutionRequest struct {
	Checked bool `json:"checked"`
}

type AcceptEventRequest struct {
	Accepted bool `json:"accepted"`
}

type SubmitFormRequest struct {
	Opinion string `json:"opinion"`
}

// Stateless cast: the payload is replayed through a fresh form
type CastVoteRequest struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Opinion   string   `json:"opinion"`
	Solutions []string `json:"solutions"`
	Accepted  bool     `json:"accepted"`
}

// Response types

type SolutionsResponse struct {
	Solutions         []voteform.Candidate `json:"solutions"`
	ExpectedSolutions int                  `json:"expected_solutions"`
}

type FormResponse struct {
	FormID string            `json:"form_id"`
	State  voteform.Snapshot `json:"state"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type NotSubmittableResponse struct {
	Error      string              `json:"error"`
	Message    string              `json:"message"`
	Advisories []voteform.Advisory `json:"advisories"`
}

type ResultEntry struct {
	Solution     string  `json:"solution"`
	Name         string  `json:"name"`
	VoteCount    int     `json:"vote_count"`
	WidthPercent float64 `json:"width_percent"`
	Rank         int     `json:"rank"` // 1-indexed ranking
}

type ResultsResponse struct {
	Results   []ResultEntry `json:"results"`
	VoteCount int           `json:"vote_count"`
}

// Domain types

type Vote struct {
	ID             string    `json:"id"`
	Email          string    `json:"-"` // Never expose in JSON
	Name           string    `json:"name"`
	Opinion        string    `json:"opinion"`
	EmailDomain    string    `json:"email_domain"`
	Classification string    `json:"classification"`
	Solutions      []string  `json:"solutions"`
	IPHash         *string   `json:"-"` // Never expose in JSON
	UserAgent      *string   `json:"-"` // Never expose in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
