package models

import "time"

// RunRecord is one completed run, persisted to the local history file
type RunRecord struct {
	// ID is a unique identifier for the run
	ID string `json:"id"`
	// Command is the subcommand that ran ("summarize" or "changelog")
	Command string `json:"command"`
	// Repo is the "owner/name" the run operated on
	Repo string `json:"repo"`
	// Target identifies the document that was reconciled
	// (a release tag or "PR #N")
	Target string `json:"target"`
	// PullRequests is how many pull requests fed the run
	PullRequests int `json:"pull_requests"`
	// Written reports whether the document was actually updated
	Written bool `json:"written"`
	// CreatedAt is when the run finished
	CreatedAt time.Time `json:"created_at"`
}
