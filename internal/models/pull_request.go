package models

// PullRequestDetail holds the pull request fields the summarizer cares about
type PullRequestDetail struct {
	// Number is the pull request number
	Number int
	// Title is the pull request title
	Title string
	// Author is the platform login of the author, "" when unknown
	Author string
	// Labels are the label names attached to the pull request
	Labels []string
	// Body is the free-text description, "" when absent
	Body string
	// ChangedFileCount is the number of files touched by the pull request
	ChangedFileCount int
	// Files are the per-file changes, populated on demand and possibly empty
	Files []FileChange
}
