package models

// FileChange is one changed file within a pull request
type FileChange struct {
	// Filename is the repository-relative path
	Filename string
	// Status is the platform change status (added, modified, removed, renamed)
	Status string
	// Additions is the number of added lines
	Additions int
	// Deletions is the number of removed lines
	Deletions int
	// Patch is the unified diff text, "" when the platform omitted it
	Patch string
}
