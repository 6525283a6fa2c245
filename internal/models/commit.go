package models

import "strings"

// CommitRecord is a single commit from a ref comparison
type CommitRecord struct {
	// SHA is the full commit hash
	SHA string
	// Message is the full, possibly multi-line commit message
	Message string
	// AuthorLogin is the platform login of the author, "" when unattributed
	AuthorLogin string
}

// NewCommitRecord creates a new CommitRecord
func NewCommitRecord(sha, message, authorLogin string) CommitRecord {
	return CommitRecord{
		SHA:         sha,
		Message:     message,
		AuthorLogin: authorLogin,
	}
}

// FirstLine returns the first line of the commit message
func (c CommitRecord) FirstLine() string {
	line, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(line)
}

// LastLine returns the last non-empty line of the commit message.
// For a platform merge commit this is the pull request title.
func (c CommitRecord) LastLine() string {
	lines := strings.Split(c.Message, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// ShortSHA returns the abbreviated commit hash (7 characters)
func (c CommitRecord) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}
