package changelog

import (
	"fmt"
	"regexp"

	"github.com/umanai/uman-changelog/internal/models"
)

// TableMode selects which of the two disjoint classifications runs
type TableMode int

const (
	// ModePrerelease tables merge commits (one row per merged pull request)
	ModePrerelease TableMode = iota
	// ModeCommits tables direct commits (squash or plain pushes)
	ModeCommits
)

// String returns the flag spelling of the mode
func (m TableMode) String() string {
	switch m {
	case ModeCommits:
		return "commits"
	default:
		return "prerelease"
	}
}

// ParseTableMode maps a flag value to a TableMode
func ParseTableMode(s string) (TableMode, error) {
	switch s {
	case "prerelease":
		return ModePrerelease, nil
	case "commits":
		return ModeCommits, nil
	default:
		return 0, fmt.Errorf("unknown changelog mode %q (want prerelease or commits)", s)
	}
}

// branchSyncPattern matches plain "Merge branch 'x' of y" commits created by
// git pull, which are noise in a direct-commit table.
var branchSyncPattern = regexp.MustCompile(`^Merge branch '[^']+' of `)

// Row is one changelog table row
type Row struct {
	// Title is the change description cell
	Title string
	// SHA is the abbreviated commit hash, "" for merge rows
	SHA string
	// Author is the author login, "" renders as an empty cell
	Author string
}

// Classifier splits a commit list into table rows. The two classifications
// are disjoint processing paths; callers pick exactly one per invocation.
type Classifier struct {
	excluded *regexp.Regexp
}

// NewClassifier creates a Classifier with the same excluded-source rule the
// Extractor uses; empty string disables it.
func NewClassifier(excludedSource string) *Classifier {
	c := &Classifier{}
	if excludedSource != "" {
		c.excluded = regexp.MustCompile(
			fmt.Sprintf(`^Merge pull request #\d+ from %s$`, regexp.QuoteMeta(excludedSource)),
		)
	}
	return c
}

// Rows classifies commits for the given mode
func (c *Classifier) Rows(mode TableMode, commits []models.CommitRecord) []Row {
	if mode == ModeCommits {
		return c.DirectRows(commits)
	}
	return c.PrereleaseRows(commits)
}

// PrereleaseRows selects merge-pull-request commits that did not originate
// from the excluded integration branch. The row title is the last message
// line, which on platform merge commits is the pull request title.
func (c *Classifier) PrereleaseRows(commits []models.CommitRecord) []Row {
	var rows []Row
	for _, commit := range commits {
		first := commit.FirstLine()
		if !mergeRefPattern.MatchString(first) {
			continue
		}
		if c.excluded != nil && c.excluded.MatchString(first) {
			continue
		}
		rows = append(rows, Row{
			Title:  commit.LastLine(),
			Author: commit.AuthorLogin,
		})
	}
	return rows
}

// DirectRows selects commits that are neither merge-pull-request commits nor
// "Merge branch 'x' of y" sync commits.
func (c *Classifier) DirectRows(commits []models.CommitRecord) []Row {
	var rows []Row
	for _, commit := range commits {
		first := commit.FirstLine()
		if mergeRefPattern.MatchString(first) {
			continue
		}
		if branchSyncPattern.MatchString(first) {
			continue
		}
		rows = append(rows, Row{
			Title:  first,
			SHA:    commit.ShortSHA(),
			Author: commit.AuthorLogin,
		})
	}
	return rows
}
