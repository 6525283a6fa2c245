// Package gitlocal derives the commit range for a changelog from a local
// clone instead of the hosted compare API.
package gitlocal

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/umanai/uman-changelog/internal/models"
)

// RefNotFoundError indicates a revision could not be resolved in the clone.
type RefNotFoundError struct {
	Ref string
}

func (e *RefNotFoundError) Error() string {
	return "revision not found in local clone: " + e.Ref
}

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Source adapts a clone to the commit-source interface of the runs. The
// context is accepted for interface parity; the walk itself is local and
// uninterruptible.
type Source struct {
	// Path is the clone's root directory
	Path string
}

func (s Source) CompareCommits(ctx context.Context, base, head string) ([]models.CommitRecord, error) {
	return CommitsBetween(s.Path, base, head)
}

// CommitsBetween returns the commits reachable from head but not from base,
// oldest first, matching the ordering of the hosted compare API. Authors
// carry the commit signature name since logins are not known locally.
func CommitsBetween(repoPath, base, head string) ([]models.CommitRecord, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, err
	}
	return commitsBetween(repo, base, head)
}

func commitsBetween(repo *git.Repository, base, head string) ([]models.CommitRecord, error) {
	baseHash, err := resolve(repo, base)
	if err != nil {
		return nil, err
	}
	headHash, err := resolve(repo, head)
	if err != nil {
		return nil, err
	}

	baseCommits := make(map[plumbing.Hash]bool)
	baseIter, err := repo.Log(&git.LogOptions{From: *baseHash})
	if err != nil {
		return nil, err
	}
	baseIter.ForEach(func(c *object.Commit) error {
		baseCommits[c.Hash] = true
		return nil
	})

	headIter, err := repo.Log(&git.LogOptions{From: *headHash})
	if err != nil {
		return nil, err
	}

	var commits []models.CommitRecord
	seen := make(map[plumbing.Hash]bool)
	err = headIter.ForEach(func(c *object.Commit) error {
		// Skip if already processed or reachable from base.
		// Don't stop iteration - merge commits have multiple parents
		// and we need to traverse all paths to find feature commits.
		if seen[c.Hash] || baseCommits[c.Hash] {
			return nil
		}
		seen[c.Hash] = true

		commits = append(commits, models.NewCommitRecord(c.Hash.String(), c.Message, c.Author.Name))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The log walks newest first; flip to the compare API's order.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

// resolve accepts tags, branches, and hashes, falling back to the origin
// remote ref when the plain revision is unknown.
func resolve(repo *git.Repository, ref string) (*plumbing.Hash, error) {
	if hash, err := repo.ResolveRevision(plumbing.Revision(ref)); err == nil {
		return hash, nil
	}
	hash, err := repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + ref))
	if err != nil {
		return nil, &RefNotFoundError{Ref: ref}
	}
	return hash, nil
}
