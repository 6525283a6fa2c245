package gitlocal

import (
	"errors"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

func commit(t *testing.T, repo *git.Repository, filename, contents, message, author string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(wt.Filesystem, filename, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(filename); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: author, Email: author + "@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func TestCommitsBetween(t *testing.T) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatal(err)
	}

	base := commit(t, repo, "a.txt", "one", "Initial commit", "alice")
	second := commit(t, repo, "a.txt", "two", "Merge pull request #12 from umanai/feature-x\n\nAdd export endpoint", "alice")
	third := commit(t, repo, "a.txt", "three", "Fix typo (#34)", "bob")

	commits, err := commitsBetween(repo, base.String(), third.String())
	if err != nil {
		t.Fatalf("commitsBetween returned error: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("commitsBetween returned %d commits, want 2", len(commits))
	}
	if commits[0].SHA != second.String() || commits[1].SHA != third.String() {
		t.Errorf("commits out of order: [%s, %s]", commits[0].ShortSHA(), commits[1].ShortSHA())
	}
	if commits[0].Message != "Merge pull request #12 from umanai/feature-x\n\nAdd export endpoint" {
		t.Errorf("full message not preserved: %q", commits[0].Message)
	}
	if commits[0].AuthorLogin != "alice" || commits[1].AuthorLogin != "bob" {
		t.Errorf("authors mapped as %q, %q", commits[0].AuthorLogin, commits[1].AuthorLogin)
	}
}

func TestCommitsBetweenBranchHead(t *testing.T) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatal(err)
	}

	base := commit(t, repo, "a.txt", "one", "Initial commit", "alice")
	tip := commit(t, repo, "a.txt", "two", "Add settings page", "bob")

	commits, err := commitsBetween(repo, base.String(), "master")
	if err != nil {
		t.Fatalf("commitsBetween returned error: %v", err)
	}
	if len(commits) != 1 || commits[0].SHA != tip.String() {
		t.Fatalf("branch head walk returned %+v, want the tip commit", commits)
	}
}

func TestCommitsBetweenIdenticalRefs(t *testing.T) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatal(err)
	}

	tip := commit(t, repo, "a.txt", "one", "Initial commit", "alice")

	commits, err := commitsBetween(repo, tip.String(), tip.String())
	if err != nil {
		t.Fatalf("commitsBetween returned error: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("identical refs returned %d commits, want 0", len(commits))
	}
}

func TestCommitsBetweenUnknownRef(t *testing.T) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatal(err)
	}
	commit(t, repo, "a.txt", "one", "Initial commit", "alice")

	_, err = commitsBetween(repo, "does-not-exist", "master")
	var refErr *RefNotFoundError
	if !errors.As(err, &refErr) {
		t.Fatalf("error = %v, want *RefNotFoundError", err)
	}
	if refErr.Ref != "does-not-exist" {
		t.Errorf("error names ref %q, want %q", refErr.Ref, "does-not-exist")
	}
}
