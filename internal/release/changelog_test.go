package release

import (
	"context"
	"strings"
	"testing"

	"github.com/umanai/uman-changelog/internal/changelog"
	"github.com/umanai/uman-changelog/internal/mergedoc"
	"github.com/umanai/uman-changelog/internal/models"
)

func tableFixture() *MockRepoService {
	repo := NewMockRepoService()
	repo.CompareResult = []models.CommitRecord{
		models.NewCommitRecord("aaa1111", "Merge pull request #12 from umanai/feature-export\n\nAdd export endpoint", "alice"),
		models.NewCommitRecord("bbb2222", "Merge pull request #34 from umanai/development", "bob"),
		models.NewCommitRecord("ccc3333", "Fix login redirect", "carol"),
	}
	repo.PullRequests[7] = &models.PullRequestDetail{Number: 7, Title: "Release 1.2", Body: "intro"}
	return repo
}

func TestTableRunUpdatesDescription(t *testing.T) {
	repo := tableFixture()
	run := NewTableRun(repo, repo, "umanai/development")

	out, err := run.Run(context.Background(), TableParams{
		PullNumber: 7, Base: "v1.1.0", Head: "main", Mode: changelog.ModePrerelease,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.Commits != 3 || out.Rows != 1 {
		t.Errorf("outcome counted %d commits and %d rows, want 3 and 1", out.Commits, out.Rows)
	}
	if !out.Written {
		t.Fatal("outcome not marked written")
	}

	body := repo.UpdatedPulls[7]
	if !strings.HasPrefix(body, "intro\n") {
		t.Errorf("existing description lost: %q", body)
	}
	for _, want := range []string{
		mergedoc.StartMarker,
		"| Change | Author |",
		"| Add export endpoint | alice |",
		mergedoc.EndMarker,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("description missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "#34") || strings.Contains(body, "Fix login redirect") {
		t.Errorf("excluded rows leaked into the table:\n%s", body)
	}
}

func TestTableRunIsIdempotent(t *testing.T) {
	repo := tableFixture()
	run := NewTableRun(repo, repo, "umanai/development")
	params := TableParams{PullNumber: 7, Base: "v1.1.0", Head: "main", Mode: changelog.ModePrerelease}

	if _, err := run.Run(context.Background(), params); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	firstBody := repo.UpdatedPulls[7]

	// Second run sees the already-updated description.
	repo.PullRequests[7].Body = firstBody
	out, err := run.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if out.Written {
		t.Error("second run reported a write")
	}
	if repo.UpdatePullCount != 1 {
		t.Errorf("description written %d times across two runs, want 1", repo.UpdatePullCount)
	}
}

func TestTableRunCommitsMode(t *testing.T) {
	repo := tableFixture()
	run := NewTableRun(repo, repo, "umanai/development")

	out, err := run.Run(context.Background(), TableParams{
		PullNumber: 7, Base: "v1.1.0", Head: "main", Mode: changelog.ModeCommits,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.Table, "| Commit | SHA | Author |") {
		t.Errorf("commits-mode table missing header:\n%s", out.Table)
	}
	if !strings.Contains(out.Table, "| Fix login redirect | ccc3333 | carol |") {
		t.Errorf("direct commit row missing:\n%s", out.Table)
	}
	if strings.Contains(out.Table, "Merge pull request") {
		t.Errorf("merge commits leaked into commits mode:\n%s", out.Table)
	}
}

func TestTableRunCommentMode(t *testing.T) {
	repo := tableFixture()
	run := NewTableRun(repo, repo, "umanai/development")

	out, err := run.Run(context.Background(), TableParams{
		PullNumber: 7, Base: "v1.1.0", Head: "main", Mode: changelog.ModePrerelease, Comment: true,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !out.Written {
		t.Fatal("comment run not marked written")
	}
	if len(repo.Comments[7]) != 1 || !strings.Contains(repo.Comments[7][0], "| Change | Author |") {
		t.Errorf("comment not posted with the table: %v", repo.Comments[7])
	}
	if repo.UpdatePullCount != 0 {
		t.Errorf("comment mode edited the description %d times", repo.UpdatePullCount)
	}
}

func TestTableRunEmptyRange(t *testing.T) {
	repo := tableFixture()
	repo.CompareResult = nil
	run := NewTableRun(repo, repo, "umanai/development")

	out, err := run.Run(context.Background(), TableParams{
		PullNumber: 7, Base: "v1.1.0", Head: "main", Mode: changelog.ModePrerelease,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.Table != "" || out.Written {
		t.Errorf("empty range produced %+v, want no table and no write", out)
	}
	if repo.UpdatePullCount != 0 || repo.CommentCount != 0 {
		t.Error("empty range still wrote")
	}
}

func TestTableRunDryRun(t *testing.T) {
	repo := tableFixture()
	run := NewTableRun(repo, repo, "umanai/development")

	out, err := run.Run(context.Background(), TableParams{
		PullNumber: 7, Base: "v1.1.0", Head: "main", Mode: changelog.ModePrerelease, DryRun: true,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.Table == "" {
		t.Error("dry run did not compute the table")
	}
	if out.Written || repo.UpdatePullCount != 0 || repo.CommentCount != 0 {
		t.Error("dry run wrote")
	}
}
