package release

import (
	"context"

	"github.com/umanai/uman-changelog/internal/models"
)

// RepoService is the slice of the source-control API the runs consume.
// Implementations: github.Client
type RepoService interface {
	// Releases lists every release, newest first.
	Releases(ctx context.Context) ([]models.Release, error)

	// CompareCommits returns the commits in head but not base, oldest first.
	CompareCommits(ctx context.Context, base, head string) ([]models.CommitRecord, error)

	// PullRequest fetches one pull request with its labels.
	PullRequest(ctx context.Context, number int) (*models.PullRequestDetail, error)

	// PullRequestFiles returns the changed files of a pull request.
	PullRequestFiles(ctx context.Context, number int) ([]models.FileChange, error)

	UpdateReleaseBody(ctx context.Context, id int64, body string) error
	UpdatePullRequestBody(ctx context.Context, number int, body string) error
	CreateIssueComment(ctx context.Context, number int, body string) error
}

// CommitSource yields the commits between two refs.
// Implementations: github.Client (compare API), gitlocal.Source (local clone)
type CommitSource interface {
	CompareCommits(ctx context.Context, base, head string) ([]models.CommitRecord, error)
}

// TextModel is the generative model surface the summarize run consumes.
// Implementations: gemini.Client
type TextModel interface {
	// CountTokens measures the model-token cost of a prompt.
	CountTokens(ctx context.Context, text string) (int, error)

	// Generate produces text from a prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
