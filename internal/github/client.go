// Package github provides the GitHub REST API integration for release and
// pull request reconciliation.
package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v72/github"

	"github.com/umanai/uman-changelog/internal/models"
)

// Client wraps the GitHub API for a single repository.
type Client struct {
	api   *github.Client
	owner string
	repo  string
}

// NewClient returns a client for owner/repo. An empty token produces an
// unauthenticated client, enough for public read-only calls.
func NewClient(token, owner, repo string) *Client {
	api := github.NewClient(nil)
	if token != "" {
		api = api.WithAuthToken(token)
	}
	return &Client{api: api, owner: owner, repo: repo}
}

// Releases returns every release of the repository in the API's order,
// newest first.
func (c *Client) Releases(ctx context.Context) ([]models.Release, error) {
	var all []models.Release
	opts := &github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := c.api.Repositories.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing releases: %w", err)
		}
		for _, r := range releases {
			all = append(all, releaseFromAPI(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// CompareCommits returns the commits reachable from head but not from base,
// in the order the API reports them (oldest first).
func (c *Client) CompareCommits(ctx context.Context, base, head string) ([]models.CommitRecord, error) {
	var all []models.CommitRecord
	opts := &github.ListOptions{PerPage: 100}
	for {
		cmp, resp, err := c.api.Repositories.CompareCommits(ctx, c.owner, c.repo, base, head, opts)
		if err != nil {
			return nil, fmt.Errorf("comparing %s...%s: %w", base, head, err)
		}
		for _, rc := range cmp.Commits {
			all = append(all, models.NewCommitRecord(rc.GetSHA(), rc.GetCommit().GetMessage(), rc.GetAuthor().GetLogin()))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// PullRequest fetches one pull request with its labels. The file list is
// fetched separately via PullRequestFiles.
func (c *Client) PullRequest(ctx context.Context, number int) (*models.PullRequestDetail, error) {
	pr, _, err := c.api.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request #%d: %w", number, err)
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}
	return &models.PullRequestDetail{
		Number:           pr.GetNumber(),
		Title:            pr.GetTitle(),
		Author:           pr.GetUser().GetLogin(),
		Labels:           labels,
		Body:             pr.GetBody(),
		ChangedFileCount: pr.GetChangedFiles(),
	}, nil
}

// PullRequestFiles returns the changed files of a pull request.
func (c *Client) PullRequestFiles(ctx context.Context, number int) ([]models.FileChange, error) {
	var all []models.FileChange
	opts := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := c.api.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing files of pull request #%d: %w", number, err)
		}
		for _, f := range files {
			all = append(all, models.FileChange{
				Filename:  f.GetFilename(),
				Status:    f.GetStatus(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Patch:     f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// UpdateReleaseBody rewrites a release description.
func (c *Client) UpdateReleaseBody(ctx context.Context, id int64, body string) error {
	release := &github.RepositoryRelease{Body: github.Ptr(body)}
	if _, _, err := c.api.Repositories.EditRelease(ctx, c.owner, c.repo, id, release); err != nil {
		return fmt.Errorf("updating release %d: %w", id, err)
	}
	return nil
}

// UpdatePullRequestBody rewrites a pull request description.
func (c *Client) UpdatePullRequestBody(ctx context.Context, number int, body string) error {
	pr := &github.PullRequest{Body: github.Ptr(body)}
	if _, _, err := c.api.PullRequests.Edit(ctx, c.owner, c.repo, number, pr); err != nil {
		return fmt.Errorf("updating pull request #%d: %w", number, err)
	}
	return nil
}

// CreateIssueComment posts a comment on a pull request or issue.
func (c *Client) CreateIssueComment(ctx context.Context, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := c.api.Issues.CreateComment(ctx, c.owner, c.repo, number, comment); err != nil {
		return fmt.Errorf("commenting on #%d: %w", number, err)
	}
	return nil
}

func releaseFromAPI(r *github.RepositoryRelease) models.Release {
	return models.Release{
		ID:              r.GetID(),
		TagName:         r.GetTagName(),
		Name:            r.GetName(),
		Body:            r.GetBody(),
		Draft:           r.GetDraft(),
		TargetCommitish: r.GetTargetCommitish(),
	}
}
