package release

import (
	"context"
	"errors"
	"sync"

	"github.com/umanai/uman-changelog/internal/models"
)

// Common test errors
var (
	ErrMockRepo  = errors.New("mock repo error")
	ErrMockModel = errors.New("mock model error")
)

// MockRepoService implements RepoService and CommitSource for testing
type MockRepoService struct {
	mu sync.Mutex

	ReleasesResult []models.Release
	ReleasesErr    error
	ReleasesCount  int

	CompareResult      []models.CommitRecord
	CompareErr         error
	CompareCount       int
	LastBase, LastHead string

	PullRequests     map[int]*models.PullRequestDetail
	PullRequestErrs  map[int]error
	PullRequestCount int

	Files      map[int][]models.FileChange
	FilesErrs  map[int]error
	FilesCount int

	UpdatedReleases    map[int64]string
	UpdateReleaseErr   error
	UpdateReleaseCount int

	UpdatedPulls    map[int]string
	UpdatePullErr   error
	UpdatePullCount int

	Comments     map[int][]string
	CommentErr   error
	CommentCount int
}

func NewMockRepoService() *MockRepoService {
	return &MockRepoService{
		PullRequests:    make(map[int]*models.PullRequestDetail),
		PullRequestErrs: make(map[int]error),
		Files:           make(map[int][]models.FileChange),
		FilesErrs:       make(map[int]error),
		UpdatedReleases: make(map[int64]string),
		UpdatedPulls:    make(map[int]string),
		Comments:        make(map[int][]string),
	}
}

func (m *MockRepoService) Releases(ctx context.Context) ([]models.Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReleasesCount++
	if m.ReleasesErr != nil {
		return nil, m.ReleasesErr
	}
	return m.ReleasesResult, nil
}

func (m *MockRepoService) CompareCommits(ctx context.Context, base, head string) ([]models.CommitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompareCount++
	m.LastBase, m.LastHead = base, head
	if m.CompareErr != nil {
		return nil, m.CompareErr
	}
	return m.CompareResult, nil
}

func (m *MockRepoService) PullRequest(ctx context.Context, number int) (*models.PullRequestDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PullRequestCount++
	if err, ok := m.PullRequestErrs[number]; ok {
		return nil, err
	}
	pr, ok := m.PullRequests[number]
	if !ok {
		return nil, ErrMockRepo
	}
	copied := *pr
	return &copied, nil
}

func (m *MockRepoService) PullRequestFiles(ctx context.Context, number int) ([]models.FileChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FilesCount++
	if err, ok := m.FilesErrs[number]; ok {
		return nil, err
	}
	return m.Files[number], nil
}

func (m *MockRepoService) UpdateReleaseBody(ctx context.Context, id int64, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateReleaseCount++
	if m.UpdateReleaseErr != nil {
		return m.UpdateReleaseErr
	}
	m.UpdatedReleases[id] = body
	return nil
}

func (m *MockRepoService) UpdatePullRequestBody(ctx context.Context, number int, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdatePullCount++
	if m.UpdatePullErr != nil {
		return m.UpdatePullErr
	}
	m.UpdatedPulls[number] = body
	return nil
}

func (m *MockRepoService) CreateIssueComment(ctx context.Context, number int, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CommentCount++
	if m.CommentErr != nil {
		return m.CommentErr
	}
	m.Comments[number] = append(m.Comments[number], body)
	return nil
}

// MockTextModel implements TextModel for testing
type MockTextModel struct {
	mu sync.Mutex

	CountCosts []int // cost returned per call, in order
	CountErr   error
	CountCount int

	GenerateResult string
	GenerateErr    error
	GenerateCount  int
	LastPrompt     string
}

func NewMockTextModel() *MockTextModel {
	return &MockTextModel{GenerateResult: "- Mock summary"}
}

func (m *MockTextModel) CountTokens(ctx context.Context, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CountCount++
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	if m.CountCount > len(m.CountCosts) {
		return 0, errors.New("unexpected CountTokens call")
	}
	return m.CountCosts[m.CountCount-1], nil
}

func (m *MockTextModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateCount++
	m.LastPrompt = prompt
	if m.GenerateErr != nil {
		return "", m.GenerateErr
	}
	return m.GenerateResult, nil
}
