package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	GitHub    GitHubConfig    `toml:"github"`
	Labels    LabelsConfig    `toml:"labels"`
	Model     ModelConfig     `toml:"model"`
	Changelog ChangelogConfig `toml:"changelog"`
	Update    UpdateConfig    `toml:"update"`
}

type GitHubConfig struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
}

type LabelsConfig struct {
	ImpactPhrases []string `toml:"impact_phrases"`
}

type ModelConfig struct {
	Name        string `toml:"name"`
	TokenBudget int    `toml:"token_budget"`
}

type ChangelogConfig struct {
	IntegrationBranch string `toml:"integration_branch"`
}

type UpdateConfig struct {
	Enabled        bool      `toml:"enabled"`
	LastCheck      time.Time `toml:"last_check"`
	SkippedVersion string    `toml:"skipped_version"`
	Repo           string    `toml:"repo"`
}

// MissingInputError names a required input that was absent. Every run
// validates its inputs before the first external call.
type MissingInputError struct {
	Input string
}

func (e *MissingInputError) Error() string {
	return "missing required input: " + e.Input
}

func DefaultConfig() *Config {
	return &Config{
		Labels: LabelsConfig{
			ImpactPhrases: []string{"client impact", "client-impact"},
		},
		Model: ModelConfig{
			Name:        "gemini-1.5-pro",
			TokenBudget: 1_000_000,
		},
		Changelog: ChangelogConfig{
			IntegrationBranch: "development",
		},
		Update: UpdateConfig{
			Enabled: true,
			Repo:    "umanai/uman-changelog",
		},
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "uman-changelog.toml"), nil
}

func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.Save() // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GithubToken resolves the API token from the environment, never from the
// config file. UMAN_GITHUB_TOKEN wins over the conventional GITHUB_TOKEN.
func GithubToken() string {
	if token := os.Getenv("UMAN_GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// GeminiKey resolves the generative model key from the environment.
func GeminiKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// RequireToken errors when no GitHub token is present in the environment.
func RequireToken() error {
	if GithubToken() == "" {
		return &MissingInputError{Input: "GITHUB_TOKEN"}
	}
	return nil
}

// RequireGeminiKey errors when GEMINI_API_KEY is not set.
func RequireGeminiKey() error {
	if GeminiKey() == "" {
		return &MissingInputError{Input: "GEMINI_API_KEY"}
	}
	return nil
}

// ValidateSummarize checks every input a summarize run needs. The changelog
// run deliberately skips the model checks.
func (c *Config) ValidateSummarize() error {
	if err := RequireToken(); err != nil {
		return err
	}
	if err := RequireGeminiKey(); err != nil {
		return err
	}
	if c.Model.Name == "" {
		return &MissingInputError{Input: "model.name"}
	}
	if c.Model.TokenBudget <= 0 {
		return &MissingInputError{Input: "model.token_budget"}
	}
	if len(c.Labels.ImpactPhrases) == 0 {
		return &MissingInputError{Input: "labels.impact_phrases"}
	}
	return nil
}

// Repository resolves the target repository, letting an "owner/name" flag
// value override the config file.
func (c *Config) Repository(flag string) (owner, name string, err error) {
	if flag != "" {
		owner, name, ok := strings.Cut(flag, "/")
		if !ok || owner == "" || name == "" {
			return "", "", fmt.Errorf("invalid repository %q (want owner/name)", flag)
		}
		return owner, name, nil
	}
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return "", "", &MissingInputError{Input: "repository (set github.owner and github.repo, or pass --repo)"}
	}
	return c.GitHub.Owner, c.GitHub.Repo, nil
}

// ExcludedSource returns the merge source whose housekeeping merges are kept
// out of changelogs, e.g. "umanai/development". Empty disables the rule.
func (c *Config) ExcludedSource(owner string) string {
	if c.Changelog.IntegrationBranch == "" {
		return ""
	}
	return owner + "/" + c.Changelog.IntegrationBranch
}

// ShouldCheckForUpdate returns true if update check is enabled and 24h since last check
func (c *Config) ShouldCheckForUpdate() bool {
	if !c.Update.Enabled {
		return false
	}
	return time.Since(c.Update.LastCheck) > 24*time.Hour
}

// RecordUpdateCheck updates the last check time
func (c *Config) RecordUpdateCheck() {
	c.Update.LastCheck = time.Now()
}
