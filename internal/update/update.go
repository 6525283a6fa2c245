// Package update checks the tool's own releases for a newer version and
// swaps the running executable in place.
package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/umanai/uman-changelog/internal/models"
)

// downloadBase is swapped out by tests.
var downloadBase = "https://github.com"

// ReleaseLister is the single call Check needs.
// Implementations: github.Client
type ReleaseLister interface {
	Releases(ctx context.Context) ([]models.Release, error)
}

// Available describes a newer published release of the tool.
type Available struct {
	Tag string
}

// Check returns the newest published release when it is newer than the
// running version, nil otherwise.
func Check(ctx context.Context, lister ReleaseLister, currentVersion string) (*Available, error) {
	releases, err := lister.Releases(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	var latest *models.Release
	for _, r := range releases {
		if r.Draft {
			continue
		}
		latest = &r
		break
	}
	if latest == nil {
		return nil, nil
	}

	latestVer := normalizeVersion(latest.TagName)
	currentVer := normalizeVersion(currentVersion)

	// "dev" version is always older than any release
	if currentVer == "dev" {
		return &Available{Tag: latest.TagName}, nil
	}

	// Simple string comparison works for semver if format is consistent
	if latestVer > currentVer {
		return &Available{Tag: latest.TagName}, nil
	}
	return nil, nil
}

// normalizeVersion strips version prefixes for comparison
func normalizeVersion(v string) string {
	v = strings.TrimPrefix(v, "uman-changelog/")
	v = strings.TrimPrefix(v, "v")
	return v
}

// VersionDisplay returns a formatted version string for display
func VersionDisplay(tag string) string {
	return normalizeVersion(tag)
}

// assetName returns the expected binary name for the current platform
func assetName() string {
	return fmt.Sprintf("uman-changelog-%s-%s", runtime.GOOS, runtime.GOARCH)
}

// executablePath returns the path to the current executable
func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	// Resolve symlinks to get actual path
	return filepath.EvalSymlinks(exe)
}

// Apply downloads the platform asset of the release and atomically
// replaces the running executable.
func Apply(ctx context.Context, repo, tag string) error {
	target, err := executablePath()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}
	return applyTo(ctx, repo, tag, target)
}

func applyTo(ctx context.Context, repo, tag, target string) error {
	url := fmt.Sprintf("%s/%s/releases/download/%s/%s", downloadBase, repo, tag, assetName())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", tag, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %s", tag, resp.Status)
	}

	tmpPath := filepath.Join(os.TempDir(), "uman-changelog-update")
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", err)
	}
	tmpFile.Close()

	if err := os.Chmod(tmpPath, 0755); err != nil {
		return fmt.Errorf("chmod failed: %w", err)
	}

	// Verify the download is a valid executable by checking file size
	info, err := os.Stat(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to stat downloaded file: %w", err)
	}
	if info.Size() < 1000 {
		return fmt.Errorf("downloaded file too small (%d bytes), likely invalid", info.Size())
	}

	// Atomic replace: rename over the current binary
	if err := os.Rename(tmpPath, target); err != nil {
		// If rename fails (e.g., cross-device), fall back to copy
		return copyFile(tmpPath, target)
	}
	return nil
}

// copyFile copies src to dst with proper permissions
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	// Create temp file in same directory as dst for atomic replace
	dstDir := filepath.Dir(dst)
	tmpFile, err := os.CreateTemp(dstDir, "uman-changelog-update-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, srcFile); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	tmpFile.Close()

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// Clean up source
	os.Remove(src)
	return nil
}
