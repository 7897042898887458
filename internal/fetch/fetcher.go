// Package fetch acquires repositories for scanning. It clones with go-git
// and, for GitHub URLs, falls back to downloading the branch ZIP when the
// clone fails (no git history, just files).
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// Common errors returned by Fetcher operations.
var (
	ErrEmptyURL        = errors.New("repository URL cannot be empty")
	ErrInvalidURL      = errors.New("invalid repository URL")
	ErrUnsupportedHost = errors.New("ZIP fallback is only supported for GitHub")
)

// Fetcher downloads repositories into a destination directory. Each fetch
// lands in its own subdirectory; collisions are resolved with a numeric
// suffix so repeated fetches of the same repository never overwrite.
type Fetcher struct {
	destDir string
	depth   int
	client  *http.Client
}

// NewFetcher creates a fetcher writing under destDir. depth is the clone
// depth; 1 gives a shallow clone, 0 a full one.
func NewFetcher(destDir string, depth int) *Fetcher {
	return &Fetcher{
		destDir: destDir,
		depth:   depth,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// Fetch downloads the repository at repoURL and returns the local directory
// it landed in. Strategy: git clone first (best fidelity); for GitHub URLs a
// failed clone falls back to the codeload ZIP of the main branch, then
// master.
func (f *Fetcher) Fetch(ctx context.Context, repoURL string) (string, error) {
	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		return "", ErrEmptyURL
	}

	parsed, err := url.Parse(repoURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	nameHint := strings.TrimSuffix(path.Base(parsed.Path), ".git")
	if nameHint == "" || nameHint == "." || nameHint == "/" {
		nameHint = "repo"
	}

	dest, err := uniqueDir(f.destDir, nameHint+"_repo")
	if err != nil {
		return "", err
	}

	cloneErr := f.clone(ctx, repoURL, dest)
	if cloneErr == nil {
		return dest, nil
	}
	os.RemoveAll(dest)

	// Fall back only for GitHub URLs; otherwise surface the clone error.
	owner, repo := parseGitHubOwnerRepo(parsed)
	if owner == "" {
		return "", fmt.Errorf("clone failed: %w", cloneErr)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination: %w", err)
	}
	if err := f.downloadGitHubZip(ctx, owner, repo, dest); err != nil {
		os.RemoveAll(dest)
		return "", fmt.Errorf("clone failed (%v); ZIP fallback failed: %w", cloneErr, err)
	}

	return dest, nil
}

// clone runs a go-git clone into dest.
func (f *Fetcher) clone(ctx context.Context, repoURL, dest string) error {
	_, err := gogit.PlainCloneContext(ctx, dest, false, &gogit.CloneOptions{
		URL:   repoURL,
		Depth: f.depth,
	})
	return err
}

// downloadGitHubZip tries the codeload ZIP for the common default branches.
func (f *Fetcher) downloadGitHubZip(ctx context.Context, owner, repo, dest string) error {
	branches := []string{"main", "master"}

	var lastErr error
	for _, branch := range branches {
		zipURL := fmt.Sprintf("https://github.com/%s/%s/archive/refs/heads/%s.zip", owner, repo, branch)
		if err := downloadAndExtractZip(ctx, f.client, zipURL, dest); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("no downloadable branch among %v: %w", branches, lastErr)
}

// parseGitHubOwnerRepo returns ("", "") for non-GitHub URLs.
func parseGitHubOwnerRepo(parsed *url.URL) (owner, repo string) {
	if !strings.Contains(strings.ToLower(parsed.Host), "github.com") {
		return "", ""
	}

	parts := []string{}
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", ""
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git")
}

// repoSuffixPattern matches the _repo_<N> suffix uniqueDir appends.
var repoSuffixPattern = regexp.MustCompile(`^(.*?)(?:_repo_\d+)$`)

// DeriveRepoName strips the fetch suffix from a folder name, recovering the
// repository's display name (javascript-game_repo_1 -> javascript-game).
func DeriveRepoName(folderName string) string {
	if m := repoSuffixPattern.FindStringSubmatch(folderName); m != nil {
		return m[1]
	}
	return folderName
}

// uniqueDir reserves an unused directory name baseDir/prefix_<N>, counting
// up from 1. The directory itself is not created; the caller (clone or
// extract) does that.
func uniqueDir(baseDir, prefix string) (string, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create base directory: %w", err)
	}

	for i := 1; i < 10000; i++ {
		candidate := filepath.Join(baseDir, fmt.Sprintf("%s_%d", prefix, i))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("exhausted unique directory names for %s under %s", prefix, baseDir)
}
