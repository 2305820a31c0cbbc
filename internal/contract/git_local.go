package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
)

// CloneDirPrefix prefixes the temporary directories used for remote clones.
const CloneDirPrefix = "busfactor_"

// ErrCloneFailed is returned when a remote repository cannot be cloned.
var ErrCloneFailed = errors.New("failed to clone repository")

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine. Remote clones use go-git.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// IsRemoteRepo reports whether a repository argument is a URL to clone rather than a local path.
func IsRemoteRepo(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "ssh://") ||
		strings.HasPrefix(source, "git@")
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetActivityLog implements the GitClient interface.
// Each commit starts with a "--hash|email|name|date" header followed by numstat lines.
// Deleted files are left out since they have no current owner.
// core.quotepath=off keeps non-ASCII paths verbatim instead of octal-escaped.
func (c *LocalGitClient) GetActivityLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error) {
	args := []string{
		"-c", "core.quotepath=off",
		"log",
		"--numstat",
		"--no-merges",
		"--diff-filter=d",
		"--pretty=format:--%H|%ae|%an|%aI",
	}
	if !startTime.IsZero() {
		args = append(args, fmt.Sprintf("--since=%s", startTime.Format(DateTimeFormat)))
	}
	if !endTime.IsZero() {
		args = append(args, fmt.Sprintf("--until=%s", endTime.Format(DateTimeFormat)))
	}
	return c.Run(ctx, repoPath, args...)
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CloneRepository implements the GitClient interface.
func (c *LocalGitClient) CloneRepository(ctx context.Context, url string) (string, func(), error) {
	dir, err := os.MkdirTemp("", CloneDirPrefix)
	if err != nil {
		return "", func() {}, fmt.Errorf("%w: cannot create temporary directory: %v", ErrCloneFailed, err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			LogWarn("Failed to remove cloned repository", err)
		}
	}

	Logger.WithFields(logrus.Fields{"url": url, "dir": dir}).Info("cloning repository")
	if _, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{URL: url}); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("%w: %s: %v", ErrCloneFailed, url, err)
	}
	return dir, cleanup, nil
}
