//go:build basic || database

// Package integration runs the busfactor binary against real Git repositories.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a busfactor binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBusFactorBinary returns the path to the busfactor binary, building it once if needed.
func getBusFactorBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "busfactor-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "busfactor")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // project root
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build busfactor: %v\n%s", err, out))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runBusFactor runs the binary in dir and returns stdout. Stderr is logged on failure.
func runBusFactor(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBusFactorBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// fixtureCommit is one commit of the fixture repository.
type fixtureCommit struct {
	name, email string
	date        string
	files       map[string]int // path -> lines appended
}

// fixtureHistory gives src/a.go a single author and src/b.go a 4/6 split between two authors.
var fixtureHistory = []fixtureCommit{
	{"Alice", "alice@example.com", "2024-01-10T10:00:00Z", map[string]int{"src/a.go": 10, "src/b.go": 4}},
	{"Bob", "bob@example.com", "2024-02-10T10:00:00Z", map[string]int{"src/b.go": 6}},
	{"Alice", "alice@example.com", "2024-03-10T10:00:00Z", map[string]int{"docs/guide.md": 3}},
}

// newFixtureRepo creates a Git repository in a temp dir following fixtureHistory.
func newFixtureRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	git := func(env []string, args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), env...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	git(nil, "init", "-q")
	for i, c := range fixtureHistory {
		for path, lines := range c.files {
			full := filepath.Join(dir, path)
			require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
			f, err := os.OpenFile(full, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			require.NoError(t, err)
			for l := range lines {
				_, err = fmt.Fprintf(f, "commit %d line %d\n", i, l)
				require.NoError(t, err)
			}
			require.NoError(t, f.Close())
			git(nil, "add", path)
		}
		git([]string{
			"GIT_AUTHOR_NAME=" + c.name, "GIT_AUTHOR_EMAIL=" + c.email, "GIT_AUTHOR_DATE=" + c.date,
			"GIT_COMMITTER_NAME=" + c.name, "GIT_COMMITTER_EMAIL=" + c.email, "GIT_COMMITTER_DATE=" + c.date,
		}, "-c", "commit.gpgsign=false", "commit", "-q", "-m", fmt.Sprintf("commit %d", i))
	}
	return dir
}
