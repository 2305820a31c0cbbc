package agg

import (
	"fmt"
	"strings"
	"time"
)

// gitLogScenario represents a single commit scenario for test data generation.
type gitLogScenario struct {
	commitHash string
	email      string
	name       string
	date       time.Time
	files      []fileChange
}

// fileChange represents a single file change in a commit.
type fileChange struct {
	path      string
	additions string
	deletions string
}

func change(path string, add, del int) fileChange {
	return fileChange{path, fmt.Sprint(add), fmt.Sprint(del)}
}

// generateTestGitLog creates a programmatic git log fixture in the GetActivityLog layout.
func generateTestGitLog(scenarios []gitLogScenario) []byte {
	var lines []string
	for _, s := range scenarios {
		lines = append(lines, fmt.Sprintf("--%s|%s|%s|%s", s.commitHash, s.email, s.name, s.date.Format(time.RFC3339)))
		for _, file := range s.files {
			lines = append(lines, fmt.Sprintf("%s\t%s\t%s", file.additions, file.deletions, file.path))
		}
		lines = append(lines, "") // Empty line between commits
	}
	return []byte(strings.Join(lines, "\n"))
}

// generateComprehensiveTestData covers two authors touching overlapping files.
func generateComprehensiveTestData() []byte {
	baseTime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return generateTestGitLog([]gitLogScenario{
		{
			commitHash: "abc123def456",
			email:      "alice@example.com",
			name:       "Alice Developer",
			date:       baseTime,
			files: []fileChange{
				change("core/analysis.go", 50, 10),
				change("core/core.go", 100, 5),
			},
		},
		{
			commitHash: "def456ghi789",
			email:      "bob@example.com",
			name:       "Bob Tester",
			date:       baseTime.Add(time.Hour),
			files: []fileChange{
				change("core/analysis.go", 25, 5),
				change("core/builder.go", 75, 0),
			},
		},
		{
			commitHash: "ghi789jkl012",
			email:      "alice@example.com",
			name:       "Alice Developer",
			date:       baseTime.Add(2 * time.Hour),
			files: []fileChange{
				change("core/core.go", 200, 50),
				change("docs/README.md", 10, 2),
			},
		},
	})
}

// generateEdgeCaseTestData covers renames, binary files and a missing email.
func generateEdgeCaseTestData() []byte {
	baseTime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return generateTestGitLog([]gitLogScenario{
		{
			commitHash: "rename123abc",
			email:      "charlie@example.com",
			name:       "Charlie Refactor",
			date:       baseTime,
			files: []fileChange{
				change("src/utils/helper.go => src/helpers/utility.go", 8, 1),
				change("src/{old => new}/types.go", 3, 3),
			},
		},
		{
			commitHash: "binary456def",
			email:      "",
			name:       "Bob Tester",
			date:       baseTime.Add(time.Hour),
			files: []fileChange{
				{"assets/logo.png", "-", "-"},
			},
		},
	})
}
