package agent

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"cmd/server/main.go", "cmd/server/main.go", true},
		{"./README.md", "README.md", true},
		{"Dockerfile", "Dockerfile", true},
		{"Makefile", "Makefile", true},
		{".gitignore", ".gitignore", true},
		{".env.example", ".env.example", true},
		{".github/workflows/ci.yml", ".github/workflows/ci.yml", true},
		{"src\\app\\index.ts", "src/app/index.ts", true},
		{"docker-compose.yml", "docker-compose.yml", true},

		{"../etc/passwd", "", false},
		{"a/../../b.go", "", false},
		{"/etc/shadow", "", false},
		{"", "", false},
		{".ssh/id_rsa", "", false},
		{"dir/.hidden", "", false},
		{"binary.exe", "", false},
		{"evil\x00.go", "", false},
		{"a//b.go", "", false},
	}
	for _, tc := range cases {
		got, ok := sanitizePath(tc.in)
		assert.Equal(t, tc.ok, ok, "path %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "path %q", tc.in)
		}
	}
}

func TestSanitizeProjectName(t *testing.T) {
	assert.Equal(t, "job-board-api", sanitizeProjectName("Job Board API", ""))
	assert.Equal(t, "fallback-title", sanitizeProjectName("", "Fallback Title"))
	assert.Equal(t, "generated-project", sanitizeProjectName("!!!", "???"))
}

func TestParseScaffoldDropsBadEntriesAndDedupes(t *testing.T) {
	raw := `{
	  "project_name": "Demo Service",
	  "files": [
	    {"path": "main.go", "content": "package main", "language": "go"},
	    {"path": "main.go", "content": "duplicate", "language": "go"},
	    {"path": "../escape.go", "content": "package evil"},
	    {"path": "empty.go", "content": ""},
	    {"path": "internal/api/server.go", "content": "package api", "language": "go"}
	  ]
	}`

	result, err := parseScaffold(raw, "demo")
	require.NoError(t, err)
	assert.Equal(t, "demo-service", result.ProjectName)
	require.Len(t, result.Files, 2)
	assert.Equal(t, "main.go", result.Files[0].Path)
	assert.Equal(t, "package main", result.Files[0].Content)
	assert.Equal(t, "internal/api/server.go", result.Files[1].Path)
}

func TestParseScaffoldRejectsWhenNothingSurvives(t *testing.T) {
	raw := `{"project_name": "x", "files": [{"path": "../evil.go", "content": "boom"}]}`
	_, err := parseScaffold(raw, "x")
	require.Error(t, err)
}

func TestParseScaffoldCapsOversizedContent(t *testing.T) {
	huge := strings.Repeat("a", maxScaffoldFileBytes+1)
	raw := fmt.Sprintf(`{"files": [
	  {"path": "big.txt", "content": %q},
	  {"path": "ok.txt", "content": "fine"}
	]}`, huge)

	result, err := parseScaffold(raw, "demo")
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "ok.txt", result.Files[0].Path)
}

func TestParseScaffoldGeneratesTreeWhenMissing(t *testing.T) {
	raw := `{"project_name": "demo", "files": [
	  {"path": "main.go", "content": "package main"},
	  {"path": "README.md", "content": "# demo"}
	]}`

	result, err := parseScaffold(raw, "demo")
	require.NoError(t, err)
	assert.Contains(t, result.FileTree, "demo/")
	assert.Contains(t, result.FileTree, "main.go")
	assert.Contains(t, result.FileTree, "README.md")
}
