package agent

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

// maxScaffoldFileBytes caps a single generated file's content. Anything
// larger is model runaway, not starter code.
const maxScaffoldFileBytes = 512 * 1024

const maxScaffoldFiles = 30

// ScaffoldResult is the sanitized scaffold payload.
type ScaffoldResult struct {
	ProjectName string
	Files       []model.GeneratedFile
	FileTree    string
}

// ScaffoldNode generates a project skeleton. Required: a scaffold
// request that yields no files has nothing to persist.
func ScaffoldNode(title, description string, techStack []string, includeDocker, includeCI, includeTests bool, capstoneContext string) pipeline.Node {
	return pipeline.Node{
		Name:        "scaffold",
		Required:    true,
		Temperature: 0.4,
		MaxTokens:   8192,
		BuildPrompt: func(pipeline.State) (string, error) {
			return buildScaffoldPrompt(title, description, techStack, includeDocker, includeCI, includeTests, capstoneContext), nil
		},
		Parse: func(raw string) (pipeline.Delta, error) {
			result, err := parseScaffold(raw, title)
			if err != nil {
				return nil, err
			}
			return pipeline.Delta{KeyScaffold: result}, nil
		},
	}
}

func parseScaffold(raw, fallbackName string) (*ScaffoldResult, error) {
	payload, err := llmjson.Extract(raw)
	if err != nil {
		return nil, err
	}
	files, err := llmjson.RequireArray(payload, "files")
	if err != nil {
		return nil, err
	}

	result := &ScaffoldResult{
		ProjectName: sanitizeProjectName(llmjson.Text(payload, "project_name", 100), fallbackName),
		FileTree:    llmjson.Text(payload, "file_tree", 20000),
	}

	seen := map[string]bool{}
	for _, f := range files.Array() {
		p, ok := sanitizePath(f.Get("path").String())
		if !ok || seen[p] {
			continue
		}
		content := f.Get("content").String()
		if content == "" || len(content) > maxScaffoldFileBytes {
			continue
		}
		seen[p] = true
		result.Files = append(result.Files, model.GeneratedFile{
			Path:        p,
			Content:     content,
			Language:    llmjson.Text(f.Raw, "language", 50),
			Description: llmjson.Text(f.Raw, "description", 500),
		})
		if len(result.Files) == maxScaffoldFiles {
			break
		}
	}
	if len(result.Files) == 0 {
		return nil, llmjson.Failf("files", "no file survived path and content validation")
	}
	if result.FileTree == "" {
		result.FileTree = renderFileTree(result.ProjectName, result.Files)
	}
	return result, nil
}

// allowedDotfiles are the only hidden files a scaffold may contain.
var allowedDotfiles = map[string]bool{
	".gitignore":    true,
	".dockerignore": true,
	".env.example":  true,
	".editorconfig": true,
	".golangci.yml": true,
	".eslintrc":     true,
	".prettierrc":   true,
}

// allowedExtensions whitelists file types a scaffold may write out.
var allowedExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".rs": true, ".java": true, ".kt": true, ".rb": true, ".c": true, ".cpp": true,
	".h": true, ".cs": true, ".sql": true, ".sh": true, ".html": true, ".css": true,
	".scss": true, ".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".md": true, ".txt": true, ".env": true, ".mod": true, ".sum": true,
	".proto": true, ".graphql": true, ".tf": true,
}

var allowedBasenames = map[string]bool{
	"Dockerfile": true, "Makefile": true, "LICENSE": true, "Procfile": true,
	"docker-compose.yml": true, "docker-compose.yaml": true,
}

// sanitizePath accepts only clean relative paths with whitelisted names.
// Traversal segments, absolute paths, and unexpected hidden files are
// rejected outright rather than rewritten.
func sanitizePath(p string) (string, bool) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "./")
	if p == "" || len(p) > 300 {
		return "", false
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "..") || strings.ContainsAny(p, "\x00\n\r") {
		return "", false
	}
	clean := path.Clean(p)
	if clean != p || clean == "." {
		return "", false
	}
	for _, seg := range strings.Split(clean, "/") {
		if seg == "" {
			return "", false
		}
		if strings.HasPrefix(seg, ".") && !allowedDotfiles[seg] && seg != ".github" {
			return "", false
		}
	}
	base := path.Base(clean)
	if allowedDotfiles[base] || allowedBasenames[base] || allowedExtensions[path.Ext(base)] {
		return clean, true
	}
	return "", false
}

var projectNameRe = regexp.MustCompile(`[^a-z0-9-]+`)

func sanitizeProjectName(name, fallback string) string {
	for _, candidate := range []string{name, fallback} {
		s := strings.ToLower(strings.TrimSpace(candidate))
		s = projectNameRe.ReplaceAllString(strings.ReplaceAll(s, " ", "-"), "-")
		s = strings.Trim(s, "-")
		if len(s) > 60 {
			s = s[:60]
		}
		if s != "" {
			return s
		}
	}
	return "generated-project"
}

// renderFileTree builds an ASCII tree from the sanitized paths, used
// when the model omits its own.
func renderFileTree(root string, files []model.GeneratedFile) string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	sort.Strings(paths)

	var sb strings.Builder
	sb.WriteString(root + "/\n")
	for i, p := range paths {
		connector := "├── "
		if i == len(paths)-1 {
			connector = "└── "
		}
		sb.WriteString(connector + p + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
