package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/shortlist-hq/shortlist-api/internal/config"
	"github.com/tidwall/gjson"
)

const githubAPI = "https://api.github.com"

var githubURLPattern = regexp.MustCompile(`^https://github\.com/([a-zA-Z0-9._-]+)/([a-zA-Z0-9._-]+)/?$`)

var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".go": true, ".rs": true, ".rb": true, ".cpp": true,
	".c": true, ".h": true, ".hpp": true, ".cs": true, ".swift": true,
	".kt": true, ".scala": true, ".php": true, ".vue": true, ".svelte": true,
	".html": true, ".css": true, ".scss": true, ".sass": true, ".less": true,
}

var testPatterns = []string{
	"test_", "_test.py", "_test.go", ".test.js", ".test.ts",
	".spec.js", ".spec.ts", "tests/", "__tests__/", "spec/", "test/",
}

var qualityFiles = map[string]bool{
	"readme.md": true, "readme": true, "license": true, "contributing.md": true,
	".gitignore": true, ".editorconfig": true, "changelog.md": true,
	"security.md": true, "code_of_conduct.md": true,
}

// RepoDigest is everything the scoring prompt needs to know about a
// repository: metadata, structural counts, README, and a few sample files.
type RepoDigest struct {
	Owner           string
	Name            string
	FullName        string
	Description     string
	PrimaryLanguage string
	Languages       map[string]int64
	Stars           int
	Topics          []string
	DefaultBranch   string
	HasLicense      bool
	HasReadme       bool

	TotalFiles   int
	TotalDirs    int
	CodeFiles    int
	TestFiles    int
	ConfigFiles  []string
	QualityFiles []string
	HasCI        bool
	HasDocker    bool
	HasTests     bool
	EstimatedLOC int

	ReadmeContent string
	SampleFiles   map[string]string
}

type GitHubServiceInterface interface {
	FetchRepoDigest(ctx context.Context, githubURL string) (*RepoDigest, error)
}

// GitHubService collects repository data over the REST API. It never
// clones: the Git Trees API gives the whole structure in one call.
type GitHubService struct {
	client *resty.Client
}

func NewGitHubService() *GitHubService {
	client := resty.New().
		SetBaseURL(githubAPI).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28").
		SetHeader("User-Agent", "shortlist-portfolio-analyzer/1.0")
	if token := config.LoadGitHubConfig().Token; token != "" {
		client.SetAuthToken(token)
	}
	return &GitHubService{client: client}
}

// ParseGitHubURL extracts owner and repo from a canonical GitHub URL.
func ParseGitHubURL(url string) (owner, repo string, err error) {
	m := githubURLPattern.FindStringSubmatch(strings.TrimRight(strings.TrimSpace(url), "/"))
	if m == nil {
		return "", "", fmt.Errorf("must be a valid GitHub URL: https://github.com/{owner}/{repo}")
	}
	return m[1], m[2], nil
}

func (s *GitHubService) get(ctx context.Context, path string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return "", fmt.Errorf("github request %s: %w", path, err)
	}
	switch resp.StatusCode() {
	case 200:
		return resp.String(), nil
	case 404:
		return "", nil
	case 403:
		return "", fmt.Errorf("github API rate limit exceeded, try again later")
	default:
		return "", fmt.Errorf("github API error %d for %s", resp.StatusCode(), path)
	}
}

// FetchRepoDigest performs the full repository data collection: metadata,
// languages, recursive tree walk, README, and up to three sample source
// files.
func (s *GitHubService) FetchRepoDigest(ctx context.Context, githubURL string) (*RepoDigest, error) {
	owner, repo, err := ParseGitHubURL(githubURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Fetching repo digest for %s/%s", owner, repo)

	body, err := s.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo))
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, fmt.Errorf("repository not found: %s/%s", owner, repo)
	}

	meta := gjson.Parse(body)
	digest := &RepoDigest{
		Owner:           owner,
		Name:            repo,
		FullName:        meta.Get("full_name").String(),
		Description:     meta.Get("description").String(),
		PrimaryLanguage: meta.Get("language").String(),
		Languages:       map[string]int64{},
		Stars:           int(meta.Get("stargazers_count").Int()),
		DefaultBranch:   meta.Get("default_branch").String(),
		HasLicense:      meta.Get("license").Exists() && meta.Get("license").Type != gjson.Null,
		SampleFiles:     map[string]string{},
	}
	if digest.FullName == "" {
		digest.FullName = owner + "/" + repo
	}
	if digest.DefaultBranch == "" {
		digest.DefaultBranch = "main"
	}
	meta.Get("topics").ForEach(func(_, v gjson.Result) bool {
		digest.Topics = append(digest.Topics, v.String())
		return true
	})

	if langs, err := s.get(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, repo)); err == nil && langs != "" {
		gjson.Parse(langs).ForEach(func(k, v gjson.Result) bool {
			digest.Languages[k.String()] = v.Int()
			return true
		})
	}

	if err := s.walkTree(ctx, digest); err != nil {
		log.Printf("Tree walk failed for %s/%s: %v", owner, repo, err)
	}

	for _, name := range []string{"README.md", "README.rst", "README.txt", "README"} {
		content, err := s.fetchFileContent(ctx, owner, repo, name, 15000)
		if err == nil && content != "" {
			digest.ReadmeContent = content
			digest.HasReadme = true
			break
		}
	}

	s.fetchSampleFiles(ctx, digest)
	log.Printf("Repo digest complete for %s: %d files, %d code files, %d test files",
		digest.FullName, digest.TotalFiles, digest.CodeFiles, digest.TestFiles)
	return digest, nil
}

// walkTree classifies every blob in the recursive git tree, capped at 500
// entries to bound response size.
func (s *GitHubService) walkTree(ctx context.Context, d *RepoDigest) error {
	body, err := s.get(ctx, fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", d.Owner, d.Name, d.DefaultBranch))
	if err != nil {
		return err
	}
	if body == "" {
		return fmt.Errorf("tree not found for branch %s", d.DefaultBranch)
	}

	var samples []string
	count := 0
	gjson.Get(body, "tree").ForEach(func(_, item gjson.Result) bool {
		if count >= 500 {
			return false
		}
		count++

		path := item.Get("path").String()
		if item.Get("type").String() == "tree" {
			d.TotalDirs++
			return true
		}
		d.TotalFiles++

		lower := strings.ToLower(path)
		filename := path
		if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
			filename = path[idx+1:]
		}
		ext := ""
		if idx := strings.LastIndexByte(filename, '.'); idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}

		if codeExtensions[ext] {
			d.CodeFiles++
			d.EstimatedLOC += int(item.Get("size").Int()) / 40
			if !strings.Contains(lower, "test") && !strings.Contains(lower, "spec") &&
				!strings.Contains(lower, "mock") && strings.Contains(path, "/") && len(samples) < 3 {
				switch ext {
				case ".py", ".ts", ".js", ".go", ".rs":
					samples = append(samples, path)
				}
			}
		}

		for _, pattern := range testPatterns {
			if strings.Contains(lower, pattern) {
				d.TestFiles++
				d.HasTests = true
				break
			}
		}

		switch {
		case strings.HasPrefix(lower, ".github/workflows"):
			d.HasCI = true
			appendUnique(&d.ConfigFiles, ".github/workflows")
		case filename == "Dockerfile" || strings.HasPrefix(lower, "docker-compose"):
			d.HasDocker = true
			appendUnique(&d.ConfigFiles, filename)
		case filename == "package.json" || filename == "go.mod" || filename == "requirements.txt" ||
			filename == "pyproject.toml" || filename == "Cargo.toml" || filename == "Makefile" ||
			filename == "pom.xml" || filename == "Gemfile":
			appendUnique(&d.ConfigFiles, filename)
		}

		if qualityFiles[strings.ToLower(filename)] {
			appendUnique(&d.QualityFiles, filename)
		}
		return true
	})

	// Stash sample candidates for fetchSampleFiles.
	d.SampleFiles = map[string]string{}
	for _, p := range samples {
		d.SampleFiles[p] = ""
	}
	return nil
}

func (s *GitHubService) fetchSampleFiles(ctx context.Context, d *RepoDigest) {
	for path := range d.SampleFiles {
		content, err := s.fetchFileContent(ctx, d.Owner, d.Name, path, 20000)
		if err != nil || content == "" {
			delete(d.SampleFiles, path)
			continue
		}
		d.SampleFiles[path] = content
	}
}

func (s *GitHubService) fetchFileContent(ctx context.Context, owner, repo, path string, maxSize int) (string, error) {
	body, err := s.get(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path))
	if err != nil || body == "" {
		return "", err
	}
	if gjson.Get(body, "size").Int() > int64(maxSize)*4 {
		return "", nil
	}

	content := gjson.Get(body, "content").String()
	if gjson.Get(body, "encoding").String() == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", path, err)
		}
		content = string(decoded)
	}
	if len(content) > maxSize {
		content = content[:maxSize]
	}
	return content, nil
}

func appendUnique(list *[]string, value string) {
	for _, v := range *list {
		if v == value {
			return
		}
	}
	*list = append(*list, value)
}
