package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitHubURL(t *testing.T) {
	owner, repo, err := ParseGitHubURL("https://github.com/octocat/hello-world")
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", repo)

	owner, repo, err = ParseGitHubURL("  https://github.com/some-org/repo.name/  ")
	require.NoError(t, err)
	assert.Equal(t, "some-org", owner)
	assert.Equal(t, "repo.name", repo)
}

func TestParseGitHubURLRejectsNonRepoURLs(t *testing.T) {
	for _, url := range []string{
		"",
		"github.com/octocat/hello",
		"https://gitlab.com/octocat/hello",
		"https://github.com/octocat",
		"https://github.com/octocat/hello/tree/main",
		"http://github.com/octocat/hello",
	} {
		_, _, err := ParseGitHubURL(url)
		assert.Error(t, err, "url %q", url)
	}
}
