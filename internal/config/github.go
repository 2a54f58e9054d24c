package config

import (
	"os"
	"sync"
)

type GitHubConfig struct {
	Token string
}

var (
	gitHubConfig *GitHubConfig
	gitHubOnce   sync.Once
)

func LoadGitHubConfig() *GitHubConfig {
	gitHubOnce.Do(func() {
		gitHubConfig = &GitHubConfig{
			Token: os.Getenv("GITHUB_TOKEN"),
		}
	})
	return gitHubConfig
}
