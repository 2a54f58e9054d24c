package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey         string
	AnalysisModel  string
	EmbeddingModel string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			AnalysisModel:  envOr("GEMINI_ANALYSIS_MODEL", "gemini-2.5-flash"),
			EmbeddingModel: envOr("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		}
	})
	return geminiConfig
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
