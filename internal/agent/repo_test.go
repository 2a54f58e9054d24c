package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

func testDigest() *service.RepoDigest {
	return &service.RepoDigest{
		Owner:           "octocat",
		Name:            "widgets",
		FullName:        "octocat/widgets",
		PrimaryLanguage: "Go",
		TotalFiles:      42,
		EstimatedLOC:    3000,
	}
}

const validScoreResponse = `{
  "code_quality": {"score": 8, "details": "clean, idiomatic", "suggestions": ["add linting"]},
  "test_coverage": {"score": 6.5, "details": "unit tests only", "suggestions": []},
  "complexity": {"score": 7, "details": "well scoped", "suggestions": []},
  "structure": {"score": 8, "details": "standard layout", "suggestions": []},
  "deployment_readiness": {"score": 5, "details": "no Dockerfile", "suggestions": ["add Dockerfile"]},
  "summary": "Solid portfolio repository.",
  "top_improvements": ["add Dockerfile", "raise coverage", "add CI"]
}`

func TestParseScoreCardAggregatesServerSide(t *testing.T) {
	card, err := parseScoreCard(validScoreResponse, testDigest())
	require.NoError(t, err)

	assert.Equal(t, "octocat/widgets", card.RepoName)
	assert.Equal(t, 8.0, card.CodeQuality.Score)
	assert.Equal(t, 6.5, card.TestCoverage.Score)
	// (8 + 6.5 + 7 + 8 + 5) / 5 = 6.9
	assert.Equal(t, 6.9, card.OverallScore)
	assert.Len(t, card.TopImprovements, 3)
}

func TestParseScoreCardRejectsMissingDimension(t *testing.T) {
	_, err := parseScoreCard(`{"code_quality": {"score": 8}, "summary": "partial"}`, testDigest())
	require.Error(t, err)
}

func TestRepoScoreNodeDegradesToNeutral(t *testing.T) {
	llm := &stubLLM{response: "I cannot produce JSON today."}
	res := pipeline.Run(context.Background(), llm, []pipeline.Node{
		RepoScoreNode(testDigest()),
	}, nil)

	require.False(t, res.Failed, "scorecard degrades instead of failing")
	assert.Equal(t, []string{"repo_scoring"}, res.Degraded)
	assert.Equal(t, pipeline.DefaultMaxRetries+1, llm.calls)

	card, ok := res.State[KeyScorecard].(model.RepoScoreCard)
	require.True(t, ok)
	assert.Equal(t, 5.0, card.CodeQuality.Score)
	assert.Equal(t, 5.0, card.OverallScore)
	assert.Equal(t, "octocat/widgets", card.RepoName)
}
