package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectIdeas(t *testing.T) {
	raw := `{"projects": [
	  {
	    "title": "Rate-Limited API Gateway",
	    "problem_statement": "Internal teams need throttling.",
	    "recruiter_match_reasoning": "Shows systems thinking.",
	    "architecture": {"description": "Gateway in front of services", "components": ["proxy", "limiter"], "data_flow": "client -> gateway -> backend"},
	    "tech_stack": ["Go", "Redis"],
	    "complexity_level": 4,
	    "estimated_days": 21,
	    "resume_bullet": "Built a distributed rate limiter handling 10k rps",
	    "key_features": ["sliding window", "per-tenant quotas"],
	    "differentiator": "Real algorithms, not a tutorial clone"
	  },
	  {"title": "", "problem_statement": "dropped"},
	  {"title": "Second Idea", "complexity_level": 99, "estimated_days": 0}
	]}`

	ideas, err := parseProjectIdeas(raw)
	require.NoError(t, err)
	require.Len(t, ideas, 2, "untitled entries are dropped")

	first := ideas[0]
	assert.Equal(t, "Rate-Limited API Gateway", first.Title)
	assert.Equal(t, 4, first.ComplexityLevel)
	assert.Equal(t, 21, first.EstimatedDays)
	assert.Equal(t, []string{"proxy", "limiter"}, first.Architecture.Components)
	assert.Equal(t, []string{"Go", "Redis"}, first.TechStack)

	// out-of-range numbers clamp into their bounds
	assert.Equal(t, 5, ideas[1].ComplexityLevel)
	assert.Equal(t, 1, ideas[1].EstimatedDays)
}

func TestParseProjectIdeasRejectsEmpty(t *testing.T) {
	_, err := parseProjectIdeas(`{"projects": []}`)
	require.Error(t, err)

	_, err = parseProjectIdeas(`{"projects": [{"title": ""}]}`)
	require.Error(t, err)
}
