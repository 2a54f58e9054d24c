package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/score"
)

func TestParseFitnessEvaluationRecomputesVerdict(t *testing.T) {
	// the model's verdict contradicts its own score; the band wins
	raw := `{
	  "fitness_score": 82,
	  "verdict": "weak_fit",
	  "matched_skills": [{"name": "Go", "evidence": "3 years at Acme"}],
	  "missing_skills": [{"name": "Kubernetes", "importance": "important", "suggestion": "deploy a side project"}],
	  "strengths": ["strong backend fundamentals"],
	  "improvements": [{"area": "observability", "current_state": "none shown", "recommended_action": "add tracing to a project", "impact": "medium"}],
	  "detailed_feedback": "Strong candidate overall."
	}`

	ev, err := parseFitnessEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, 82.0, ev.FitnessScore)
	assert.Equal(t, score.VerdictStrongFit, ev.Verdict)
	require.Len(t, ev.MatchedSkills, 1)
	assert.Equal(t, "Go", ev.MatchedSkills[0].Name)
	require.Len(t, ev.MissingSkills, 1)
	require.Len(t, ev.Improvements, 1)
	assert.Equal(t, "medium", ev.Improvements[0].Impact)
}

func TestParseFitnessEvaluationClampsScore(t *testing.T) {
	ev, err := parseFitnessEvaluation(`{"fitness_score": 150}`)
	require.NoError(t, err)
	assert.Equal(t, 100.0, ev.FitnessScore)
	assert.Equal(t, score.VerdictStrongFit, ev.Verdict)

	ev, err = parseFitnessEvaluation(`{"fitness_score": -20}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ev.FitnessScore)
	assert.Equal(t, score.VerdictWeakFit, ev.Verdict)
}

func TestParseFitnessEvaluationRequiresScore(t *testing.T) {
	_, err := parseFitnessEvaluation(`{"verdict": "strong_fit"}`)
	require.Error(t, err)
}

func TestParseFitnessEvaluationDefaultsBadEnums(t *testing.T) {
	raw := `{
	  "fitness_score": 55,
	  "missing_skills": [{"name": "Rust", "importance": "essential", "suggestion": "s"}],
	  "improvements": [{"area": "x", "impact": "catastrophic"}]
	}`
	ev, err := parseFitnessEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, "important", ev.MissingSkills[0].Importance)
	assert.Equal(t, "medium", ev.Improvements[0].Impact)
	assert.Equal(t, score.VerdictPartialFit, ev.Verdict)
}
