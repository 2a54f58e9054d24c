package agent

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

func TestParsePortfolioKit(t *testing.T) {
	raw := `{
	  "readme_markdown": "# Demo\n\nA demo project.",
	  "resume_bullets": [
	    {"bullet": "Built X achieving Y", "keywords": ["go", "api"], "impact_type": "quantitative"},
	    {"bullet": "Designed Z", "keywords": [], "impact_type": "nonsense"}
	  ],
	  "demo_script": {
	    "total_duration_seconds": 90,
	    "opening_hook": "Watch this",
	    "steps": [{"timestamp": "0:00", "action": "open app", "narration": "intro"}],
	    "closing_cta": "Star the repo"
	  },
	  "linkedin_post": {"hook": "I built a thing", "body": "details", "hashtags": ["#golang"], "call_to_action": "check it out"}
	}`

	kit, err := parsePortfolioKit(raw)
	require.NoError(t, err)
	assert.Equal(t, "# Demo\n\nA demo project.", kit.ReadmeMarkdown)
	require.Len(t, kit.ResumeBullets, 2)
	assert.Equal(t, model.ImpactQuantitative, kit.ResumeBullets[0].ImpactType)
	assert.Equal(t, model.ImpactTechnical, kit.ResumeBullets[1].ImpactType, "unknown impact types default")
	assert.Equal(t, 90, kit.DemoScript.TotalDurationSeconds)
	require.Len(t, kit.DemoScript.Steps, 1)
	assert.Equal(t, "#golang", kit.LinkedInPost.Hashtags[0])
}

func TestParsePortfolioKitRequiresReadmeAndBullets(t *testing.T) {
	_, err := parsePortfolioKit(`{"resume_bullets": [{"bullet": "x"}]}`)
	require.Error(t, err)

	_, err = parsePortfolioKit(`{"readme_markdown": "# x", "resume_bullets": []}`)
	require.Error(t, err)
}

func TestParsePortfolioKitTruncatesReadmeAndCapsSteps(t *testing.T) {
	var steps []string
	for i := 0; i < 30; i++ {
		steps = append(steps, fmt.Sprintf(`{"timestamp": "0:%02d", "action": "step %d", "narration": "n"}`, i, i))
	}
	raw := fmt.Sprintf(`{
	  "readme_markdown": %q,
	  "resume_bullets": [{"bullet": "b", "impact_type": "technical"}],
	  "demo_script": {"total_duration_seconds": 120, "steps": [%s]}
	}`, strings.Repeat("x", maxReadmeChars+500), strings.Join(steps, ","))

	kit, err := parsePortfolioKit(raw)
	require.NoError(t, err)
	assert.Len(t, kit.ReadmeMarkdown, maxReadmeChars)
	assert.Len(t, kit.DemoScript.Steps, 15)
}
