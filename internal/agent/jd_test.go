package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

const validJDResponse = `{
  "skills": [
    {"name": "Go", "category": "language", "weight": 9, "source": "required"},
    {"name": "PostgreSQL", "category": "tool", "weight": "7", "source": "required"},
    {"name": "System Design", "category": "concept", "weight": 8, "source": "inferred"},
    {"name": "", "category": "tool", "weight": 5, "source": "required"}
  ],
  "experience_level": "Senior",
  "domain": "Backend",
  "engineering_expectations": [
    {"dimension": "Scalability", "importance": 8, "description": "Services handle high traffic"}
  ],
  "key_responsibilities": ["Design APIs", "Own services end to end"],
  "summary": "Senior backend role centered on Go services."
}`

func TestParseSkillProfile(t *testing.T) {
	p, err := parseSkillProfile(validJDResponse)
	require.NoError(t, err)

	require.Len(t, p.Skills, 3, "nameless entries are dropped")
	assert.Equal(t, "Go", p.Skills[0].Name)
	assert.Equal(t, 9.0, p.Skills[0].Weight)
	assert.Equal(t, 7.0, p.Skills[1].Weight, "string weights coerce")
	assert.Equal(t, "senior", p.ExperienceLevel)
	assert.Equal(t, "Backend", p.Domain)
	require.Len(t, p.EngineeringExpectations, 1)
	assert.Equal(t, "Scalability", p.EngineeringExpectations[0].Dimension)
	assert.Len(t, p.KeyResponsibilities, 2)
}

func TestParseSkillProfileFenced(t *testing.T) {
	p, err := parseSkillProfile("```json\n" + validJDResponse + "\n```")
	require.NoError(t, err)
	assert.Len(t, p.Skills, 3)
}

func TestParseSkillProfileRejectsMissingSkills(t *testing.T) {
	_, err := parseSkillProfile(`{"experience_level": "mid", "summary": "x"}`)
	require.Error(t, err)

	_, err = parseSkillProfile(`{"skills": [], "summary": "x"}`)
	require.Error(t, err)
}

func TestParseSkillProfileDefaultsInvalidEnums(t *testing.T) {
	p, err := parseSkillProfile(`{
	  "skills": [{"name": "Go", "category": "wizardry", "weight": 99, "source": "divined"}],
	  "experience_level": "grandmaster"
	}`)
	require.NoError(t, err)
	assert.Equal(t, "concept", p.Skills[0].Category)
	assert.Equal(t, "inferred", p.Skills[0].Source)
	assert.Equal(t, 10.0, p.Skills[0].Weight, "weight clamps to 10")
	assert.Equal(t, "mid", p.ExperienceLevel)
}

func TestResolveEmbeddedRecoversProfileFromSummary(t *testing.T) {
	embedded := `{"skills": [{"name": "Go", "category": "language", "weight": 8, "source": "required"}], "experience_level": "senior", "summary": "real summary"}`
	p := model.SkillProfile{
		Summary: "The analysis produced: " + embedded,
	}

	repaired, changed := ResolveEmbedded(p)
	require.True(t, changed)
	require.Len(t, repaired.Skills, 1)
	assert.Equal(t, "Go", repaired.Skills[0].Name)
	assert.Equal(t, 8.0, repaired.Skills[0].Weight)
	assert.Equal(t, "senior", repaired.ExperienceLevel)
}

func TestResolveEmbeddedLeavesHealthyProfilesAlone(t *testing.T) {
	p := model.SkillProfile{
		Skills:  []model.Skill{{Name: "Go", Weight: 8}},
		Summary: `contains a {"skills": []} blob but skills are populated`,
	}
	_, changed := ResolveEmbedded(p)
	assert.False(t, changed)
}

func TestResolveEmbeddedIgnoresNonProfileJSON(t *testing.T) {
	p := model.SkillProfile{Summary: `role notes: {"headcount": 3}`}
	_, changed := ResolveEmbedded(p)
	assert.False(t, changed)

	p = model.SkillProfile{Summary: "plain prose, no json"}
	_, changed = ResolveEmbedded(p)
	assert.False(t, changed)
}

// End-to-end: jd extraction then deterministic company adjustment.
func TestJDThenCompanyPipeline(t *testing.T) {
	llm := &stubLLM{response: validJDResponse}
	res := pipeline.Run(context.Background(), llm, []pipeline.Node{
		JDNode("We need a senior Go engineer...", "Senior Go Engineer", model.CompanyFaang, ""),
		CompanyNode(model.CompanyFaang),
	}, nil)

	require.False(t, res.Failed)
	assert.Equal(t, []string{"jd_analysis", "company_modifiers"}, res.Completed)

	profile, ok := res.State[KeyProfile].(model.SkillProfile)
	require.True(t, ok)
	mods, ok := res.State[KeyModifiers].(model.CompanyModifiers)
	require.True(t, ok)
	assert.Equal(t, model.CompanyFaang, mods.CompanyType)

	// system design gets +4.0 for faang: 8 -> 10 -> sorted first
	assert.Equal(t, "System Design", profile.Skills[0].Name)
	assert.Equal(t, 10.0, profile.Skills[0].Weight)

	// the adjusted profile round-trips through jsonb persistence
	blob := model.AsJSON(profile)
	var decoded model.SkillProfile
	require.NoError(t, json.Unmarshal([]byte(blob), &decoded))
	assert.Equal(t, profile.Skills[0], decoded.Skills[0])
}

type stubLLM struct {
	response string
	calls    int
}

func (s *stubLLM) GenerateText(context.Context, string, float32, int32) (string, error) {
	s.calls++
	return s.response, nil
}
