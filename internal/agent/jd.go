// Package agent holds the concrete extraction stages: one node per
// generation concern, each built on the shared pipeline runner. Nodes
// parse model output through llmjson so malformed payloads surface as
// validation failures and trigger feedback retries.
package agent

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

// State keys shared between stages.
const (
	KeyProfile   = "skill_profile"
	KeyModifiers = "company_modifiers"
	KeyIdeas     = "project_ideas"
	KeyScorecard = "scorecard"
	KeyScaffold  = "scaffold"
	KeyKit       = "portfolio_kit"
	KeyFitness   = "fitness_evaluation"
)

var skillCategories = []string{"language", "framework", "concept", "tool", "soft_skill"}
var skillSources = []string{"required", "preferred", "inferred"}

// JDNode extracts a structured skill profile from raw job description
// text. Required: nothing downstream can run without a profile.
func JDNode(jdText, role, companyType, geography string) pipeline.Node {
	return pipeline.Node{
		Name:        "jd_analysis",
		Required:    true,
		Temperature: 0.2,
		MaxTokens:   8192,
		BuildPrompt: func(pipeline.State) (string, error) {
			return buildJDPrompt(jdText, role, companyType, geography), nil
		},
		Parse: func(raw string) (pipeline.Delta, error) {
			profile, err := parseSkillProfile(raw)
			if err != nil {
				return nil, err
			}
			return pipeline.Delta{KeyProfile: profile}, nil
		},
	}
}

func parseSkillProfile(raw string) (model.SkillProfile, error) {
	var p model.SkillProfile
	payload, err := llmjson.Extract(raw)
	if err != nil {
		return p, err
	}

	skills, err := llmjson.RequireArray(payload, "skills")
	if err != nil {
		return p, err
	}
	for _, s := range skills.Array() {
		name := strings.TrimSpace(s.Get("name").String())
		if name == "" {
			continue
		}
		p.Skills = append(p.Skills, model.Skill{
			Name:     name,
			Category: llmjson.Enum(s.Raw, "category", "concept", skillCategories...),
			Weight:   llmjson.Number(s.Raw, "weight", 5, 0, 10),
			Source:   llmjson.Enum(s.Raw, "source", "inferred", skillSources...),
		})
	}
	if len(p.Skills) == 0 {
		return p, llmjson.Failf("skills", "no skill entry carried a non-empty name")
	}

	p.ExperienceLevel = llmjson.Enum(payload, "experience_level", "mid", model.ExperienceLevels...)
	p.Domain = llmjson.Text(payload, "domain", 100)
	p.KeyResponsibilities = llmjson.StringList(payload, "key_responsibilities", 15)
	p.Summary = llmjson.Text(payload, "summary", 4000)

	gjson.Get(payload, "engineering_expectations").ForEach(func(_, e gjson.Result) bool {
		dim := strings.TrimSpace(e.Get("dimension").String())
		if dim == "" {
			return true
		}
		p.EngineeringExpectations = append(p.EngineeringExpectations, model.EngineeringExpectation{
			Dimension:   dim,
			Importance:  llmjson.Number(e.Raw, "importance", 5, 0, 10),
			Description: llmjson.Text(e.Raw, "description", 1000),
		})
		return len(p.EngineeringExpectations) < 15
	})

	return p, nil
}

// ResolveEmbedded repairs analyses persisted before payload extraction
// was tightened: records whose skills list is empty but whose summary
// field holds the real profile as embedded JSON. Returns the repaired
// profile and whether anything changed.
func ResolveEmbedded(p model.SkillProfile) (model.SkillProfile, bool) {
	if len(p.Skills) > 0 {
		return p, false
	}
	if !strings.Contains(p.Summary, "{") {
		return p, false
	}
	payload, err := llmjson.Extract(p.Summary)
	if err != nil {
		return p, false
	}
	if !gjson.Get(payload, "skills").IsArray() {
		return p, false
	}
	repaired, err := parseSkillProfile(payload)
	if err != nil {
		return p, false
	}
	return repaired, true
}
