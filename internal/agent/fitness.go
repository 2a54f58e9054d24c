package agent

import (
	"github.com/tidwall/gjson"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/score"
)

// FitnessNode evaluates a resume against an analyzed job description.
// The stored verdict is always recomputed from the clamped score; the
// model's own verdict string is advisory only.
func FitnessNode(role, companyType string, profile model.SkillProfile, resumeText string) pipeline.Node {
	return pipeline.Node{
		Name:        "fitness_scoring",
		Required:    true,
		Temperature: 0.3,
		MaxTokens:   8192,
		BuildPrompt: func(pipeline.State) (string, error) {
			return buildFitnessPrompt(role, companyType, profile, resumeText), nil
		},
		Parse: func(raw string) (pipeline.Delta, error) {
			ev, err := parseFitnessEvaluation(raw)
			if err != nil {
				return nil, err
			}
			return pipeline.Delta{KeyFitness: ev}, nil
		},
	}
}

func parseFitnessEvaluation(raw string) (model.FitnessEvaluation, error) {
	var ev model.FitnessEvaluation
	payload, err := llmjson.Extract(raw)
	if err != nil {
		return ev, err
	}
	if !gjson.Get(payload, "fitness_score").Exists() {
		return ev, llmjson.Failf("fitness_score", "required field is missing")
	}

	ev.FitnessScore = llmjson.Number(payload, "fitness_score", 0, 0, 100)
	ev.Verdict = score.VerdictFor(ev.FitnessScore)
	ev.Strengths = llmjson.StringList(payload, "strengths", 10)
	ev.DetailedFeedback = llmjson.Text(payload, "detailed_feedback", 10000)

	forEachObject(payload, "matched_skills", 20, func(raw string) {
		name := llmjson.Text(raw, "name", 100)
		if name == "" {
			return
		}
		ev.MatchedSkills = append(ev.MatchedSkills, model.MatchedSkill{
			Name:     name,
			Evidence: llmjson.Text(raw, "evidence", 500),
		})
	})
	forEachObject(payload, "missing_skills", 15, func(raw string) {
		name := llmjson.Text(raw, "name", 100)
		if name == "" {
			return
		}
		ev.MissingSkills = append(ev.MissingSkills, model.MissingSkill{
			Name:       name,
			Importance: llmjson.Enum(raw, "importance", "important", "critical", "important", "nice_to_have"),
			Suggestion: llmjson.Text(raw, "suggestion", 500),
		})
	})
	forEachObject(payload, "improvements", 10, func(raw string) {
		area := llmjson.Text(raw, "area", 100)
		if area == "" {
			return
		}
		ev.Improvements = append(ev.Improvements, model.Improvement{
			Area:              area,
			CurrentState:      llmjson.Text(raw, "current_state", 500),
			RecommendedAction: llmjson.Text(raw, "recommended_action", 500),
			Impact:            llmjson.Enum(raw, "impact", "medium", "high", "medium", "low"),
		})
	})
	return ev, nil
}
