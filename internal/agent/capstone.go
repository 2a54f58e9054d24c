package agent

import (
	"fmt"
	"strings"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

// CapstoneNode generates project ideas from the upstream profile and
// modifiers. Required: an ideas request with zero ideas is useless.
func CapstoneNode(role, companyType string, numProjects int, preferredStack []string) pipeline.Node {
	if numProjects < 1 {
		numProjects = 3
	}
	if numProjects > 5 {
		numProjects = 5
	}
	return pipeline.Node{
		Name:        "capstone_ideas",
		Required:    true,
		Temperature: 0.8,
		MaxTokens:   8192,
		BuildPrompt: func(s pipeline.State) (string, error) {
			profile, ok := s[KeyProfile].(model.SkillProfile)
			if !ok {
				return "", fmt.Errorf("capstone stage requires a skill profile upstream")
			}
			mods, _ := s[KeyModifiers].(model.CompanyModifiers)
			return buildCapstonePrompt(profile, mods, role, companyType, numProjects, preferredStack), nil
		},
		Parse: func(raw string) (pipeline.Delta, error) {
			ideas, err := parseProjectIdeas(raw)
			if err != nil {
				return nil, err
			}
			return pipeline.Delta{KeyIdeas: ideas}, nil
		},
	}
}

func parseProjectIdeas(raw string) ([]model.ProjectIdea, error) {
	payload, err := llmjson.Extract(raw)
	if err != nil {
		return nil, err
	}
	projects, err := llmjson.RequireArray(payload, "projects")
	if err != nil {
		return nil, err
	}

	var ideas []model.ProjectIdea
	for _, p := range projects.Array() {
		title := strings.TrimSpace(p.Get("title").String())
		if title == "" {
			continue
		}
		idea := model.ProjectIdea{
			Title:                   title,
			ProblemStatement:        llmjson.Text(p.Raw, "problem_statement", 2000),
			RecruiterMatchReasoning: llmjson.Text(p.Raw, "recruiter_match_reasoning", 2000),
			TechStack:               llmjson.StringList(p.Raw, "tech_stack", 20),
			ComplexityLevel:         int(llmjson.Number(p.Raw, "complexity_level", 3, 1, 5)),
			EstimatedDays:           int(llmjson.Number(p.Raw, "estimated_days", 14, 1, 90)),
			ResumeBullet:            llmjson.Text(p.Raw, "resume_bullet", 300),
			KeyFeatures:             llmjson.StringList(p.Raw, "key_features", 10),
			Differentiator:          llmjson.Text(p.Raw, "differentiator", 500),
		}
		arch := p.Get("architecture")
		if arch.Exists() {
			idea.Architecture = model.Architecture{
				Description: llmjson.Text(arch.Raw, "description", 2000),
				Components:  llmjson.StringList(arch.Raw, "components", 15),
				DataFlow:    llmjson.Text(arch.Raw, "data_flow", 2000),
			}
		}
		ideas = append(ideas, idea)
		if len(ideas) == 5 {
			break
		}
	}
	if len(ideas) == 0 {
		return nil, llmjson.Failf("projects", "no project entry carried a non-empty title")
	}
	return ideas, nil
}
