package agent

import (
	"context"
	"fmt"

	"github.com/shortlist-hq/shortlist-api/internal/company"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

// CompanyNode applies archetype weight adjustments to the extracted
// profile. No LLM call; it rewrites the profile in state and never
// retries.
func CompanyNode(companyType string) pipeline.Node {
	return pipeline.Node{
		Name: "company_modifiers",
		Run: func(_ context.Context, s pipeline.State) (pipeline.Delta, error) {
			profile, ok := s[KeyProfile].(model.SkillProfile)
			if !ok {
				return nil, fmt.Errorf("company stage requires a skill profile upstream")
			}
			mods := company.Apply(&profile, companyType)
			return pipeline.Delta{
				KeyProfile:   profile,
				KeyModifiers: mods,
			}, nil
		},
	}
}
