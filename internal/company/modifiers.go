// Package company holds the deterministic company-archetype modifier
// rules. No LLM involvement: the adjustments are explicit and auditable.
package company

import (
	"sort"
	"strings"

	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/score"
)

var modifierTable = map[string]model.CompanyModifiers{
	model.CompanyStartup: {
		CompanyType: model.CompanyStartup,
		EmphasisAreas: []string{
			"Shipping speed", "Full-stack capability", "MVP mindset",
			"Wearing multiple hats", "Rapid iteration",
		},
		WeightAdjustments: map[string]float64{
			"full-stack":     +3.0,
			"shipping speed": +3.0,
			"react":          +1.5,
			"fastapi":        +1.5,
			"docker":         +2.0,
			"ci/cd":          +1.5,
			"system design":  -1.0,
		},
		PortfolioFocus: "Show end-to-end projects shipped solo. Emphasize speed, deployment, and user-facing features.",
	},
	model.CompanyMidLevel: {
		CompanyType: model.CompanyMidLevel,
		EmphasisAreas: []string{
			"Clean architecture", "Code quality", "Testing",
			"Design patterns", "Team collaboration",
		},
		WeightAdjustments: map[string]float64{
			"clean code":      +3.0,
			"testing":         +2.5,
			"design patterns": +2.0,
			"code review":     +1.5,
			"documentation":   +1.5,
		},
		PortfolioFocus: "Show well-structured projects with tests, CI, and clean code. Emphasize maintainability, modularity, and code quality metrics.",
	},
	model.CompanyFaang: {
		CompanyType: model.CompanyFaang,
		EmphasisAreas: []string{
			"System design", "Scalability", "Data structures & algorithms",
			"Distributed systems", "Performance optimization",
		},
		WeightAdjustments: map[string]float64{
			"system design":       +4.0,
			"scalability":         +3.5,
			"algorithms":          +3.0,
			"distributed systems": +2.5,
			"performance":         +2.0,
			"kubernetes":          +1.5,
		},
		PortfolioFocus: "Show projects that demonstrate scale thinking. Include architecture diagrams, load considerations, and system design documentation.",
	},
	model.CompanyResearch: {
		CompanyType: model.CompanyResearch,
		EmphasisAreas: []string{
			"Novel approach", "Rigorous evaluation", "Paper-grade documentation",
			"Reproducibility", "Experiment tracking",
		},
		WeightAdjustments: map[string]float64{
			"machine learning":     +3.0,
			"evaluation metrics":   +2.5,
			"reproducibility":      +2.0,
			"research methodology": +2.0,
			"python":               +1.0,
		},
		PortfolioFocus: "Show projects with clear problem formulation, novel approaches, ablation studies, and paper-quality writeups.",
	},
	model.CompanyEnterprise: {
		CompanyType: model.CompanyEnterprise,
		EmphasisAreas: []string{
			"Security", "Reliability", "Compliance",
			"Error handling", "Logging & monitoring", "Documentation",
		},
		WeightAdjustments: map[string]float64{
			"security":       +4.0,
			"reliability":    +3.0,
			"error handling": +2.5,
			"logging":        +2.0,
			"monitoring":     +2.0,
			"documentation":  +2.0,
			"compliance":     +1.5,
		},
		PortfolioFocus: "Show projects with robust error handling, security headers, structured logging, auth, and deployment pipelines.",
	},
}

// ModifiersFor returns the modifier set for a company type, falling back
// to mid_level for unknown values.
func ModifiersFor(companyType string) model.CompanyModifiers {
	if m, ok := modifierTable[strings.ToLower(companyType)]; ok {
		return m
	}
	return modifierTable[model.CompanyMidLevel]
}

// Apply adjusts skill weights in place for the given company type and
// re-sorts skills by weight descending. Adjusted weights stay in [0,10].
// An empty profile passes through untouched: no skills means nothing to
// adjust, and that is a degraded result, not an error.
func Apply(profile *model.SkillProfile, companyType string) model.CompanyModifiers {
	mods := ModifiersFor(companyType)
	if profile == nil || len(profile.Skills) == 0 {
		return mods
	}

	for i := range profile.Skills {
		name := strings.ToLower(profile.Skills[i].Name)
		for key, delta := range mods.WeightAdjustments {
			if strings.Contains(name, key) {
				profile.Skills[i].Weight = score.Clamp(profile.Skills[i].Weight+delta, 0, 10)
			}
		}
	}

	sort.SliceStable(profile.Skills, func(i, j int) bool {
		return profile.Skills[i].Weight > profile.Skills[j].Weight
	})
	return mods
}
