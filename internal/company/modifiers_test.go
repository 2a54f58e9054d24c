package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

func profileWith(skills ...model.Skill) *model.SkillProfile {
	return &model.SkillProfile{Skills: skills, ExperienceLevel: "senior"}
}

func TestApplyBoostsMatchingSkills(t *testing.T) {
	p := profileWith(
		model.Skill{Name: "System Design", Weight: 5, Category: "concept", Source: "required"},
		model.Skill{Name: "React", Weight: 6, Category: "framework", Source: "preferred"},
	)

	mods := Apply(p, model.CompanyFaang)
	assert.Equal(t, model.CompanyFaang, mods.CompanyType)

	// system design gets +4.0 for faang and rises to the top
	require.Equal(t, "System Design", p.Skills[0].Name)
	assert.Equal(t, 9.0, p.Skills[0].Weight)
	assert.Equal(t, 6.0, p.Skills[1].Weight, "react is untouched for faang")
}

func TestApplyClampsToTen(t *testing.T) {
	p := profileWith(model.Skill{Name: "Security", Weight: 9, Source: "required"})
	Apply(p, model.CompanyEnterprise)
	assert.Equal(t, 10.0, p.Skills[0].Weight)
}

func TestApplyClampsToZero(t *testing.T) {
	p := profileWith(model.Skill{Name: "System Design", Weight: 0.5, Source: "inferred"})
	Apply(p, model.CompanyStartup)
	assert.Equal(t, 0.0, p.Skills[0].Weight, "startup docks system design by 1.0")
}

func TestApplySortsByWeightDescending(t *testing.T) {
	p := profileWith(
		model.Skill{Name: "Python", Weight: 4},
		model.Skill{Name: "Docker", Weight: 5},
		model.Skill{Name: "Kafka", Weight: 9},
	)
	Apply(p, model.CompanyStartup)

	// docker gets +2.0 for startup: 7.0, still behind kafka
	assert.Equal(t, []string{"Kafka", "Docker", "Python"}, []string{
		p.Skills[0].Name, p.Skills[1].Name, p.Skills[2].Name,
	})
}

func TestApplyMatchesSubstrings(t *testing.T) {
	p := profileWith(model.Skill{Name: "Distributed Systems Design", Weight: 5})
	Apply(p, model.CompanyFaang)
	// matches "distributed systems" (+2.5); "system design" does not
	// appear as a contiguous substring of the lowered name
	assert.Equal(t, 7.5, p.Skills[0].Weight)
}

func TestApplyEmptyProfilePassesThrough(t *testing.T) {
	p := &model.SkillProfile{}
	mods := Apply(p, model.CompanyResearch)
	assert.Empty(t, p.Skills)
	assert.Equal(t, model.CompanyResearch, mods.CompanyType)
}

func TestModifiersForUnknownFallsBackToMidLevel(t *testing.T) {
	mods := ModifiersFor("bootstrapped-unicorn")
	assert.Equal(t, model.CompanyMidLevel, mods.CompanyType)
}

func TestModifiersForIsCaseInsensitive(t *testing.T) {
	mods := ModifiersFor("FAANG")
	assert.Equal(t, model.CompanyFaang, mods.CompanyType)
}
