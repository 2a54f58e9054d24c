package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

func TestNewAnalysisResponseRendersPartialsOnFailure(t *testing.T) {
	record := &model.JDAnalysis{
		Role:        "Backend Engineer",
		CompanyType: "startup",
		Status:      model.StatusFailed,
		SkillProfile: model.AsJSON(model.SkillProfile{
			Skills: []model.Skill{{Name: "Go", Category: "language", Weight: 8}},
		}),
		CompanyModifiers: model.AsJSON(model.CompanyModifiers{CompanyType: "startup"}),
		ErrorMessage:     "stage \"capstone\" failed",
	}

	resp := NewAnalysisResponse(record)
	require.NotNil(t, resp.SkillProfile)
	assert.Equal(t, "Go", resp.SkillProfile.Skills[0].Name)
	require.NotNil(t, resp.CompanyModifiers)
	assert.Equal(t, "startup", resp.CompanyModifiers.CompanyType)
	assert.Equal(t, model.StatusFailed, resp.Status)
}

func TestNewAnalysisResponseOmitsEmptyPayloads(t *testing.T) {
	record := &model.JDAnalysis{
		Role:             "Backend Engineer",
		CompanyType:      "startup",
		Status:           model.StatusPending,
		SkillProfile:     model.EmptyObject,
		CompanyModifiers: model.EmptyObject,
	}

	resp := NewAnalysisResponse(record)
	assert.Nil(t, resp.SkillProfile)
	assert.Nil(t, resp.CompanyModifiers)
}
