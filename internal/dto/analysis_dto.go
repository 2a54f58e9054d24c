package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type AnalyzeJDRequest struct {
	JDText      string `json:"jd_text" validate:"required,min=100,max=50000"`
	Role        string `json:"role" validate:"required,min=2,max=200"`
	CompanyType string `json:"company_type" validate:"required,oneof=startup mid_level faang research enterprise"`
	CompanyName string `json:"company_name" validate:"max=200"`
	Geography   string `json:"geography" validate:"max=100"`
}

// GenerationMetadata rides along with every generated artifact.
type GenerationMetadata struct {
	ProcessingTimeMs int64            `json:"processing_time_ms"`
	CompletedStages  []string         `json:"completed_stages,omitempty"`
	StageMs          map[string]int64 `json:"stage_ms,omitempty"`
	Attempts         map[string]int   `json:"attempts,omitempty"`
}

type AnalysisResponse struct {
	ID               uuid.UUID               `json:"id"`
	Role             string                  `json:"role"`
	CompanyType      string                  `json:"company_type"`
	CompanyName      string                  `json:"company_name,omitempty"`
	Geography        string                  `json:"geography,omitempty"`
	Status           string                  `json:"status"`
	SkillProfile     *model.SkillProfile     `json:"skill_profile,omitempty"`
	CompanyModifiers *model.CompanyModifiers `json:"company_modifiers,omitempty"`
	ErrorMessage     string                  `json:"error_message,omitempty"`
	Metadata         GenerationMetadata      `json:"generation_metadata"`
	CreatedAt        time.Time               `json:"created_at"`
}

// AnalysisListItem omits the heavy jsonb payloads for list views.
type AnalysisListItem struct {
	ID          uuid.UUID `json:"id"`
	Role        string    `json:"role"`
	CompanyType string    `json:"company_type"`
	CompanyName string    `json:"company_name,omitempty"`
	Status      string    `json:"status"`
	SkillCount  int       `json:"skill_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type SimilarAnalysisItem struct {
	ID          uuid.UUID `json:"id"`
	Role        string    `json:"role"`
	CompanyType string    `json:"company_type"`
	Distance    float64   `json:"distance"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAnalysisResponse(a *model.JDAnalysis) AnalysisResponse {
	resp := AnalysisResponse{
		ID:           a.ID,
		Role:         a.Role,
		CompanyType:  a.CompanyType,
		CompanyName:  a.CompanyName,
		Geography:    a.Geography,
		Status:       a.Status,
		ErrorMessage: a.ErrorMessage,
		Metadata:     GenerationMetadata{ProcessingTimeMs: a.ProcessingTimeMs},
		CreatedAt:    a.CreatedAt,
	}
	// failed records still render whatever partial payload landed
	if profile := a.Profile(); len(profile.Skills) > 0 || profile.Summary != "" {
		resp.SkillProfile = &profile
	}
	if mods := a.Modifiers(); mods.CompanyType != "" {
		resp.CompanyModifiers = &mods
	}
	return resp
}

func NewAnalysisListItem(a *model.JDAnalysis) AnalysisListItem {
	return AnalysisListItem{
		ID:          a.ID,
		Role:        a.Role,
		CompanyType: a.CompanyType,
		CompanyName: a.CompanyName,
		Status:      a.Status,
		SkillCount:  len(a.Profile().Skills),
		CreatedAt:   a.CreatedAt,
	}
}
