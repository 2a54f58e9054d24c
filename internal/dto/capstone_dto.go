package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type GenerateCapstonesRequest struct {
	AnalysisID     string   `json:"analysis_id" validate:"required,uuid4"`
	NumProjects    int      `json:"num_projects" validate:"omitempty,min=1,max=5"`
	PreferredStack []string `json:"preferred_stack" validate:"omitempty,max=15,dive,min=1,max=50"`
}

type CapstoneResponse struct {
	ID                      uuid.UUID          `json:"id"`
	AnalysisID              uuid.UUID          `json:"analysis_id"`
	Title                   string             `json:"title"`
	ProblemStatement        string             `json:"problem_statement"`
	RecruiterMatchReasoning string             `json:"recruiter_match_reasoning"`
	Architecture            model.Architecture `json:"architecture"`
	TechStack               []string           `json:"tech_stack"`
	ComplexityLevel         int                `json:"complexity_level"`
	EstimatedDays           int                `json:"estimated_days"`
	ResumeBullet            string             `json:"resume_bullet"`
	KeyFeatures             []string           `json:"key_features"`
	Differentiator          string             `json:"differentiator"`
	Selected                bool               `json:"selected"`
	CreatedAt               time.Time          `json:"created_at"`
}

type CapstoneBatchResponse struct {
	AnalysisID uuid.UUID          `json:"analysis_id"`
	Projects   []CapstoneResponse `json:"projects"`
	Metadata   GenerationMetadata `json:"generation_metadata"`
}

func NewCapstoneResponse(p *model.CapstoneProject) CapstoneResponse {
	resp := CapstoneResponse{
		ID:                      p.ID,
		AnalysisID:              p.AnalysisID,
		Title:                   p.Title,
		ProblemStatement:        p.ProblemStatement,
		RecruiterMatchReasoning: p.RecruiterMatchReasoning,
		ComplexityLevel:         p.ComplexityLevel,
		EstimatedDays:           p.EstimatedDays,
		ResumeBullet:            p.ResumeBullet,
		Differentiator:          p.Differentiator,
		Selected:                p.Selected,
		CreatedAt:               p.CreatedAt,
	}
	unmarshalJSONB(p.Architecture, &resp.Architecture)
	unmarshalJSONB(p.TechStack, &resp.TechStack)
	unmarshalJSONB(p.KeyFeatures, &resp.KeyFeatures)
	return resp
}
