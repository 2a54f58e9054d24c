package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type PortfolioRequest struct {
	CapstoneID  string   `json:"capstone_id" validate:"omitempty,uuid4"`
	Title       string   `json:"title" validate:"required_without=CapstoneID,omitempty,min=2,max=200"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	TechStack   []string `json:"tech_stack" validate:"omitempty,max=20,dive,min=1,max=50"`
	KeyFeatures []string `json:"key_features" validate:"omitempty,max=10,dive,min=1,max=300"`
	RepoScore   float64  `json:"repo_score" validate:"omitempty,min=0,max=10"`
	TargetRole  string   `json:"target_role" validate:"omitempty,max=200"`
}

type PortfolioResponse struct {
	ID           uuid.UUID           `json:"id"`
	AnalysisID   uuid.UUID           `json:"analysis_id,omitempty"`
	ProjectTitle string              `json:"project_title"`
	Kit          *model.PortfolioKit `json:"kit,omitempty"`
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Metadata     GenerationMetadata  `json:"generation_metadata"`
	CreatedAt    time.Time           `json:"created_at"`
}

type PortfolioListItem struct {
	ID           uuid.UUID `json:"id"`
	ProjectTitle string    `json:"project_title"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPortfolioResponse(p *model.Portfolio) PortfolioResponse {
	resp := PortfolioResponse{
		ID:           p.ID,
		AnalysisID:   p.AnalysisID,
		ProjectTitle: p.ProjectTitle,
		Status:       p.Status,
		ErrorMessage: p.ErrorMessage,
		Metadata:     GenerationMetadata{ProcessingTimeMs: p.ProcessingTimeMs},
		CreatedAt:    p.CreatedAt,
	}
	if p.Status == model.StatusCompleted {
		kit := p.Kit()
		resp.Kit = &kit
	}
	return resp
}

func NewPortfolioListItem(p *model.Portfolio) PortfolioListItem {
	return PortfolioListItem{
		ID:           p.ID,
		ProjectTitle: p.ProjectTitle,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}
