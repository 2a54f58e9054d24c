package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

// FitnessRequest scores pasted resume text. PDF uploads go through the
// multipart variant on the same route group.
type FitnessRequest struct {
	AnalysisID string `json:"analysis_id" validate:"required,uuid4"`
	ResumeText string `json:"resume_text" validate:"required,min=100,max=50000"`
}

type FitnessResponse struct {
	ID           uuid.UUID                `json:"id"`
	AnalysisID   uuid.UUID                `json:"analysis_id"`
	Status       string                   `json:"status"`
	Evaluation   *model.FitnessEvaluation `json:"evaluation,omitempty"`
	ErrorMessage string                   `json:"error_message,omitempty"`
	Metadata     GenerationMetadata       `json:"generation_metadata"`
	CreatedAt    time.Time                `json:"created_at"`
}

type FitnessListItem struct {
	ID         uuid.UUID `json:"id"`
	AnalysisID uuid.UUID `json:"analysis_id"`
	Score      float64   `json:"fitness_score"`
	Verdict    string    `json:"verdict"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewFitnessResponse(f *model.FitnessScore) FitnessResponse {
	resp := FitnessResponse{
		ID:           f.ID,
		AnalysisID:   f.AnalysisID,
		Status:       f.Status,
		ErrorMessage: f.ErrorMessage,
		Metadata:     GenerationMetadata{ProcessingTimeMs: f.ProcessingTimeMs},
		CreatedAt:    f.CreatedAt,
	}
	if f.Status == model.StatusCompleted {
		ev := f.Evaluation()
		resp.Evaluation = &ev
	}
	return resp
}

func NewFitnessListItem(f *model.FitnessScore) FitnessListItem {
	return FitnessListItem{
		ID:         f.ID,
		AnalysisID: f.AnalysisID,
		Score:      f.Score,
		Verdict:    f.Verdict,
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
	}
}
