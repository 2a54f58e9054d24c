package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type ScoreRepoRequest struct {
	RepoURL string `json:"repo_url" validate:"required,url,max=500"`
}

type RepoAnalysisResponse struct {
	ID           uuid.UUID            `json:"id"`
	RepoURL      string               `json:"repo_url"`
	RepoName     string               `json:"repo_name"`
	Status       string               `json:"status"`
	Scorecard    *model.RepoScoreCard `json:"scorecard,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
	Metadata     GenerationMetadata   `json:"generation_metadata"`
	CreatedAt    time.Time            `json:"created_at"`
}

type RepoAnalysisListItem struct {
	ID              uuid.UUID `json:"id"`
	RepoURL         string    `json:"repo_url"`
	RepoName        string    `json:"repo_name"`
	PrimaryLanguage string    `json:"primary_language,omitempty"`
	OverallScore    float64   `json:"overall_score"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewRepoAnalysisResponse(a *model.RepoAnalysis) RepoAnalysisResponse {
	resp := RepoAnalysisResponse{
		ID:           a.ID,
		RepoURL:      a.RepoURL,
		RepoName:     a.RepoName,
		Status:       a.Status,
		ErrorMessage: a.ErrorMessage,
		Metadata:     GenerationMetadata{ProcessingTimeMs: a.ProcessingTimeMs},
		CreatedAt:    a.CreatedAt,
	}
	if a.Status == model.StatusCompleted {
		card := a.Card()
		resp.Scorecard = &card
	}
	return resp
}

func NewRepoAnalysisListItem(a *model.RepoAnalysis) RepoAnalysisListItem {
	return RepoAnalysisListItem{
		ID:              a.ID,
		RepoURL:         a.RepoURL,
		RepoName:        a.RepoName,
		PrimaryLanguage: a.PrimaryLanguage,
		OverallScore:    a.OverallScore,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}
