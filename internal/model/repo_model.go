package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ScoreDimension is one axis of the repo scorecard.
type ScoreDimension struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"` // 0-10
	Details     string   `json:"details"`
	Suggestions []string `json:"suggestions"`
}

// RepoScoreCard is the full recruiter scorecard for a repository.
// OverallScore is always recomputed from the five dimensions server-side.
type RepoScoreCard struct {
	RepoURL             string         `json:"repo_url"`
	RepoName            string         `json:"repo_name"`
	PrimaryLanguage     string         `json:"primary_language,omitempty"`
	TotalFiles          int            `json:"total_files"`
	TotalLines          int            `json:"total_lines"`
	CodeQuality         ScoreDimension `json:"code_quality"`
	TestCoverage        ScoreDimension `json:"test_coverage"`
	Complexity          ScoreDimension `json:"complexity"`
	Structure           ScoreDimension `json:"structure"`
	DeploymentReadiness ScoreDimension `json:"deployment_readiness"`
	OverallScore        float64        `json:"overall_score"`
	Summary             string         `json:"summary"`
	TopImprovements     []string       `json:"top_improvements"`
}

// RepoAnalysis is a persisted repository scorecard run.
type RepoAnalysis struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(64);index" json:"user_id"`
	RepoURL          string    `gorm:"type:varchar(500)" json:"repo_url"`
	RepoName         string    `gorm:"type:varchar(200)" json:"repo_name"`
	PrimaryLanguage  string    `gorm:"type:varchar(100)" json:"primary_language"`
	TotalFiles       int       `json:"total_files"`
	TotalLines       int       `json:"total_lines"`
	OverallScore     float64   `json:"overall_score"`
	Scorecard        string    `gorm:"type:jsonb;default:'{}'" json:"scorecard"`
	Status           string    `gorm:"type:varchar(50)" json:"status"`
	ErrorMessage     string    `gorm:"type:text" json:"error_message"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (r *RepoAnalysis) TableName() string {
	return "repo_analyses"
}

// Card decodes the stored scorecard.
func (r *RepoAnalysis) Card() RepoScoreCard {
	var c RepoScoreCard
	_ = json.Unmarshal([]byte(r.Scorecard), &c)
	return c
}
