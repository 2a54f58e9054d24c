package model

import (
	"time"

	"github.com/google/uuid"
)

// Architecture is the high-level system sketch inside a project idea.
type Architecture struct {
	Description string   `json:"description"`
	Components  []string `json:"components"`
	DataFlow    string   `json:"data_flow"`
}

// ProjectIdea is one generated capstone project.
type ProjectIdea struct {
	Title                   string       `json:"title"`
	ProblemStatement        string       `json:"problem_statement"`
	RecruiterMatchReasoning string       `json:"recruiter_match_reasoning"`
	Architecture            Architecture `json:"architecture"`
	TechStack               []string     `json:"tech_stack"`
	ComplexityLevel         int          `json:"complexity_level"` // 1-5
	EstimatedDays           int          `json:"estimated_days"`   // 1-90
	ResumeBullet            string       `json:"resume_bullet"`
	KeyFeatures             []string     `json:"key_features"`
	Differentiator          string       `json:"differentiator"`
}

// CapstoneProject is a persisted project idea. Belongs to exactly one
// analysis; never mutated after creation except the Selected flag.
type CapstoneProject struct {
	ID                      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                  string    `gorm:"type:varchar(64);index" json:"user_id"`
	AnalysisID              uuid.UUID `gorm:"type:uuid;index" json:"analysis_id"`
	Title                   string    `gorm:"type:varchar(200)" json:"title"`
	ProblemStatement        string    `gorm:"type:text" json:"problem_statement"`
	RecruiterMatchReasoning string    `gorm:"type:text" json:"recruiter_match_reasoning"`
	Architecture            string    `gorm:"type:jsonb;default:'{}'" json:"architecture"`
	TechStack               string    `gorm:"type:jsonb;default:'[]'" json:"tech_stack"`
	ComplexityLevel         int       `json:"complexity_level"`
	EstimatedDays           int       `json:"estimated_days"`
	ResumeBullet            string    `gorm:"type:varchar(300)" json:"resume_bullet"`
	KeyFeatures             string    `gorm:"type:jsonb;default:'[]'" json:"key_features"`
	Differentiator          string    `gorm:"type:varchar(500)" json:"differentiator"`
	Selected                bool      `json:"selected"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (c *CapstoneProject) TableName() string {
	return "capstone_projects"
}
