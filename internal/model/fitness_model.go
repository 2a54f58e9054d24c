package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MatchedSkill is a JD skill the candidate demonstrably has.
type MatchedSkill struct {
	Name     string `json:"name"`
	Evidence string `json:"evidence"`
}

// MissingSkill is a JD skill absent from the resume.
type MissingSkill struct {
	Name       string `json:"name"`
	Importance string `json:"importance"` // critical, important, nice_to_have
	Suggestion string `json:"suggestion"`
}

// Improvement is one actionable resume recommendation.
type Improvement struct {
	Area              string `json:"area"`
	CurrentState      string `json:"current_state"`
	RecommendedAction string `json:"recommended_action"`
	Impact            string `json:"impact"` // high, medium, low
}

// FitnessEvaluation is the structured fitness result before persistence.
type FitnessEvaluation struct {
	FitnessScore     float64        `json:"fitness_score"` // 0-100
	Verdict          string         `json:"verdict"`
	MatchedSkills    []MatchedSkill `json:"matched_skills"`
	MissingSkills    []MissingSkill `json:"missing_skills"`
	Strengths        []string       `json:"strengths"`
	Improvements     []Improvement  `json:"improvements"`
	DetailedFeedback string         `json:"detailed_feedback"`
}

// FitnessScore is a persisted resume-vs-analysis evaluation. The stored
// verdict always matches the score band.
type FitnessScore struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(64);index" json:"user_id"`
	AnalysisID       uuid.UUID `gorm:"type:uuid;index" json:"analysis_id"`
	ResumeText       string    `gorm:"type:text" json:"resume_text"`
	Score            float64   `gorm:"column:fitness_score" json:"fitness_score"`
	Verdict          string    `gorm:"type:varchar(50)" json:"verdict"`
	MatchedSkills    string    `gorm:"type:jsonb;default:'[]'" json:"matched_skills"`
	MissingSkills    string    `gorm:"type:jsonb;default:'[]'" json:"missing_skills"`
	Strengths        string    `gorm:"type:jsonb;default:'[]'" json:"strengths"`
	Improvements     string    `gorm:"type:jsonb;default:'[]'" json:"improvements"`
	DetailedFeedback string    `gorm:"type:text" json:"detailed_feedback"`
	Status           string    `gorm:"type:varchar(50)" json:"status"`
	ErrorMessage     string    `gorm:"type:text" json:"error_message"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (f *FitnessScore) TableName() string {
	return "fitness_scores"
}

// Evaluation decodes the stored jsonb columns back into one struct.
func (f *FitnessScore) Evaluation() FitnessEvaluation {
	ev := FitnessEvaluation{
		FitnessScore:     f.Score,
		Verdict:          f.Verdict,
		DetailedFeedback: f.DetailedFeedback,
	}
	_ = json.Unmarshal([]byte(f.MatchedSkills), &ev.MatchedSkills)
	_ = json.Unmarshal([]byte(f.MissingSkills), &ev.MissingSkills)
	_ = json.Unmarshal([]byte(f.Strengths), &ev.Strengths)
	_ = json.Unmarshal([]byte(f.Improvements), &ev.Improvements)
	return ev
}
