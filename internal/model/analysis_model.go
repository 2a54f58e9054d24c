package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Record lifecycle statuses shared by every generated artifact.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Company archetypes accepted on analysis submission.
const (
	CompanyStartup    = "startup"
	CompanyMidLevel   = "mid_level"
	CompanyFaang      = "faang"
	CompanyResearch   = "research"
	CompanyEnterprise = "enterprise"
)

// Experience levels the extractor may assign.
var ExperienceLevels = []string{"intern", "junior", "mid", "senior", "staff", "principal"}

// Skill is a single skill extracted from a job description.
type Skill struct {
	Name     string  `json:"name"`
	Category string  `json:"category"` // language, framework, concept, tool, soft_skill
	Weight   float64 `json:"weight"`   // 0-10
	Source   string  `json:"source"`   // required, preferred, inferred
}

// EngineeringExpectation describes what the role demands on one dimension.
type EngineeringExpectation struct {
	Dimension   string  `json:"dimension"`
	Importance  float64 `json:"importance"` // 0-10
	Description string  `json:"description"`
}

// SkillProfile is the structured output of JD extraction. An empty skills
// list is a degraded result, not an error.
type SkillProfile struct {
	Skills                  []Skill                  `json:"skills"`
	ExperienceLevel         string                   `json:"experience_level"`
	Domain                  string                   `json:"domain"`
	EngineeringExpectations []EngineeringExpectation `json:"engineering_expectations"`
	KeyResponsibilities     []string                 `json:"key_responsibilities"`
	Summary                 string                   `json:"summary"`
}

// CompanyModifiers capture how a company archetype shifts skill emphasis.
type CompanyModifiers struct {
	CompanyType       string             `json:"company_type"`
	EmphasisAreas     []string           `json:"emphasis_areas"`
	WeightAdjustments map[string]float64 `json:"weight_adjustments"`
	PortfolioFocus    string             `json:"portfolio_focus"`
}

// JDAnalysis is one submitted job description with its extraction results.
// Immutable once completed, except for deletion. Re-running an analysis
// always creates a new row.
type JDAnalysis struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           string           `gorm:"type:varchar(64);index" json:"user_id"`
	JDText           string           `gorm:"type:text" json:"jd_text"`
	Role             string           `gorm:"type:varchar(200)" json:"role"`
	CompanyType      string           `gorm:"type:varchar(50)" json:"company_type"`
	CompanyName      string           `gorm:"type:varchar(200)" json:"company_name"`
	Geography        string           `gorm:"type:varchar(100)" json:"geography"`
	SkillProfile     string           `gorm:"type:jsonb;default:'{}'" json:"skill_profile"`
	CompanyModifiers string           `gorm:"type:jsonb;default:'{}'" json:"company_modifiers"`
	Status           string           `gorm:"type:varchar(50)" json:"status"`
	ErrorMessage     string           `gorm:"type:text" json:"error_message"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
	Embedding        *pgvector.Vector `gorm:"type:vector(768)" json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (a *JDAnalysis) TableName() string {
	return "jd_analyses"
}

// Profile decodes the stored skill profile; a broken or empty column
// yields a zero profile rather than an error.
func (a *JDAnalysis) Profile() SkillProfile {
	var p SkillProfile
	_ = json.Unmarshal([]byte(a.SkillProfile), &p)
	return p
}

// Modifiers decodes the stored company modifiers.
func (a *JDAnalysis) Modifiers() CompanyModifiers {
	var m CompanyModifiers
	_ = json.Unmarshal([]byte(a.CompanyModifiers), &m)
	return m
}

// Placeholder literals for jsonb columns. Postgres rejects ''::jsonb, so
// every jsonb field must hold one of these until real payload arrives.
const (
	EmptyObject = "{}"
	EmptyArray  = "[]"
)

// AsJSON marshals v for a jsonb column. Marshal errors cannot happen for
// the payload types in this package, so failures collapse to "{}".
func AsJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return EmptyObject
	}
	return string(b)
}
