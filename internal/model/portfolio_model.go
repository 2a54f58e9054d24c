package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Resume bullet impact types.
const (
	ImpactQuantitative = "quantitative"
	ImpactQualitative  = "qualitative"
	ImpactTechnical    = "technical"
)

// ResumeBullet is one ATS-optimized resume line.
type ResumeBullet struct {
	Bullet     string   `json:"bullet"`
	Keywords   []string `json:"keywords"`
	ImpactType string   `json:"impact_type"`
}

// DemoStep is one narrated step of a demo recording script.
type DemoStep struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Narration string `json:"narration"`
}

// DemoScript is the full demo narration.
type DemoScript struct {
	TotalDurationSeconds int        `json:"total_duration_seconds"`
	OpeningHook          string     `json:"opening_hook"`
	Steps                []DemoStep `json:"steps"`
	ClosingCTA           string     `json:"closing_cta"`
}

// LinkedInPost is the generated announcement post.
type LinkedInPost struct {
	Hook         string   `json:"hook"`
	Body         string   `json:"body"`
	Hashtags     []string `json:"hashtags"`
	CallToAction string   `json:"call_to_action"`
}

// PortfolioKit bundles every generated portfolio artifact.
type PortfolioKit struct {
	ReadmeMarkdown string         `json:"readme_markdown"`
	ResumeBullets  []ResumeBullet `json:"resume_bullets"`
	DemoScript     DemoScript     `json:"demo_script"`
	LinkedInPost   LinkedInPost   `json:"linkedin_post"`
}

// Portfolio is a persisted portfolio optimization run.
type Portfolio struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(64);index" json:"user_id"`
	AnalysisID       uuid.UUID `gorm:"type:uuid" json:"analysis_id"`
	ProjectTitle     string    `gorm:"type:varchar(200)" json:"project_title"`
	TechStack        string    `gorm:"type:jsonb;default:'[]'" json:"tech_stack"`
	ReadmeMarkdown   string    `gorm:"type:text" json:"readme_markdown"`
	ResumeBullets    string    `gorm:"type:jsonb;default:'[]'" json:"resume_bullets"`
	DemoScript       string    `gorm:"type:jsonb;default:'{}'" json:"demo_script"`
	LinkedInPost     string    `gorm:"type:jsonb;default:'{}'" json:"linkedin_post"`
	Status           string    `gorm:"type:varchar(50)" json:"status"`
	ErrorMessage     string    `gorm:"type:text" json:"error_message"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *Portfolio) TableName() string {
	return "portfolios"
}

// Kit decodes the stored portfolio artifacts into one bundle.
func (p *Portfolio) Kit() PortfolioKit {
	kit := PortfolioKit{ReadmeMarkdown: p.ReadmeMarkdown}
	_ = json.Unmarshal([]byte(p.ResumeBullets), &kit.ResumeBullets)
	_ = json.Unmarshal([]byte(p.DemoScript), &kit.DemoScript)
	_ = json.Unmarshal([]byte(p.LinkedInPost), &kit.LinkedInPost)
	return kit
}
