package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GeneratedFile is a single file in a scaffolded repository. Paths are
// unique within one scaffold record.
type GeneratedFile struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

// Scaffold is a persisted generated repository skeleton.
type Scaffold struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           string    `gorm:"type:varchar(64);index" json:"user_id"`
	AnalysisID       uuid.UUID `gorm:"type:uuid" json:"analysis_id"`
	ProjectName      string    `gorm:"type:varchar(100)" json:"project_name"`
	Files            string    `gorm:"type:jsonb;default:'[]'" json:"files"`
	FileTree         string    `gorm:"type:text" json:"file_tree"`
	Status           string    `gorm:"type:varchar(50)" json:"status"`
	ErrorMessage     string    `gorm:"type:text" json:"error_message"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *Scaffold) TableName() string {
	return "scaffolds"
}

// FileList decodes the stored files array.
func (s *Scaffold) FileList() []GeneratedFile {
	var files []GeneratedFile
	_ = json.Unmarshal([]byte(s.Files), &files)
	return files
}
