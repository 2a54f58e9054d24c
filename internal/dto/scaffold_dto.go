package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type ScaffoldRequest struct {
	CapstoneID    string   `json:"capstone_id" validate:"omitempty,uuid4"`
	Title         string   `json:"title" validate:"required_without=CapstoneID,omitempty,min=2,max=200"`
	Description   string   `json:"description" validate:"omitempty,max=5000"`
	TechStack     []string `json:"tech_stack" validate:"omitempty,max=20,dive,min=1,max=50"`
	IncludeDocker bool     `json:"include_docker"`
	IncludeCI     bool     `json:"include_ci"`
	IncludeTests  bool     `json:"include_tests"`
}

type ScaffoldResponse struct {
	ID           uuid.UUID             `json:"id"`
	AnalysisID   uuid.UUID             `json:"analysis_id,omitempty"`
	ProjectName  string                `json:"project_name"`
	Files        []model.GeneratedFile `json:"files,omitempty"`
	FileTree     string                `json:"file_tree,omitempty"`
	FileCount    int                   `json:"file_count"`
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Metadata     GenerationMetadata    `json:"generation_metadata"`
	CreatedAt    time.Time             `json:"created_at"`
}

type ScaffoldListItem struct {
	ID          uuid.UUID `json:"id"`
	ProjectName string    `json:"project_name"`
	FileCount   int       `json:"file_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewScaffoldResponse(s *model.Scaffold, includeFiles bool) ScaffoldResponse {
	files := s.FileList()
	resp := ScaffoldResponse{
		ID:           s.ID,
		AnalysisID:   s.AnalysisID,
		ProjectName:  s.ProjectName,
		FileTree:     s.FileTree,
		FileCount:    len(files),
		Status:       s.Status,
		ErrorMessage: s.ErrorMessage,
		Metadata:     GenerationMetadata{ProcessingTimeMs: s.ProcessingTimeMs},
		CreatedAt:    s.CreatedAt,
	}
	if includeFiles {
		resp.Files = files
	}
	return resp
}

func NewScaffoldListItem(s *model.Scaffold) ScaffoldListItem {
	return ScaffoldListItem{
		ID:          s.ID,
		ProjectName: s.ProjectName,
		FileCount:   len(s.FileList()),
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	}
}
