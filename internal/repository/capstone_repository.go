package repository

import (
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type CapstoneRepository struct {
	db *gorm.DB
}

func NewCapstoneRepository(db *gorm.DB) *CapstoneRepository {
	return &CapstoneRepository{db}
}

func (r *CapstoneRepository) CreateBatch(projects []model.CapstoneProject) error {
	return r.db.Create(&projects).Error
}

func (r *CapstoneRepository) FindByID(userID, id string) (*model.CapstoneProject, error) {
	var p model.CapstoneProject
	err := r.db.First(&p, "id = ? AND user_id = ?", id, userID).Error
	return &p, err
}

func (r *CapstoneRepository) ListByAnalysis(userID, analysisID string) ([]model.CapstoneProject, error) {
	var projects []model.CapstoneProject
	err := r.db.Where("user_id = ? AND analysis_id = ?", userID, analysisID).
		Order("complexity_level ASC, created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *CapstoneRepository) List(userID string, limit, offset int) ([]model.CapstoneProject, int64, error) {
	var projects []model.CapstoneProject
	var total int64

	q := r.db.Model(&model.CapstoneProject{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

// MarkSelected flags one project as the user's pick and clears the flag
// on its siblings from the same analysis.
func (r *CapstoneRepository) MarkSelected(userID, id string) (*model.CapstoneProject, error) {
	var p model.CapstoneProject
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.CapstoneProject{}).
			Where("user_id = ? AND analysis_id = ?", userID, p.AnalysisID).
			Update("selected", false).Error; err != nil {
			return err
		}
		p.Selected = true
		return tx.Save(&p).Error
	})
	return &p, err
}
