package repository

import (
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type RepoAnalysisRepository struct {
	db *gorm.DB
}

func NewRepoAnalysisRepository(db *gorm.DB) *RepoAnalysisRepository {
	return &RepoAnalysisRepository{db}
}

func (r *RepoAnalysisRepository) Create(a *model.RepoAnalysis) error {
	return r.db.Create(a).Error
}

func (r *RepoAnalysisRepository) Update(a *model.RepoAnalysis) error {
	return r.db.Save(a).Error
}

func (r *RepoAnalysisRepository) FindByID(userID, id string) (*model.RepoAnalysis, error) {
	var a model.RepoAnalysis
	err := r.db.First(&a, "id = ? AND user_id = ?", id, userID).Error
	return &a, err
}

func (r *RepoAnalysisRepository) Delete(userID, id string) error {
	res := r.db.Delete(&model.RepoAnalysis{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RepoAnalysisRepository) List(userID string, limit, offset int) ([]model.RepoAnalysis, int64, error) {
	var analyses []model.RepoAnalysis
	var total int64

	q := r.db.Model(&model.RepoAnalysis{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&analyses).Error
	return analyses, total, err
}
