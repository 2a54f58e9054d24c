package repository

import (
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type FitnessRepository struct {
	db *gorm.DB
}

func NewFitnessRepository(db *gorm.DB) *FitnessRepository {
	return &FitnessRepository{db}
}

func (r *FitnessRepository) Create(f *model.FitnessScore) error {
	return r.db.Create(f).Error
}

func (r *FitnessRepository) Update(f *model.FitnessScore) error {
	return r.db.Save(f).Error
}

func (r *FitnessRepository) FindByID(userID, id string) (*model.FitnessScore, error) {
	var f model.FitnessScore
	err := r.db.First(&f, "id = ? AND user_id = ?", id, userID).Error
	return &f, err
}

func (r *FitnessRepository) Delete(userID, id string) error {
	res := r.db.Delete(&model.FitnessScore{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FitnessRepository) ListByAnalysis(userID, analysisID string) ([]model.FitnessScore, error) {
	var scores []model.FitnessScore
	err := r.db.Where("user_id = ? AND analysis_id = ?", userID, analysisID).
		Order("created_at DESC").
		Find(&scores).Error
	return scores, err
}

func (r *FitnessRepository) List(userID string, limit, offset int) ([]model.FitnessScore, int64, error) {
	var scores []model.FitnessScore
	var total int64

	q := r.db.Model(&model.FitnessScore{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&scores).Error
	return scores, total, err
}
