package repository

import (
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type ScaffoldRepository struct {
	db *gorm.DB
}

func NewScaffoldRepository(db *gorm.DB) *ScaffoldRepository {
	return &ScaffoldRepository{db}
}

func (r *ScaffoldRepository) Create(s *model.Scaffold) error {
	return r.db.Create(s).Error
}

func (r *ScaffoldRepository) Update(s *model.Scaffold) error {
	return r.db.Save(s).Error
}

func (r *ScaffoldRepository) FindByID(userID, id string) (*model.Scaffold, error) {
	var s model.Scaffold
	err := r.db.First(&s, "id = ? AND user_id = ?", id, userID).Error
	return &s, err
}

func (r *ScaffoldRepository) List(userID string, limit, offset int) ([]model.Scaffold, int64, error) {
	var scaffolds []model.Scaffold
	var total int64

	q := r.db.Model(&model.Scaffold{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&scaffolds).Error
	return scaffolds, total, err
}
