package repository

import (
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db}
}

func (r *PortfolioRepository) Create(p *model.Portfolio) error {
	return r.db.Create(p).Error
}

func (r *PortfolioRepository) Update(p *model.Portfolio) error {
	return r.db.Save(p).Error
}

func (r *PortfolioRepository) FindByID(userID, id string) (*model.Portfolio, error) {
	var p model.Portfolio
	err := r.db.First(&p, "id = ? AND user_id = ?", id, userID).Error
	return &p, err
}

func (r *PortfolioRepository) List(userID string, limit, offset int) ([]model.Portfolio, int64, error) {
	var portfolios []model.Portfolio
	var total int64

	q := r.db.Model(&model.Portfolio{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&portfolios).Error
	return portfolios, total, err
}
