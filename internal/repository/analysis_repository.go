package repository

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db}
}

func (r *AnalysisRepository) Create(a *model.JDAnalysis) error {
	return r.db.Create(a).Error
}

func (r *AnalysisRepository) Update(a *model.JDAnalysis) error {
	return r.db.Save(a).Error
}

func (r *AnalysisRepository) FindByID(userID, id string) (*model.JDAnalysis, error) {
	var a model.JDAnalysis
	err := r.db.First(&a, "id = ? AND user_id = ?", id, userID).Error
	return &a, err
}

func (r *AnalysisRepository) List(userID string, limit, offset int) ([]model.JDAnalysis, int64, error) {
	var analyses []model.JDAnalysis
	var total int64

	q := r.db.Model(&model.JDAnalysis{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&analyses).Error
	return analyses, total, err
}

// Delete removes the analysis and everything generated from it.
func (r *AnalysisRepository) Delete(userID, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.JDAnalysis{}, "id = ? AND user_id = ?", id, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Delete(&model.CapstoneProject{}, "analysis_id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.FitnessScore{}, "analysis_id = ? AND user_id = ?", id, userID).Error
	})
}

// SimilarAnalysis is one nearest-neighbour hit with its distance.
type SimilarAnalysis struct {
	model.JDAnalysis
	Distance float64 `json:"distance"`
}

// FindSimilar returns the user's completed analyses nearest to the
// given embedding, excluding the record the embedding came from.
func (r *AnalysisRepository) FindSimilar(userID, excludeID string, embedding pgvector.Vector, topK int) ([]SimilarAnalysis, error) {
	var hits []SimilarAnalysis
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM jd_analyses
        WHERE user_id = ? AND id <> ? AND status = ? AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, userID, excludeID, model.StatusCompleted, embedding, topK).Scan(&hits).Error
	return hits, err
}
