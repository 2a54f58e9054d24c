package usecase

import (
	"context"
	"log"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/shortlist-hq/shortlist-api/internal/agent"
	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/repository"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

type AnalysisUsecase struct {
	analysisRepo *repository.AnalysisRepository
	gemini       service.GeminiServiceInterface
	metrics      *monitoring.Metrics
}

func NewAnalysisUsecase(analysisRepo *repository.AnalysisRepository, gemini service.GeminiServiceInterface, metrics *monitoring.Metrics) *AnalysisUsecase {
	return &AnalysisUsecase{analysisRepo: analysisRepo, gemini: gemini, metrics: metrics}
}

// Analyze runs the extraction pipeline over a submitted job description
// and persists the outcome, partial or complete. The record is returned
// in its final state together with the pipeline result for metadata.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, userID string, req dto.AnalyzeJDRequest) (*model.JDAnalysis, *pipeline.Result, error) {
	record := &model.JDAnalysis{
		UserID:           userID,
		JDText:           req.JDText,
		Role:             req.Role,
		CompanyType:      req.CompanyType,
		CompanyName:      req.CompanyName,
		Geography:        req.Geography,
		SkillProfile:     model.EmptyObject,
		CompanyModifiers: model.EmptyObject,
		Status:           model.StatusPending,
	}
	if err := uc.analysisRepo.Create(record); err != nil {
		return nil, nil, err
	}

	record.Status = model.StatusProcessing
	if err := uc.analysisRepo.Update(record); err != nil {
		return nil, nil, err
	}

	res := pipeline.Run(ctx, uc.gemini, []pipeline.Node{
		agent.JDNode(req.JDText, req.Role, req.CompanyType, req.Geography),
		agent.CompanyNode(req.CompanyType),
	}, nil)
	uc.metrics.RecordPipeline("jd_analysis", res)

	record.ProcessingTimeMs = res.TotalMs
	if profile, ok := res.State[agent.KeyProfile].(model.SkillProfile); ok {
		record.SkillProfile = model.AsJSON(profile)
	}
	if mods, ok := res.State[agent.KeyModifiers].(model.CompanyModifiers); ok {
		record.CompanyModifiers = model.AsJSON(mods)
	}

	if res.Failed {
		record.Status = model.StatusFailed
		record.ErrorMessage = res.ErrorMessage()
	} else {
		record.Status = model.StatusCompleted
	}
	if err := uc.analysisRepo.Update(record); err != nil {
		return nil, nil, err
	}

	if record.Status == model.StatusCompleted {
		go uc.embedAnalysis(record.ID.String(), record.UserID, record.Profile().Summary, req.JDText)
	}
	return record, res, nil
}

// embedAnalysis computes the JD embedding in the background; similarity
// search simply skips records whose embedding never landed.
func (uc *AnalysisUsecase) embedAnalysis(id, userID, summary, jdText string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text := summary
	if text == "" {
		text = jdText
	}
	text = llmjson.Truncate(text, 8000)

	vec, err := uc.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		log.Printf("embedding for analysis %s failed: %v", id, err)
		return
	}

	record, err := uc.analysisRepo.FindByID(userID, id)
	if err != nil {
		return
	}
	embedding := pgvector.NewVector(vec)
	record.Embedding = &embedding
	if err := uc.analysisRepo.Update(record); err != nil {
		log.Printf("storing embedding for analysis %s failed: %v", id, err)
	}
}

// Get loads one analysis. Legacy rows whose profile landed inside the
// summary field are repaired transparently and re-persisted.
func (uc *AnalysisUsecase) Get(userID, id string) (*model.JDAnalysis, error) {
	record, err := uc.analysisRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	profile := record.Profile()
	if repaired, changed := agent.ResolveEmbedded(profile); changed {
		record.SkillProfile = model.AsJSON(repaired)
		if err := uc.analysisRepo.Update(record); err != nil {
			log.Printf("persisting repaired profile for analysis %s failed: %v", id, err)
		}
	}
	return record, nil
}

func (uc *AnalysisUsecase) List(userID string, limit, offset int) ([]model.JDAnalysis, int64, error) {
	return uc.analysisRepo.List(userID, limit, offset)
}

func (uc *AnalysisUsecase) Delete(userID, id string) error {
	return uc.analysisRepo.Delete(userID, id)
}

// Similar returns completed analyses nearest to the given one by JD
// embedding distance.
func (uc *AnalysisUsecase) Similar(userID, id string, topK int) ([]dto.SimilarAnalysisItem, error) {
	record, err := uc.analysisRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if record.Embedding == nil || len(record.Embedding.Slice()) == 0 {
		return []dto.SimilarAnalysisItem{}, nil
	}
	if topK < 1 || topK > 20 {
		topK = 5
	}

	hits, err := uc.analysisRepo.FindSimilar(userID, id, *record.Embedding, topK)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SimilarAnalysisItem, 0, len(hits))
	for _, h := range hits {
		items = append(items, dto.SimilarAnalysisItem{
			ID:          h.ID,
			Role:        h.Role,
			CompanyType: h.CompanyType,
			Distance:    h.Distance,
			CreatedAt:   h.CreatedAt,
		})
	}
	return items, nil
}
