package usecase

import (
	"context"
	"fmt"

	"github.com/shortlist-hq/shortlist-api/internal/agent"
	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/repository"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

type FitnessUsecase struct {
	fitnessRepo  *repository.FitnessRepository
	analysisRepo *repository.AnalysisRepository
	gemini       service.GeminiServiceInterface
	metrics      *monitoring.Metrics
}

func NewFitnessUsecase(fitnessRepo *repository.FitnessRepository, analysisRepo *repository.AnalysisRepository, gemini service.GeminiServiceInterface, metrics *monitoring.Metrics) *FitnessUsecase {
	return &FitnessUsecase{fitnessRepo: fitnessRepo, analysisRepo: analysisRepo, gemini: gemini, metrics: metrics}
}

// Evaluate scores resume text against a completed analysis. PDF uploads
// are converted to text by the handler before reaching this path.
func (uc *FitnessUsecase) Evaluate(ctx context.Context, userID string, req dto.FitnessRequest) (*model.FitnessScore, *pipeline.Result, error) {
	analysis, err := uc.analysisRepo.FindByID(userID, req.AnalysisID)
	if err != nil {
		return nil, nil, err
	}
	if analysis.Status != model.StatusCompleted {
		return nil, nil, fmt.Errorf("analysis %s is %s, only completed analyses can be scored against", analysis.ID, analysis.Status)
	}

	profile := analysis.Profile()
	if repaired, changed := agent.ResolveEmbedded(profile); changed {
		profile = repaired
	}

	record := &model.FitnessScore{
		UserID:        userID,
		AnalysisID:    analysis.ID,
		ResumeText:    req.ResumeText,
		MatchedSkills: model.EmptyArray,
		MissingSkills: model.EmptyArray,
		Strengths:     model.EmptyArray,
		Improvements:  model.EmptyArray,
		Status:        model.StatusPending,
	}
	if err := uc.fitnessRepo.Create(record); err != nil {
		return nil, nil, err
	}

	record.Status = model.StatusProcessing
	if err := uc.fitnessRepo.Update(record); err != nil {
		return nil, nil, err
	}

	res := pipeline.Run(ctx, uc.gemini, []pipeline.Node{
		agent.FitnessNode(analysis.Role, analysis.CompanyType, profile, req.ResumeText),
	}, nil)
	uc.metrics.RecordPipeline("fitness_scoring", res)

	record.ProcessingTimeMs = res.TotalMs
	if res.Failed {
		record.Status = model.StatusFailed
		record.ErrorMessage = res.ErrorMessage()
	} else {
		ev, _ := res.State[agent.KeyFitness].(model.FitnessEvaluation)
		record.Score = ev.FitnessScore
		record.Verdict = ev.Verdict
		record.MatchedSkills = model.AsJSON(ev.MatchedSkills)
		record.MissingSkills = model.AsJSON(ev.MissingSkills)
		record.Strengths = model.AsJSON(ev.Strengths)
		record.Improvements = model.AsJSON(ev.Improvements)
		record.DetailedFeedback = ev.DetailedFeedback
		record.Status = model.StatusCompleted
	}
	if err := uc.fitnessRepo.Update(record); err != nil {
		return nil, nil, err
	}
	return record, res, nil
}

func (uc *FitnessUsecase) Get(userID, id string) (*model.FitnessScore, error) {
	return uc.fitnessRepo.FindByID(userID, id)
}

func (uc *FitnessUsecase) ListByAnalysis(userID, analysisID string) ([]model.FitnessScore, error) {
	return uc.fitnessRepo.ListByAnalysis(userID, analysisID)
}

func (uc *FitnessUsecase) List(userID string, limit, offset int) ([]model.FitnessScore, int64, error) {
	return uc.fitnessRepo.List(userID, limit, offset)
}

func (uc *FitnessUsecase) Delete(userID, id string) error {
	return uc.fitnessRepo.Delete(userID, id)
}
