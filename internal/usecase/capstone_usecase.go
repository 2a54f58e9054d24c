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

type CapstoneUsecase struct {
	capstoneRepo *repository.CapstoneRepository
	analysisRepo *repository.AnalysisRepository
	gemini       service.GeminiServiceInterface
	metrics      *monitoring.Metrics
}

func NewCapstoneUsecase(capstoneRepo *repository.CapstoneRepository, analysisRepo *repository.AnalysisRepository, gemini service.GeminiServiceInterface, metrics *monitoring.Metrics) *CapstoneUsecase {
	return &CapstoneUsecase{capstoneRepo: capstoneRepo, analysisRepo: analysisRepo, gemini: gemini, metrics: metrics}
}

// Generate produces project ideas anchored to a completed analysis and
// persists one row per idea.
func (uc *CapstoneUsecase) Generate(ctx context.Context, userID string, req dto.GenerateCapstonesRequest) ([]model.CapstoneProject, *pipeline.Result, error) {
	analysis, err := uc.analysisRepo.FindByID(userID, req.AnalysisID)
	if err != nil {
		return nil, nil, err
	}
	if analysis.Status != model.StatusCompleted {
		return nil, nil, fmt.Errorf("analysis %s is %s, only completed analyses can seed projects", analysis.ID, analysis.Status)
	}

	profile := analysis.Profile()
	if repaired, changed := agent.ResolveEmbedded(profile); changed {
		profile = repaired
	}

	res := pipeline.Run(ctx, uc.gemini, []pipeline.Node{
		agent.CapstoneNode(analysis.Role, analysis.CompanyType, req.NumProjects, req.PreferredStack),
	}, pipeline.State{
		agent.KeyProfile:   profile,
		agent.KeyModifiers: analysis.Modifiers(),
	})
	uc.metrics.RecordPipeline("capstone_ideas", res)
	if res.Failed {
		return nil, res, res.Err
	}

	ideas, _ := res.State[agent.KeyIdeas].([]model.ProjectIdea)
	projects := make([]model.CapstoneProject, 0, len(ideas))
	for _, idea := range ideas {
		projects = append(projects, model.CapstoneProject{
			UserID:                  userID,
			AnalysisID:              analysis.ID,
			Title:                   idea.Title,
			ProblemStatement:        idea.ProblemStatement,
			RecruiterMatchReasoning: idea.RecruiterMatchReasoning,
			Architecture:            model.AsJSON(idea.Architecture),
			TechStack:               model.AsJSON(idea.TechStack),
			ComplexityLevel:         idea.ComplexityLevel,
			EstimatedDays:           idea.EstimatedDays,
			ResumeBullet:            idea.ResumeBullet,
			KeyFeatures:             model.AsJSON(idea.KeyFeatures),
			Differentiator:          idea.Differentiator,
		})
	}
	if err := uc.capstoneRepo.CreateBatch(projects); err != nil {
		return nil, res, err
	}
	return projects, res, nil
}

func (uc *CapstoneUsecase) Get(userID, id string) (*model.CapstoneProject, error) {
	return uc.capstoneRepo.FindByID(userID, id)
}

func (uc *CapstoneUsecase) ListByAnalysis(userID, analysisID string) ([]model.CapstoneProject, error) {
	return uc.capstoneRepo.ListByAnalysis(userID, analysisID)
}

func (uc *CapstoneUsecase) List(userID string, limit, offset int) ([]model.CapstoneProject, int64, error) {
	return uc.capstoneRepo.List(userID, limit, offset)
}

func (uc *CapstoneUsecase) Select(userID, id string) (*model.CapstoneProject, error) {
	return uc.capstoneRepo.MarkSelected(userID, id)
}
