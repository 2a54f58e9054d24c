package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/agent"
	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/repository"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

type PortfolioUsecase struct {
	portfolioRepo *repository.PortfolioRepository
	capstoneRepo  *repository.CapstoneRepository
	gemini        service.GeminiServiceInterface
	metrics       *monitoring.Metrics
}

func NewPortfolioUsecase(portfolioRepo *repository.PortfolioRepository, capstoneRepo *repository.CapstoneRepository, gemini service.GeminiServiceInterface, metrics *monitoring.Metrics) *PortfolioUsecase {
	return &PortfolioUsecase{portfolioRepo: portfolioRepo, capstoneRepo: capstoneRepo, gemini: gemini, metrics: metrics}
}

// Generate builds the portfolio kit for a project, sourced from a stored
// capstone or described ad hoc.
func (uc *PortfolioUsecase) Generate(ctx context.Context, userID string, req dto.PortfolioRequest) (*model.Portfolio, *pipeline.Result, error) {
	title := req.Title
	description := req.Description
	techStack := req.TechStack
	keyFeatures := req.KeyFeatures
	var analysisID uuid.UUID

	if req.CapstoneID != "" {
		capstone, err := uc.capstoneRepo.FindByID(userID, req.CapstoneID)
		if err != nil {
			return nil, nil, err
		}
		analysisID = capstone.AnalysisID
		if title == "" {
			title = capstone.Title
		}
		if description == "" {
			description = capstone.ProblemStatement
		}
		if len(techStack) == 0 {
			_ = unmarshalColumn(capstone.TechStack, &techStack)
		}
		if len(keyFeatures) == 0 {
			_ = unmarshalColumn(capstone.KeyFeatures, &keyFeatures)
		}
	}
	if title == "" {
		return nil, nil, fmt.Errorf("either capstone_id or title must be provided")
	}

	record := &model.Portfolio{
		UserID:        userID,
		AnalysisID:    analysisID,
		ProjectTitle:  title,
		TechStack:     model.AsJSON(techStack),
		ResumeBullets: model.EmptyArray,
		DemoScript:    model.EmptyObject,
		LinkedInPost:  model.EmptyObject,
		Status:        model.StatusPending,
	}
	if err := uc.portfolioRepo.Create(record); err != nil {
		return nil, nil, err
	}

	record.Status = model.StatusProcessing
	if err := uc.portfolioRepo.Update(record); err != nil {
		return nil, nil, err
	}

	res := pipeline.Run(ctx, uc.gemini, []pipeline.Node{
		agent.PortfolioNode(title, description, techStack, keyFeatures, req.RepoScore, req.TargetRole),
	}, nil)
	uc.metrics.RecordPipeline("portfolio_kit", res)

	record.ProcessingTimeMs = res.TotalMs
	if res.Failed {
		record.Status = model.StatusFailed
		record.ErrorMessage = res.ErrorMessage()
	} else {
		kit, _ := res.State[agent.KeyKit].(model.PortfolioKit)
		record.ReadmeMarkdown = kit.ReadmeMarkdown
		record.ResumeBullets = model.AsJSON(kit.ResumeBullets)
		record.DemoScript = model.AsJSON(kit.DemoScript)
		record.LinkedInPost = model.AsJSON(kit.LinkedInPost)
		record.Status = model.StatusCompleted
	}
	if err := uc.portfolioRepo.Update(record); err != nil {
		return nil, nil, err
	}
	return record, res, nil
}

func (uc *PortfolioUsecase) Get(userID, id string) (*model.Portfolio, error) {
	return uc.portfolioRepo.FindByID(userID, id)
}

func (uc *PortfolioUsecase) List(userID string, limit, offset int) ([]model.Portfolio, int64, error) {
	return uc.portfolioRepo.List(userID, limit, offset)
}
