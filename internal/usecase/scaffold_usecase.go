package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shortlist-hq/shortlist-api/internal/agent"
	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/repository"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

type ScaffoldUsecase struct {
	scaffoldRepo *repository.ScaffoldRepository
	capstoneRepo *repository.CapstoneRepository
	gemini       service.GeminiServiceInterface
	metrics      *monitoring.Metrics
}

func NewScaffoldUsecase(scaffoldRepo *repository.ScaffoldRepository, capstoneRepo *repository.CapstoneRepository, gemini service.GeminiServiceInterface, metrics *monitoring.Metrics) *ScaffoldUsecase {
	return &ScaffoldUsecase{scaffoldRepo: scaffoldRepo, capstoneRepo: capstoneRepo, gemini: gemini, metrics: metrics}
}

// Generate scaffolds a project skeleton, either from a stored capstone
// project or from an ad-hoc title and description.
func (uc *ScaffoldUsecase) Generate(ctx context.Context, userID string, req dto.ScaffoldRequest) (*model.Scaffold, *pipeline.Result, error) {
	title := req.Title
	description := req.Description
	techStack := req.TechStack
	capstoneContext := ""
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
			var stack []string
			if err := unmarshalColumn(capstone.TechStack, &stack); err == nil {
				techStack = stack
			}
		}
		capstoneContext = capstoneScaffoldContext(capstone)
	}
	if title == "" {
		return nil, nil, fmt.Errorf("either capstone_id or title must be provided")
	}

	record := &model.Scaffold{
		UserID:     userID,
		AnalysisID: analysisID,
		Files:      model.EmptyArray,
		Status:     model.StatusPending,
	}
	if err := uc.scaffoldRepo.Create(record); err != nil {
		return nil, nil, err
	}

	record.Status = model.StatusProcessing
	if err := uc.scaffoldRepo.Update(record); err != nil {
		return nil, nil, err
	}

	res := pipeline.Run(ctx, uc.gemini, []pipeline.Node{
		agent.ScaffoldNode(title, description, techStack, req.IncludeDocker, req.IncludeCI, req.IncludeTests, capstoneContext),
	}, nil)
	uc.metrics.RecordPipeline("scaffold", res)

	record.ProcessingTimeMs = res.TotalMs
	if res.Failed {
		record.Status = model.StatusFailed
		record.ErrorMessage = res.ErrorMessage()
	} else {
		result, _ := res.State[agent.KeyScaffold].(*agent.ScaffoldResult)
		record.ProjectName = result.ProjectName
		record.Files = model.AsJSON(result.Files)
		record.FileTree = result.FileTree
		record.Status = model.StatusCompleted
	}
	if err := uc.scaffoldRepo.Update(record); err != nil {
		return nil, nil, err
	}
	return record, res, nil
}

func (uc *ScaffoldUsecase) Get(userID, id string) (*model.Scaffold, error) {
	return uc.scaffoldRepo.FindByID(userID, id)
}

func (uc *ScaffoldUsecase) List(userID string, limit, offset int) ([]model.Scaffold, int64, error) {
	return uc.scaffoldRepo.List(userID, limit, offset)
}

func capstoneScaffoldContext(c *model.CapstoneProject) string {
	var sb strings.Builder
	var arch model.Architecture
	if err := unmarshalColumn(c.Architecture, &arch); err == nil && arch.Description != "" {
		sb.WriteString("Architecture: " + arch.Description + "\n")
		if len(arch.Components) > 0 {
			sb.WriteString("Components: " + strings.Join(arch.Components, ", ") + "\n")
		}
	}
	var features []string
	if err := unmarshalColumn(c.KeyFeatures, &features); err == nil && len(features) > 0 {
		sb.WriteString("Key features: " + strings.Join(features, ", ") + "\n")
	}
	return sb.String()
}
