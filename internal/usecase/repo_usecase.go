package usecase

import (
	"context"

	"github.com/shortlist-hq/shortlist-api/internal/agent"
	"github.com/shortlist-hq/shortlist-api/internal/dto"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/repository"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

type RepoUsecase struct {
	repoAnalysisRepo *repository.RepoAnalysisRepository
	github           service.GitHubServiceInterface
	gemini           service.GeminiServiceInterface
	metrics          *monitoring.Metrics
}

func NewRepoUsecase(repoAnalysisRepo *repository.RepoAnalysisRepository, github service.GitHubServiceInterface, gemini service.GeminiServiceInterface, metrics *monitoring.Metrics) *RepoUsecase {
	return &RepoUsecase{repoAnalysisRepo: repoAnalysisRepo, github: github, gemini: gemini, metrics: metrics}
}

// Score fetches a repository digest from GitHub and runs the scorecard
// stage over it. A failed fetch fails the record before any LLM call.
func (uc *RepoUsecase) Score(ctx context.Context, userID string, req dto.ScoreRepoRequest) (*model.RepoAnalysis, *pipeline.Result, error) {
	record := &model.RepoAnalysis{
		UserID:    userID,
		RepoURL:   req.RepoURL,
		Scorecard: model.EmptyObject,
		Status:    model.StatusPending,
	}
	if err := uc.repoAnalysisRepo.Create(record); err != nil {
		return nil, nil, err
	}

	record.Status = model.StatusProcessing
	if err := uc.repoAnalysisRepo.Update(record); err != nil {
		return nil, nil, err
	}

	digest, err := uc.github.FetchRepoDigest(ctx, req.RepoURL)
	if err != nil {
		record.Status = model.StatusFailed
		record.ErrorMessage = err.Error()
		if uerr := uc.repoAnalysisRepo.Update(record); uerr != nil {
			return nil, nil, uerr
		}
		return record, nil, nil
	}

	res := pipeline.Run(ctx, uc.gemini, []pipeline.Node{
		agent.RepoScoreNode(digest),
	}, nil)
	uc.metrics.RecordPipeline("repo_scoring", res)

	record.RepoName = digest.FullName
	record.PrimaryLanguage = digest.PrimaryLanguage
	record.TotalFiles = digest.TotalFiles
	record.TotalLines = digest.EstimatedLOC
	record.ProcessingTimeMs = res.TotalMs

	if res.Failed {
		record.Status = model.StatusFailed
		record.ErrorMessage = res.ErrorMessage()
	} else {
		card, _ := res.State[agent.KeyScorecard].(model.RepoScoreCard)
		record.Scorecard = model.AsJSON(card)
		record.OverallScore = card.OverallScore
		record.Status = model.StatusCompleted
	}
	if err := uc.repoAnalysisRepo.Update(record); err != nil {
		return nil, nil, err
	}
	return record, res, nil
}

func (uc *RepoUsecase) Get(userID, id string) (*model.RepoAnalysis, error) {
	return uc.repoAnalysisRepo.FindByID(userID, id)
}

func (uc *RepoUsecase) List(userID string, limit, offset int) ([]model.RepoAnalysis, int64, error) {
	return uc.repoAnalysisRepo.List(userID, limit, offset)
}

func (uc *RepoUsecase) Delete(userID, id string) error {
	return uc.repoAnalysisRepo.Delete(userID, id)
}
