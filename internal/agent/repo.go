package agent

import (
	"github.com/tidwall/gjson"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
	"github.com/shortlist-hq/shortlist-api/internal/score"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

// RepoScoreNode turns a repository digest into a five-dimension
// scorecard. Not required: when the model keeps returning garbage the
// node degrades to neutral 5.0 scores so the caller still gets a card.
func RepoScoreNode(digest *service.RepoDigest) pipeline.Node {
	return pipeline.Node{
		Name:        "repo_scoring",
		Temperature: 0.3,
		MaxTokens:   8192,
		BuildPrompt: func(pipeline.State) (string, error) {
			return buildRepoPrompt(digest), nil
		},
		Parse: func(raw string) (pipeline.Delta, error) {
			card, err := parseScoreCard(raw, digest)
			if err != nil {
				return nil, err
			}
			return pipeline.Delta{KeyScorecard: card}, nil
		},
		Degraded: func(pipeline.State, string) pipeline.Delta {
			return pipeline.Delta{KeyScorecard: neutralScoreCard(digest)}
		},
	}
}

var scoreDimensions = []struct {
	path  string
	label string
}{
	{"code_quality", "Code Quality"},
	{"test_coverage", "Test Coverage"},
	{"complexity", "Complexity"},
	{"structure", "Structure"},
	{"deployment_readiness", "Deployment Readiness"},
}

func parseScoreCard(raw string, digest *service.RepoDigest) (model.RepoScoreCard, error) {
	var card model.RepoScoreCard
	payload, err := llmjson.Extract(raw)
	if err != nil {
		return card, err
	}
	for _, d := range scoreDimensions {
		if !gjson.Get(payload, d.path).Exists() {
			return card, llmjson.Failf(d.path, "required dimension is missing")
		}
	}

	card = model.RepoScoreCard{
		RepoURL:             "https://github.com/" + digest.FullName,
		RepoName:            digest.FullName,
		PrimaryLanguage:     digest.PrimaryLanguage,
		TotalFiles:          digest.TotalFiles,
		TotalLines:          digest.EstimatedLOC,
		CodeQuality:         parseDimension(payload, "code_quality", "Code Quality"),
		TestCoverage:        parseDimension(payload, "test_coverage", "Test Coverage"),
		Complexity:          parseDimension(payload, "complexity", "Complexity"),
		Structure:           parseDimension(payload, "structure", "Structure"),
		DeploymentReadiness: parseDimension(payload, "deployment_readiness", "Deployment Readiness"),
		Summary:             llmjson.Text(payload, "summary", 2000),
		TopImprovements:     llmjson.StringList(payload, "top_improvements", 10),
	}
	card.OverallScore = score.Aggregate(
		card.CodeQuality.Score,
		card.TestCoverage.Score,
		card.Complexity.Score,
		card.Structure.Score,
		card.DeploymentReadiness.Score,
	)
	return card, nil
}

func parseDimension(payload, path, label string) model.ScoreDimension {
	return model.ScoreDimension{
		Name:        label,
		Score:       llmjson.Number(payload, path+".score", 5, 0, 10),
		Details:     llmjson.Text(payload, path+".details", 2000),
		Suggestions: llmjson.StringList(payload, path+".suggestions", 10),
	}
}

func neutralScoreCard(digest *service.RepoDigest) model.RepoScoreCard {
	neutral := func(label string) model.ScoreDimension {
		return model.ScoreDimension{
			Name:    label,
			Score:   5.0,
			Details: "Automated scoring unavailable for this dimension.",
		}
	}
	card := model.RepoScoreCard{
		RepoURL:             "https://github.com/" + digest.FullName,
		RepoName:            digest.FullName,
		PrimaryLanguage:     digest.PrimaryLanguage,
		TotalFiles:          digest.TotalFiles,
		TotalLines:          digest.EstimatedLOC,
		CodeQuality:         neutral("Code Quality"),
		TestCoverage:        neutral("Test Coverage"),
		Complexity:          neutral("Complexity"),
		Structure:           neutral("Structure"),
		DeploymentReadiness: neutral("Deployment Readiness"),
		Summary:             "Automated analysis could not produce a detailed scorecard for this repository.",
	}
	card.OverallScore = score.Aggregate(5, 5, 5, 5, 5)
	return card
}
