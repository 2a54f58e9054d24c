package agent

import (
	"github.com/tidwall/gjson"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

const maxReadmeChars = 20000

// PortfolioNode generates README, resume bullets, demo script, and
// LinkedIn post for a finished project.
func PortfolioNode(title, description string, techStack, keyFeatures []string, repoScore float64, targetRole string) pipeline.Node {
	return pipeline.Node{
		Name:        "portfolio_kit",
		Required:    true,
		Temperature: 0.7,
		MaxTokens:   8192,
		BuildPrompt: func(pipeline.State) (string, error) {
			return buildPortfolioPrompt(title, description, techStack, keyFeatures, repoScore, targetRole), nil
		},
		Parse: func(raw string) (pipeline.Delta, error) {
			kit, err := parsePortfolioKit(raw)
			if err != nil {
				return nil, err
			}
			return pipeline.Delta{KeyKit: kit}, nil
		},
	}
}

func parsePortfolioKit(raw string) (model.PortfolioKit, error) {
	var kit model.PortfolioKit
	payload, err := llmjson.Extract(raw)
	if err != nil {
		return kit, err
	}
	readme, err := llmjson.RequireString(payload, "readme_markdown")
	if err != nil {
		return kit, err
	}
	kit.ReadmeMarkdown = llmjson.Truncate(readme, maxReadmeChars)

	bullets, err := llmjson.RequireArray(payload, "resume_bullets")
	if err != nil {
		return kit, err
	}
	for _, b := range bullets.Array() {
		text := llmjson.Text(b.Raw, "bullet", 300)
		if text == "" {
			continue
		}
		kit.ResumeBullets = append(kit.ResumeBullets, model.ResumeBullet{
			Bullet:     text,
			Keywords:   llmjson.StringList(b.Raw, "keywords", 10),
			ImpactType: llmjson.Enum(b.Raw, "impact_type", model.ImpactTechnical, model.ImpactQuantitative, model.ImpactQualitative, model.ImpactTechnical),
		})
		if len(kit.ResumeBullets) == 5 {
			break
		}
	}
	if len(kit.ResumeBullets) == 0 {
		return kit, llmjson.Failf("resume_bullets", "no bullet carried text")
	}

	script := gjsonGet(payload, "demo_script")
	kit.DemoScript = model.DemoScript{
		TotalDurationSeconds: int(llmjson.Number(script, "total_duration_seconds", 120, 30, 600)),
		OpeningHook:          llmjson.Text(script, "opening_hook", 500),
		ClosingCTA:           llmjson.Text(script, "closing_cta", 500),
	}
	forEachObject(script, "steps", 15, func(raw string) {
		kit.DemoScript.Steps = append(kit.DemoScript.Steps, model.DemoStep{
			Timestamp: llmjson.Text(raw, "timestamp", 20),
			Action:    llmjson.Text(raw, "action", 500),
			Narration: llmjson.Text(raw, "narration", 1000),
		})
	})

	post := gjsonGet(payload, "linkedin_post")
	kit.LinkedInPost = model.LinkedInPost{
		Hook:         llmjson.Text(post, "hook", 300),
		Body:         llmjson.Text(post, "body", 3000),
		Hashtags:     llmjson.StringList(post, "hashtags", 10),
		CallToAction: llmjson.Text(post, "call_to_action", 300),
	}
	return kit, nil
}

// gjsonGet returns the raw JSON of a nested object, or "{}" when absent
// so downstream field reads fall back to defaults.
func gjsonGet(payload, path string) string {
	v := gjson.Get(payload, path)
	if !v.Exists() {
		return "{}"
	}
	return v.Raw
}

func forEachObject(payload, path string, max int, fn func(raw string)) {
	count := 0
	gjson.Get(payload, path).ForEach(func(_, v gjson.Result) bool {
		fn(v.Raw)
		count++
		return count < max
	})
}
