package agent

import (
	"fmt"
	"strings"

	"github.com/shortlist-hq/shortlist-api/internal/llmjson"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/service"
)

const jdSystemPrompt = `You are an expert technical recruiter and engineering manager with 15+ years of experience hiring across startups, FAANG, enterprise, and research labs.

Your task: Analyze a job description and produce a STRUCTURED skill profile in JSON format.

You MUST return ONLY valid JSON (no markdown, no code fences, no explanation before or after) matching this exact schema:
{
  "skills": [
    {"name": "Skill Name", "category": "language|framework|concept|tool|soft_skill", "weight": 0.0-10.0, "source": "required|preferred|inferred"}
  ],
  "experience_level": "intern|junior|mid|senior|staff|principal",
  "domain": "Backend|Frontend|Full-Stack|ML|DevOps|Data|Mobile|Security",
  "engineering_expectations": [
    {"dimension": "Dimension Name", "importance": 0.0-10.0, "description": "What this means for the role"}
  ],
  "key_responsibilities": ["responsibility 1", "responsibility 2"],
  "summary": "One-paragraph summary of what this role requires"
}

RULES:
- Extract ALL technical skills mentioned: languages, frameworks, tools, concepts, cloud services, databases.
- Weight by importance: 8-10 = must-have/core daily use, 5-7 = strong preference, 1-4 = nice-to-have.
- "source": "required" = explicitly required in the JD, "preferred" = bonus/nice-to-have, "inferred" = clearly needed from role context.
- Be thorough: a typical JD yields 10-25 skills. No hallucinated skills.
- key_responsibilities: 5-10 concise bullet points. summary: 3-5 sentences.
- Return ONLY the raw JSON object.`

func buildJDPrompt(jdText, role, companyType, geography string) string {
	geographyLine := ""
	if geography != "" {
		geographyLine = "\nGeography: " + geography
	}
	return fmt.Sprintf(`%s

Analyze this job description:

Role: %s
Company Type: %s%s

--- JOB DESCRIPTION START ---
%s
--- JOB DESCRIPTION END ---

Extract the complete skill profile as specified. Return ONLY valid JSON.`,
		jdSystemPrompt, role, companyType, geographyLine, jdText)
}

const capstoneSystemPrompt = `You are an elite engineering portfolio strategist who has helped 500+ engineers land roles at top companies.

Your task: Generate TAILORED capstone project ideas that would impress recruiters for the given role and company type.

You MUST return valid JSON matching this exact schema:
{
  "projects": [
    {
      "title": "Project Title",
      "problem_statement": "Clear problem this project solves (2-3 sentences)",
      "recruiter_match_reasoning": "WHY this project matches what recruiters look for",
      "architecture": {"description": "High-level overview", "components": ["c1", "c2"], "data_flow": "How data moves through the system"},
      "tech_stack": ["Go", "PostgreSQL"],
      "complexity_level": 1-5,
      "estimated_days": 1-90,
      "resume_bullet": "Built X using Y, achieving Z",
      "key_features": ["f1", "f2", "f3"],
      "differentiator": "What makes THIS version better than generic tutorials"
    }
  ]
}

RULES:
- Each project MUST demonstrate skills from the profile, weighted by importance.
- Projects must be buildable by one person in the estimated timeframe, each at a different complexity level.
- resume_bullet starts with an action verb and quantifies impact where possible.
- Avoid generic TODO/blog/chat apps, projects mismatched to the company type, and unshippable scope.

Return ONLY valid JSON.`

func buildCapstonePrompt(profile model.SkillProfile, mods model.CompanyModifiers, role, companyType string, numProjects int, preferredStack []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\nGenerate %d tailored capstone project ideas for:\n\nTarget Role: %s\nCompany Type: %s\nExperience Level: %s\nDomain: %s\n",
		capstoneSystemPrompt, numProjects, role, companyType, profile.ExperienceLevel, profile.Domain)

	sb.WriteString("\nTop skills to demonstrate (by priority):\n")
	for i, s := range profile.Skills {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&sb, "  - %s (weight %.1f, %s)\n", s.Name, s.Weight, s.Source)
	}
	if len(mods.EmphasisAreas) > 0 {
		fmt.Fprintf(&sb, "\nCompany emphasis areas: %s\n", strings.Join(mods.EmphasisAreas, ", "))
	}
	if mods.PortfolioFocus != "" {
		fmt.Fprintf(&sb, "Portfolio focus: %s\n", mods.PortfolioFocus)
	}
	if len(preferredStack) > 0 {
		fmt.Fprintf(&sb, "Preferred technologies to include: %s\n", strings.Join(preferredStack, ", "))
	}
	sb.WriteString("\nReturn ONLY valid JSON.")
	return sb.String()
}

const repoSystemPrompt = `You are an expert engineering manager and technical recruiter with 15+ years of experience evaluating candidates' GitHub portfolios.

Your task: Analyze a GitHub repository and produce a RECRUITER-FOCUSED SCORECARD in JSON format.

You MUST return valid JSON matching this exact schema:
{
  "code_quality": {"score": 0.0-10.0, "details": "assessment", "suggestions": ["improvement 1"]},
  "test_coverage": {"score": 0.0-10.0, "details": "assessment", "suggestions": []},
  "complexity": {"score": 0.0-10.0, "details": "assessment", "suggestions": []},
  "structure": {"score": 0.0-10.0, "details": "assessment", "suggestions": []},
  "deployment_readiness": {"score": 0.0-10.0, "details": "assessment", "suggestions": []},
  "summary": "2-3 sentence executive summary for recruiters",
  "top_improvements": ["most impactful improvement 1", "improvement 2", "improvement 3"]
}

Score each dimension honestly against what a hiring manager expects from a strong portfolio repository. Return ONLY valid JSON.`

func buildRepoPrompt(d *service.RepoDigest) string {
	var sb strings.Builder
	sb.WriteString(repoSystemPrompt)
	fmt.Fprintf(&sb, "\n\nRepository: %s\nDescription: %s\nPrimary language: %s\nStars: %d\nTopics: %s\n",
		d.FullName, d.Description, d.PrimaryLanguage, d.Stars, strings.Join(d.Topics, ", "))
	fmt.Fprintf(&sb, "\nStructure: %d files (%d code, %d test), ~%d LOC\nHas README: %t, License: %t, CI: %t, Docker: %t, Tests: %t\nConfig files: %s\nQuality files: %s\n",
		d.TotalFiles, d.CodeFiles, d.TestFiles, d.EstimatedLOC,
		d.HasReadme, d.HasLicense, d.HasCI, d.HasDocker, d.HasTests,
		strings.Join(d.ConfigFiles, ", "), strings.Join(d.QualityFiles, ", "))

	if d.ReadmeContent != "" {
		fmt.Fprintf(&sb, "\n--- README ---\n%s\n", truncate(d.ReadmeContent, 6000))
	}
	for path, content := range d.SampleFiles {
		fmt.Fprintf(&sb, "\n--- SAMPLE FILE: %s ---\n%s\n", path, truncate(content, 4000))
	}
	sb.WriteString("\nReturn ONLY valid JSON.")
	return sb.String()
}

const scaffoldSystemPrompt = `You are a senior software architect who scaffolds production-quality repositories.

Your task: Generate a complete, runnable project skeleton for the described project.

You MUST return valid JSON matching this exact schema:
{
  "project_name": "kebab-case-name",
  "files": [
    {"path": "relative/path/file.ext", "content": "full file content", "language": "go", "description": "what this file does"}
  ],
  "file_tree": "ASCII tree of the project layout"
}

RULES:
- 8-20 files covering entry point, core modules, configuration, and README.
- Real, compilable starter code, not placeholder comments.
- Use relative paths only; never reference parent directories.
- Honor the Docker/CI/tests flags in the request.

Return ONLY valid JSON.`

func buildScaffoldPrompt(title, description string, techStack []string, includeDocker, includeCI, includeTests bool, capstoneContext string) string {
	var sb strings.Builder
	sb.WriteString(scaffoldSystemPrompt)
	fmt.Fprintf(&sb, "\n\nProject: %s\nDescription: %s\nTech stack: %s\nInclude Docker: %t\nInclude CI: %t\nInclude tests: %t\n",
		title, description, strings.Join(techStack, ", "), includeDocker, includeCI, includeTests)
	if capstoneContext != "" {
		fmt.Fprintf(&sb, "\nProject context:\n%s\n", capstoneContext)
	}
	sb.WriteString("\nReturn ONLY valid JSON.")
	return sb.String()
}

const portfolioSystemPrompt = `You are a developer-marketing expert who turns engineering projects into compelling portfolio materials.

Your task: Generate polished portfolio assets for the described project.

You MUST return valid JSON matching this exact schema:
{
  "readme_markdown": "Full polished README.md content",
  "resume_bullets": [
    {"bullet": "action-verb bullet with impact", "keywords": ["kw1", "kw2"], "impact_type": "quantitative|qualitative|technical"}
  ],
  "demo_script": {
    "total_duration_seconds": 120,
    "opening_hook": "first line of the demo",
    "steps": [{"timestamp": "0:00", "action": "what to show", "narration": "what to say"}],
    "closing_cta": "closing call to action"
  },
  "linkedin_post": {"hook": "attention-grabbing first line", "body": "post body", "hashtags": ["#tag"], "call_to_action": "CTA"}
}

RULES:
- README includes badges, features, architecture notes, setup, and usage.
- 3-5 resume bullets, each with ATS keywords and the right impact_type.
- Demo script has at most 15 steps in chronological order.

Return ONLY valid JSON.`

func buildPortfolioPrompt(title, description string, techStack, keyFeatures []string, repoScore float64, targetRole string) string {
	var sb strings.Builder
	sb.WriteString(portfolioSystemPrompt)
	fmt.Fprintf(&sb, "\n\nProject: %s\nDescription: %s\nTech stack: %s\nKey features: %s\n",
		title, description, strings.Join(techStack, ", "), strings.Join(keyFeatures, ", "))
	if repoScore > 0 {
		fmt.Fprintf(&sb, "Repo quality score: %.1f/10\n", repoScore)
	}
	if targetRole != "" {
		fmt.Fprintf(&sb, "Target role: %s\n", targetRole)
	}
	sb.WriteString("\nReturn ONLY valid JSON.")
	return sb.String()
}

const fitnessSystemPrompt = `You are an expert technical recruiter and talent assessor with 15+ years of experience evaluating engineering candidates.

Your task: Evaluate how well a candidate's resume matches a specific job description analysis.

You MUST return ONLY valid JSON with NO markdown fences, NO commentary:
{
  "fitness_score": 0-100,
  "verdict": "strong_fit|good_fit|partial_fit|weak_fit",
  "matched_skills": [{"name": "skill", "evidence": "brief evidence from resume"}],
  "missing_skills": [{"name": "skill", "importance": "critical|important|nice_to_have", "suggestion": "how to acquire"}],
  "strengths": ["strength 1"],
  "improvements": [{"area": "area", "current_state": "what the resume shows", "recommended_action": "specific step", "impact": "high|medium|low"}],
  "detailed_feedback": "2-3 paragraph assessment"
}

Scoring guidelines: 85-100 exceeds most requirements; 70-84 meets core requirements with minor gaps; 50-69 significant gaps but transferable skills; below 50 major mismatches. Be specific with evidence and reference actual resume content.`

func buildFitnessPrompt(role, companyType string, profile model.SkillProfile, resumeText string) string {
	var sb strings.Builder
	sb.WriteString(fitnessSystemPrompt)
	fmt.Fprintf(&sb, "\n\n## Job Description Analysis\n\nRole: %s\nCompany Type: %s\nExperience Level: %s\n\nRequired skills (by priority):\n",
		role, companyType, profile.ExperienceLevel)
	for i, s := range profile.Skills {
		if i >= 25 {
			break
		}
		fmt.Fprintf(&sb, "  - %s (weight %.1f/10, source: %s)\n", s.Name, s.Weight, s.Source)
	}
	if len(profile.EngineeringExpectations) > 0 {
		sb.WriteString("\nEngineering expectations:\n")
		for i, e := range profile.EngineeringExpectations {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&sb, "  - %s: %s (importance %.1f/10)\n", e.Dimension, e.Description, e.Importance)
		}
	}
	if len(profile.KeyResponsibilities) > 0 {
		sb.WriteString("\nKey responsibilities:\n")
		for i, r := range profile.KeyResponsibilities {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&sb, "  - %s\n", r)
		}
	}
	fmt.Fprintf(&sb, "\n## Candidate Resume\n%s\n\nEvaluate this candidate's fit. Return ONLY valid JSON.", truncate(resumeText, 15000))
	return sb.String()
}

func truncate(s string, max int) string {
	return llmjson.Truncate(s, max)
}
