package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildKeywordPrompt creates the prompt pair for keyword extraction
func (pb *PromptBuilder) BuildKeywordPrompt(text string) (system, user string) {
	system = `You extract keywords from resumes and job descriptions for applicant tracking systems.
Pick the most important technical skills, soft skills, tools, technologies and industry terms.
Keep each keyword short (one to three words) and do not repeat yourself.

Return ONLY JSON in this format:
{
  "keywords": ["keyword", "..."]
}`

	user = fmt.Sprintf("Extract the relevant keywords from this text:\n\n%s", text)
	return system, user
}

// BuildRecommendationPrompt creates the prompt pair for resume recommendations
func (pb *PromptBuilder) BuildRecommendationPrompt(resumeText, jobText string, missing []string) (system, user string) {
	system = `You are a resume optimization consultant. Given a resume, a job description and the
job keywords the resume does not cover, suggest specific and actionable changes that improve
ATS compatibility and the match with the job.

Return ONLY JSON in this format:
{
  "recommendations": [
    {
      "title": "<short title>",
      "description": "<specific actionable advice>",
      "priority": "High|Medium|Low",
      "category": "keywords|formatting|experience|skills"
    }
  ]
}`

	missingList := "none"
	if len(missing) > 0 {
		missingList = strings.Join(missing, ", ")
	}

	user = fmt.Sprintf(`RESUME:
%s

JOB DESCRIPTION:
%s

MISSING KEYWORDS:
%s

Recommend how to improve this resume for the job above.`, resumeText, jobText, missingList)
	return system, user
}

// BuildFormattingPrompt creates the prompt pair for ATS formatting checks
func (pb *PromptBuilder) BuildFormattingPrompt(resumeText string) (system, user string) {
	system = `You are an ATS formatting expert. Review resume text for ATS compatibility problems:
standard section headers, readable plain text, contact details, consistent dates and
anything a parser is likely to drop.

Return ONLY JSON in this format:
{
  "checks": [
    {
      "name": "<check name>",
      "status": "passed|warning|failed",
      "message": "<short explanation>"
    }
  ]
}`

	user = fmt.Sprintf("Check this resume text for ATS formatting compatibility:\n\n%s", resumeText)
	return system, user
}

// BuildEmbeddingText flattens a job description into the text that gets embedded
func (pb *PromptBuilder) BuildEmbeddingText(jd *models.JobDescription) string {
	var sb strings.Builder
	sb.WriteString(jd.Title)
	if jd.Company != "" {
		sb.WriteString(" at ")
		sb.WriteString(jd.Company)
	}
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(jd.Description))
	return sb.String()
}
