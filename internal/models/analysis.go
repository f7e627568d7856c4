package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckWarning CheckStatus = "warning"
	CheckFailed  CheckStatus = "failed"
)

const (
	CategoryTechnical = "Technical Skills"
	CategorySoft      = "Soft Skills"
	CategoryIndustry  = "Industry Keywords"
)

type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
}

type FormattingCheck struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message,omitempty"`
}

type SkillGap struct {
	Category   string   `json:"category"`
	Percentage int      `json:"percentage"`
	Missing    []string `json:"missing"`
}

// AnalysisResult is what the engine produces for one resume/job pair.
type AnalysisResult struct {
	OverallScore      int               `json:"overall_score"`
	KeywordMatchScore int               `json:"keyword_match_score"`
	FormatScore       int               `json:"format_score"`
	SkillsMatchScore  int               `json:"skills_match_score"`
	FoundKeywords     []string          `json:"found_keywords"`
	MissingKeywords   []string          `json:"missing_keywords"`
	Recommendations   []Recommendation  `json:"recommendations"`
	FormattingChecks  []FormattingCheck `json:"formatting_checks"`
	SkillsGap         []SkillGap        `json:"skills_gap"`
}

type Analysis struct {
	ID                uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID          uuid.UUID                            `gorm:"type:uuid;not null;index" json:"resume_id"`
	JobDescriptionID  uuid.UUID                            `gorm:"type:uuid;not null;index" json:"job_description_id"`
	OverallScore      int                                  `gorm:"not null" json:"overall_score"`
	KeywordMatchScore int                                  `gorm:"not null" json:"keyword_match_score"`
	FormatScore       int                                  `gorm:"not null" json:"format_score"`
	SkillsMatchScore  int                                  `gorm:"not null" json:"skills_match_score"`
	FoundKeywords     datatypes.JSONSlice[string]          `json:"found_keywords"`
	MissingKeywords   datatypes.JSONSlice[string]          `json:"missing_keywords"`
	Recommendations   datatypes.JSONSlice[Recommendation]  `json:"recommendations"`
	FormattingChecks  datatypes.JSONSlice[FormattingCheck] `json:"formatting_checks"`
	SkillsGap         datatypes.JSONSlice[SkillGap]        `json:"skills_gap"`
	AnalyzedAt        time.Time                            `gorm:"not null;index" json:"analyzed_at"`

	Resume         *Resume         `gorm:"foreignKey:ResumeID" json:"-"`
	JobDescription *JobDescription `gorm:"foreignKey:JobDescriptionID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// NewAnalysis freezes an engine result into a record ready to be stored.
func NewAnalysis(resumeID, jobDescriptionID uuid.UUID, result *AnalysisResult) *Analysis {
	return &Analysis{
		ID:                uuid.New(),
		ResumeID:          resumeID,
		JobDescriptionID:  jobDescriptionID,
		OverallScore:      result.OverallScore,
		KeywordMatchScore: result.KeywordMatchScore,
		FormatScore:       result.FormatScore,
		SkillsMatchScore:  result.SkillsMatchScore,
		FoundKeywords:     datatypes.NewJSONSlice(result.FoundKeywords),
		MissingKeywords:   datatypes.NewJSONSlice(result.MissingKeywords),
		Recommendations:   datatypes.NewJSONSlice(result.Recommendations),
		FormattingChecks:  datatypes.NewJSONSlice(result.FormattingChecks),
		SkillsGap:         datatypes.NewJSONSlice(result.SkillsGap),
		AnalyzedAt:        time.Now().UTC(),
	}
}
