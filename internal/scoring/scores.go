package scoring

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	bulletPenalty   = 5
	shortPenalty    = 20
	longPenalty     = 10
	headerPenalty   = 15
	minResumeLength = 500
	maxResumeLength = 5000
	minHeaders      = 2
)

var sectionHeaders = []string{"experience", "education", "skills", "summary"}

// Scores holds the four integer percentages of one analysis.
type Scores struct {
	KeywordMatch int
	Format       int
	SkillsMatch  int
	Overall      int
}

// Score computes every score for a resume against a job.
func Score(resumeText string, resumeKeywords, jobKeywords, found []string) Scores {
	s := Scores{
		KeywordMatch: KeywordMatchScore(found, jobKeywords),
		Format:       FormatScore(resumeText),
		SkillsMatch:  SkillsMatchScore(resumeKeywords, jobKeywords),
	}
	s.Overall = OverallScore(s.KeywordMatch, s.Format, s.SkillsMatch)
	return s
}

// KeywordMatchScore is the share of found keywords over the job keyword count.
// found is filtered from the resume side, so it can outnumber the job
// keywords; the result is clamped to 100.
func KeywordMatchScore(found, jobKeywords []string) int {
	return percent(len(found), len(jobKeywords))
}

// FormatScore starts at 100 and applies independent deductions for bullet
// glyphs, length outside [500, 5000] characters and missing section headers.
func FormatScore(resumeText string) int {
	score := 100

	if strings.ContainsAny(resumeText, "•●") {
		score -= bulletPenalty
	}

	length := utf8.RuneCountInString(resumeText)
	if length < minResumeLength {
		score -= shortPenalty
	}
	if length > maxResumeLength {
		score -= longPenalty
	}

	lower := strings.ToLower(resumeText)
	headers := 0
	for _, h := range sectionHeaders {
		if strings.Contains(lower, h) {
			headers++
		}
	}
	if headers < minHeaders {
		score -= headerPenalty
	}

	return clamp(score)
}

// SkillsMatchScore is the share of technical job keywords that some resume
// keyword is Related to. An empty job keyword list scores 0.
func SkillsMatchScore(resumeKeywords, jobKeywords []string) int {
	if len(jobKeywords) == 0 {
		return 0
	}

	matched, total := 0, 0
	for _, jk := range jobKeywords {
		if !IsTechnical(jk) {
			continue
		}
		total++
		if hasRelated(jk, resumeKeywords) {
			matched++
		}
	}

	return percent(matched, total)
}

// OverallScore is the rounded unweighted mean of the three component scores.
func OverallScore(keywordMatch, format, skillsMatch int) int {
	return clamp(int(math.Round(float64(keywordMatch+format+skillsMatch) / 3)))
}

// percent rounds part/max(whole,1) to an integer percentage in [0,100].
// Rounding is half away from zero.
func percent(part, whole int) int {
	if whole < 1 {
		whole = 1
	}
	return clamp(int(math.Round(float64(part) / float64(whole) * 100)))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
