package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/scoring"
)

type AnalysisEngine interface {
	// Analyze scores a resume against a job description. Oracle failures and
	// per-call timeouts degrade to empty lists. ErrAnalysisFailed is returned
	// only when ctx itself ends or the scoring path panics.
	Analyze(ctx context.Context, resumeText, jobText string) (*models.AnalysisResult, error)
}

type analysisEngine struct {
	oracle      Oracle
	callTimeout time.Duration
}

// NewAnalysisEngine builds an engine. callTimeout bounds each oracle call;
// zero means the caller's context is the only limit.
func NewAnalysisEngine(oracle Oracle, callTimeout time.Duration) AnalysisEngine {
	return &analysisEngine{
		oracle:      oracle,
		callTimeout: callTimeout,
	}
}

// Analyze implements AnalysisEngine.
func (e *analysisEngine) Analyze(ctx context.Context, resumeText, jobText string) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, r)
		}
		if err != nil {
			metrics.AnalysisFailures.Add(1)
		}
	}()

	// Step 1: keywords for both texts
	var resumeKeywords, jobKeywords []string
	var extract errgroup.Group
	goSafe(&extract, func() {
		resumeKeywords = degrade(ctx, e.callTimeout, "resume keyword extraction", func(c context.Context) ([]string, error) {
			return e.oracle.ExtractKeywords(c, resumeText)
		})
	})
	goSafe(&extract, func() {
		jobKeywords = degrade(ctx, e.callTimeout, "job keyword extraction", func(c context.Context) ([]string, error) {
			return e.oracle.ExtractKeywords(c, jobText)
		})
	})
	if err := extract.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	// Step 2 and 3: match and score
	found, missing := scoring.MatchKeywords(resumeKeywords, jobKeywords)
	scores := scoring.Score(resumeText, resumeKeywords, jobKeywords, found)

	// Step 4: recommendations and formatting checks
	var recommendations []models.Recommendation
	var checks []models.FormattingCheck
	var advice errgroup.Group
	goSafe(&advice, func() {
		recommendations = degrade(ctx, e.callTimeout, "recommendations", func(c context.Context) ([]models.Recommendation, error) {
			return e.oracle.GenerateRecommendations(c, resumeText, jobText, missing)
		})
	})
	goSafe(&advice, func() {
		checks = degrade(ctx, e.callTimeout, "formatting analysis", func(c context.Context) ([]models.FormattingCheck, error) {
			return e.oracle.AnalyzeFormatting(c, resumeText)
		})
	})
	if err := advice.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	// Step 5 and 6: gaps and assembly
	return &models.AnalysisResult{
		OverallScore:      scores.Overall,
		KeywordMatchScore: scores.KeywordMatch,
		FormatScore:       scores.Format,
		SkillsMatchScore:  scores.SkillsMatch,
		FoundKeywords:     found,
		MissingKeywords:   missing,
		Recommendations:   recommendations,
		FormattingChecks:  checks,
		SkillsGap:         scoring.SkillsGap(resumeKeywords, jobKeywords),
	}, nil
}

// goSafe runs fn on g and turns a panic into ErrAnalysisFailed.
func goSafe(g *errgroup.Group, fn func()) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrAnalysisFailed, r)
			}
		}()
		fn()
		return nil
	})
}

// degrade runs one oracle call under its own timeout and swaps any failure
// for an empty list.
func degrade[T any](ctx context.Context, timeout time.Duration, op string, call func(context.Context) ([]T, error)) []T {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := call(callCtx)
	if err != nil {
		metrics.OracleDegradations.Add(1)
		log.Printf("⚠️  %s unavailable, continuing without it: %v\n", op, err)
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}
