package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"alfredoptarigan/ats-analyzer/internal/models"
)

// Oracle is the text-understanding service behind an analysis. Callers treat
// every error as degradation and carry on with an empty list.
type Oracle interface {
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
	GenerateRecommendations(ctx context.Context, resumeText, jobText string, missing []string) ([]models.Recommendation, error)
	AnalyzeFormatting(ctx context.Context, resumeText string) ([]models.FormattingCheck, error)
}

type OracleOptions struct {
	RPS       float64
	Burst     int
	ChunkSize int
	Retry     RetryConfig
}

type llmOracle struct {
	client    LLMClient
	prompts   *PromptBuilder
	chunker   TextChunker
	limiter   *rate.Limiter
	retry     RetryConfig
	chunkSize int
}

func NewLLMOracle(client LLMClient, opts OracleOptions) Oracle {
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	return &llmOracle{
		client:    client,
		prompts:   NewPromptBuilder(),
		chunker:   NewTextChunker(),
		limiter:   rate.NewLimiter(limit, burst),
		retry:     opts.Retry,
		chunkSize: opts.ChunkSize,
	}
}

// ExtractKeywords implements Oracle. Text longer than the chunk size is split
// and the per-chunk keywords are merged without case-insensitive duplicates.
func (o *llmOracle) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	if o.chunkSize <= 0 || utf8.RuneCountInString(text) <= o.chunkSize {
		system, user := o.prompts.BuildKeywordPrompt(text)
		return completeJSON(ctx, o, system, user, decodeKeywords)
	}

	chunks := o.chunker.ChunkText(text, o.chunkSize, o.chunkSize/20)
	results := make([][]string, len(chunks))
	var (
		mu       sync.Mutex
		failures int
		lastErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	for i, chunk := range chunks {
		g.Go(func() error {
			system, user := o.prompts.BuildKeywordPrompt(chunk)
			keywords, err := completeJSON(gctx, o, system, user, decodeKeywords)
			if err != nil {
				// One bad chunk should not sink the others
				mu.Lock()
				failures++
				lastErr = err
				mu.Unlock()
				return nil
			}
			results[i] = keywords
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if failures == len(chunks) {
		return nil, fmt.Errorf("all %d keyword chunks failed: %w", len(chunks), lastErr)
	}

	return mergeKeywords(results...), nil
}

// GenerateRecommendations implements Oracle.
func (o *llmOracle) GenerateRecommendations(ctx context.Context, resumeText, jobText string, missing []string) ([]models.Recommendation, error) {
	system, user := o.prompts.BuildRecommendationPrompt(resumeText, jobText, missing)
	return completeJSON(ctx, o, system, user, decodeRecommendations)
}

// AnalyzeFormatting implements Oracle.
func (o *llmOracle) AnalyzeFormatting(ctx context.Context, resumeText string) ([]models.FormattingCheck, error) {
	system, user := o.prompts.BuildFormattingPrompt(resumeText)
	return completeJSON(ctx, o, system, user, decodeFormattingChecks)
}

// completeJSON asks the model and decodes its reply, retrying both steps
// since a malformed reply is often fixed by asking again.
func completeJSON[T any](ctx context.Context, o *llmOracle, system, user string, decode func(string) (T, error)) (T, error) {
	start := time.Now()

	result, err := RetryDo(ctx, o.retry, func() (T, error) {
		var zero T
		if err := o.limiter.Wait(ctx); err != nil {
			return zero, Permanent(fmt.Errorf("rate limiter: %w", err))
		}

		metrics.OracleCalls.Add(1)
		raw, err := o.client.Complete(ctx, system, user)
		if err != nil {
			metrics.OracleErrors.Add(1)
			return zero, err
		}

		decoded, err := decode(raw)
		if err != nil {
			metrics.OracleErrors.Add(1)
			return zero, err
		}
		return decoded, nil
	})
	if err != nil {
		return result, fmt.Errorf("%s: %w", o.client.Name(), err)
	}

	if elapsed := time.Since(start); elapsed > 10*time.Second {
		log.Printf("🐢 Oracle call to %s took %s\n", o.client.Name(), elapsed.Round(time.Millisecond))
	}
	return result, nil
}
