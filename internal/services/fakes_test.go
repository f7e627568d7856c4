package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"alfredoptarigan/ats-analyzer/internal/models"
)

var errOracleDown = errors.New("oracle unavailable")

// fakeOracle answers from fixed tables. delay blocks each call until it
// elapses or ctx ends.
type fakeOracle struct {
	keywords map[string][]string
	recs     []models.Recommendation
	checks   []models.FormattingCheck

	keywordErr error
	recErr     error
	checkErr   error

	delay      time.Duration
	recDelay   time.Duration
	panicCheck bool

	mu           sync.Mutex
	keywordCalls int
	gotMissing   []string
}

func (f *fakeOracle) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeOracle) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	f.mu.Lock()
	f.keywordCalls++
	f.mu.Unlock()

	if err := f.wait(ctx, f.delay); err != nil {
		return nil, err
	}
	if f.keywordErr != nil {
		return nil, f.keywordErr
	}
	return f.keywords[text], nil
}

func (f *fakeOracle) GenerateRecommendations(ctx context.Context, _, _ string, missing []string) ([]models.Recommendation, error) {
	f.mu.Lock()
	f.gotMissing = missing
	f.mu.Unlock()

	if err := f.wait(ctx, max(f.delay, f.recDelay)); err != nil {
		return nil, err
	}
	if f.recErr != nil {
		return nil, f.recErr
	}
	return f.recs, nil
}

func (f *fakeOracle) AnalyzeFormatting(ctx context.Context, _ string) ([]models.FormattingCheck, error) {
	if f.panicCheck {
		panic("formatting exploded")
	}
	if err := f.wait(ctx, f.delay); err != nil {
		return nil, err
	}
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return f.checks, nil
}

func (f *fakeOracle) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keywordCalls
}

// fakeLLM replies through fn, which sees the 1-based call number.
type fakeLLM struct {
	fn func(call int, system, user string) (string, error)

	mu    sync.Mutex
	count int
}

func (f *fakeLLM) Name() string { return "fake/test-model" }

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.count++
	n := f.count
	f.mu.Unlock()
	return f.fn(n, system, user)
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type fakePublisher struct {
	err error

	mu        sync.Mutex
	published []*models.Analysis
}

func (p *fakePublisher) PublishAnalysisCompleted(a *models.Analysis) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, a)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeArchive struct {
	err  error
	keys []string
}

func (a *fakeArchive) Enabled() bool { return true }

func (a *fakeArchive) Store(_ context.Context, key, _, _ string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, key)
	return key, nil
}

type fakeParser struct {
	text string
	err  error

	gotMime string
}

func (p *fakeParser) ExtractText(_, mimeType string) (string, error) {
	p.gotMime = mimeType
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}
