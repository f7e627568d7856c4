package services

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// metrics tracks operational counters across the service.
var metrics struct {
	OracleCalls        atomic.Int64
	OracleErrors       atomic.Int64
	OracleDegradations atomic.Int64
	KeywordCacheHits   atomic.Int64
	KeywordCacheMisses atomic.Int64
	Analyses           atomic.Int64
	AnalysisFailures   atomic.Int64
	Uploads            atomic.Int64
	EventsPublished    atomic.Int64
	JobsIndexed        atomic.Int64
	IndexFailures      atomic.Int64
}

var metricKeys = []string{
	"oracle_calls", "oracle_errors", "oracle_degradations",
	"keyword_cache_hits", "keyword_cache_misses",
	"analyses", "analysis_failures",
	"uploads", "events_published",
	"jobs_indexed", "index_failures",
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"oracle_calls":         metrics.OracleCalls.Load(),
		"oracle_errors":        metrics.OracleErrors.Load(),
		"oracle_degradations":  metrics.OracleDegradations.Load(),
		"keyword_cache_hits":   metrics.KeywordCacheHits.Load(),
		"keyword_cache_misses": metrics.KeywordCacheMisses.Load(),
		"analyses":             metrics.Analyses.Load(),
		"analysis_failures":    metrics.AnalysisFailures.Load(),
		"uploads":              metrics.Uploads.Load(),
		"events_published":     metrics.EventsPublished.Load(),
		"jobs_indexed":         metrics.JobsIndexed.Load(),
		"index_failures":       metrics.IndexFailures.Load(),
	}
}

// FormatMetrics renders the counters as "name value" lines.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
