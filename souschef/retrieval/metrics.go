package retrieval

import (
	"sort"
	"sync"
	"time"
)

// MetricsCollector tracks per-strategy retrieval metrics.
type MetricsCollector struct {
	mu sync.RWMutex

	retrievalCount   int64
	retrievalErrors  int64
	retrievalLatency []time.Duration

	strategyStats map[string]StrategyStats
}

// StrategyStats tracks metrics for a single cascade strategy.
type StrategyStats struct {
	QueryCount   int64
	HitCount     int64
	TotalLatency time.Duration
	ErrorCount   int64
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		retrievalLatency: make([]time.Duration, 0, 1000),
		strategyStats:    make(map[string]StrategyStats),
	}
}

// RecordStrategy records one strategy invocation. A hit means the strategy
// returned a non-empty candidate set and short-circuited the cascade.
func (mc *MetricsCollector) RecordStrategy(name string, duration time.Duration, hits int, err error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.retrievalCount++
	mc.retrievalLatency = append(mc.retrievalLatency, duration)

	stats := mc.strategyStats[name]
	stats.QueryCount++
	stats.TotalLatency += duration
	if hits > 0 {
		stats.HitCount++
	}
	if err != nil {
		stats.ErrorCount++
		mc.retrievalErrors++
	}
	mc.strategyStats[name] = stats
}

// GetSummary returns a snapshot of collected metrics.
func (mc *MetricsCollector) GetSummary() MetricsSummary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	stats := make(map[string]StrategyStats, len(mc.strategyStats))
	for name, s := range mc.strategyStats {
		stats[name] = s
	}

	return MetricsSummary{
		RetrievalCount:   mc.retrievalCount,
		RetrievalErrors:  mc.retrievalErrors,
		StrategyStats:    stats,
		RetrievalLatency: calculatePercentiles(mc.retrievalLatency),
	}
}

// Reset clears all collected metrics.
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.retrievalCount = 0
	mc.retrievalErrors = 0
	mc.retrievalLatency = mc.retrievalLatency[:0]
	mc.strategyStats = make(map[string]StrategyStats)
}

func calculatePercentiles(latencies []time.Duration) LatencyPercentiles {
	if len(latencies) == 0 {
		return LatencyPercentiles{}
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return LatencyPercentiles{
		P50: sorted[len(sorted)*50/100],
		P95: sorted[len(sorted)*95/100],
		P99: sorted[len(sorted)*99/100],
	}
}

// MetricsSummary is a point-in-time view of retrieval metrics.
type MetricsSummary struct {
	RetrievalCount   int64                    `json:"retrieval_count"`
	RetrievalErrors  int64                    `json:"retrieval_errors"`
	StrategyStats    map[string]StrategyStats `json:"strategy_stats"`
	RetrievalLatency LatencyPercentiles       `json:"retrieval_latency"`
}

// LatencyPercentiles represents latency percentiles.
type LatencyPercentiles struct {
	P50 time.Duration `json:"p50"`
	P95 time.Duration `json:"p95"`
	P99 time.Duration `json:"p99"`
}
