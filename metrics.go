package meshdist

import (
	"sync/atomic"
	"time"
)

// RefreshStats describes one refresh pass.
type RefreshStats struct {
	// Vertices is the size of the resolved pool.
	Vertices int
	// Groups is the number of meshes traversed by adjacency.
	Groups int
	// Candidates is the number of pairs emitted before deduplication.
	Candidates int
	// Pairs is the length of the returned result.
	Pairs int
	// Skipped counts locked references that no longer resolve.
	Skipped int
	// Locked reports whether the locked selection was used.
	Locked bool
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordRefresh is called after each refresh with its stats and duration.
	RecordRefresh(stats RefreshStats, duration time.Duration)

	// RecordSkip is called when a scheduled refresh is skipped because the
	// change detector saw no movement.
	RecordSkip(src Source)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRefresh(RefreshStats, time.Duration) {}
func (NoopMetricsCollector) RecordSkip(Source)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	RefreshCount      atomic.Int64
	RefreshTotalNanos atomic.Int64
	RefreshEmpty      atomic.Int64
	CandidatesTotal   atomic.Int64
	PairsTotal        atomic.Int64
	SkippedRefs       atomic.Int64
	LockedRefreshes   atomic.Int64
	SkipCount         atomic.Int64
}

// RecordRefresh implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRefresh(stats RefreshStats, duration time.Duration) {
	b.RefreshCount.Add(1)
	b.RefreshTotalNanos.Add(duration.Nanoseconds())
	b.CandidatesTotal.Add(int64(stats.Candidates))
	b.PairsTotal.Add(int64(stats.Pairs))
	b.SkippedRefs.Add(int64(stats.Skipped))
	if stats.Pairs == 0 {
		b.RefreshEmpty.Add(1)
	}
	if stats.Locked {
		b.LockedRefreshes.Add(1)
	}
}

// RecordSkip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSkip(Source) {
	b.SkipCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RefreshCount:     b.RefreshCount.Load(),
		RefreshAvgNanos:  b.getAvgRefreshNanos(),
		RefreshEmpty:     b.RefreshEmpty.Load(),
		CandidatesTotal:  b.CandidatesTotal.Load(),
		PairsTotal:       b.PairsTotal.Load(),
		SkippedRefs:      b.SkippedRefs.Load(),
		LockedRefreshes:  b.LockedRefreshes.Load(),
		SkippedRefreshes: b.SkipCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRefreshNanos() int64 {
	count := b.RefreshCount.Load()
	if count == 0 {
		return 0
	}
	return b.RefreshTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RefreshCount     int64
	RefreshAvgNanos  int64
	RefreshEmpty     int64
	CandidatesTotal  int64
	PairsTotal       int64
	SkippedRefs      int64
	LockedRefreshes  int64
	SkippedRefreshes int64
}
