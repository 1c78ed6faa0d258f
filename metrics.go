package kmeanspp

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSeed is called after each seeding pass.
	// k is the number of requested centroids, err is nil if successful.
	RecordSeed(k int, duration time.Duration, err error)

	// RecordRefine is called after each refinement.
	// iterations is the number of completed rounds (0 on failure).
	RecordRefine(iterations int, converged bool, duration time.Duration, err error)

	// RecordRun is called after each full seed-and-refine run.
	RecordRun(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeed(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordRefine(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordRun(time.Duration, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SeedCount        atomic.Int64
	SeedErrors       atomic.Int64
	SeedTotalNanos   atomic.Int64
	RefineCount      atomic.Int64
	RefineErrors     atomic.Int64
	RefineConverged  atomic.Int64
	RefineIterations atomic.Int64
	RefineTotalNanos atomic.Int64
	RunCount         atomic.Int64
	RunErrors        atomic.Int64
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(k int, duration time.Duration, err error) {
	b.SeedCount.Add(1)
	b.SeedTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SeedErrors.Add(1)
	}
}

// RecordRefine implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRefine(iterations int, converged bool, duration time.Duration, err error) {
	b.RefineCount.Add(1)
	b.RefineTotalNanos.Add(duration.Nanoseconds())
	b.RefineIterations.Add(int64(iterations))
	if converged {
		b.RefineConverged.Add(1)
	}
	if err != nil {
		b.RefineErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(duration time.Duration, err error) {
	b.RunCount.Add(1)
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SeedCount:        b.SeedCount.Load(),
		SeedErrors:       b.SeedErrors.Load(),
		SeedAvgNanos:     avg(b.SeedTotalNanos.Load(), b.SeedCount.Load()),
		RefineCount:      b.RefineCount.Load(),
		RefineErrors:     b.RefineErrors.Load(),
		RefineConverged:  b.RefineConverged.Load(),
		RefineIterations: b.RefineIterations.Load(),
		RefineAvgNanos:   avg(b.RefineTotalNanos.Load(), b.RefineCount.Load()),
		RunCount:         b.RunCount.Load(),
		RunErrors:        b.RunErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SeedCount        int64
	SeedErrors       int64
	SeedAvgNanos     int64
	RefineCount      int64
	RefineErrors     int64
	RefineConverged  int64
	RefineIterations int64
	RefineAvgNanos   int64
	RunCount         int64
	RunErrors        int64
}
