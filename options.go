package kmeanspp

import (
	"log/slog"
	"runtime"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	uniformFallback  bool
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeanspp.BasicMetricsCollector{}
//	eng := kmeanspp.New(kmeanspp.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg refine latency: %dns\n", stats.RunCount, stats.RefineAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeanspp.NewJSONLogger(slog.LevelInfo)
//	eng := kmeanspp.New(kmeanspp.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithWorkers parallelizes the assignment pass of every refinement
// iteration across n goroutines. n <= 0 uses GOMAXPROCS; 1 (the default)
// keeps refinement single-threaded. The result does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithUniformFallback makes seeding draw uniformly among the points not yet
// chosen when all remaining selection weights are zero (every unchosen point
// coincides with a chosen centroid). Without it such input fails with
// ErrInvalidInput.
func WithUniformFallback() Option {
	return func(o *options) {
		o.uniformFallback = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		workers:          1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
