package kmeans

import "log/slog"

type options struct {
	workers         int
	uniformFallback bool
	logger          *slog.Logger
}

// Option configures Seed and Refine.
type Option func(*options)

// WithWorkers splits the assignment pass of Refine across n goroutines.
// n <= 1 keeps it sequential. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithUniformFallback makes Seed draw uniformly among the points not yet
// chosen when every selection weight is zero, instead of failing with
// ErrDegenerateSeeding.
func WithUniformFallback() Option {
	return func(o *options) {
		o.uniformFallback = true
	}
}

// WithLogger sets the logger for per-round and per-iteration debug records.
// Pass nil to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		workers: 1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
