package hostmedic

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Defaults applied when no option overrides them.
const (
	// DefaultCheckTimeout bounds each individual check. External tools on
	// a healthy host answer well inside this; anything slower is treated
	// as hung.
	DefaultCheckTimeout = 10 * time.Second

	// DefaultConcurrency is the worker-pool size for the sweep.
	DefaultConcurrency = 4
)

// Option configures a Sweep.
type Option func(*sweepConfig)

// sweepConfig holds configuration for a Sweep instance.
type sweepConfig struct {
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
	tracer      trace.Tracer
}

func defaultSweepConfig() sweepConfig {
	return sweepConfig{
		timeout:     DefaultCheckTimeout,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
		tracer:      noop.NewTracerProvider().Tracer("hostmedic"),
	}
}

// WithTimeout sets the per-check timeout. A check exceeding it resolves to
// an unknown result instead of stalling the sweep. Non-positive values are
// ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *sweepConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithConcurrency sets the number of checks run in parallel. Non-positive
// values are ignored; use 1 for a fully sequential sweep.
func WithConcurrency(n int) Option {
	return func(c *sweepConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets a custom structured logger for the sweep.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *sweepConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets an OpenTelemetry tracer for the sweep. One span is
// recorded per check, carrying its status and duration.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *sweepConfig) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}
