package meshdist

import (
	"log/slog"
	"time"

	"github.com/hupe1980/meshdist/internal/change"
	"github.com/hupe1980/meshdist/model"
)

// DefaultInterval is the periodic refresh interval of a Scheduler.
const DefaultInterval = 100 * time.Millisecond

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	changeThreshold  float32
	gateOnChange     bool
	interval         time.Duration
	onRefresh        func(model.PairResult)
}

// Option configures Engine, Session and Scheduler behavior.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring refreshes.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &meshdist.BasicMetricsCollector{}
//	eng := meshdist.New(meshdist.WithMetricsCollector(metrics))
//	// ... refresh ...
//	stats := metrics.GetStats()
//	fmt.Printf("Refreshes: %d, Avg latency: %dns\n", stats.RefreshCount, stats.RefreshAvgNanos)
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
//	logger := meshdist.NewJSONLogger(slog.LevelInfo)
//	eng := meshdist.New(meshdist.WithLogger(logger))
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

// WithChangeThreshold sets the distance a vertex must move before the
// change detector reports it. Non-positive values keep the default.
func WithChangeThreshold(threshold float32) Option {
	return func(o *options) {
		if threshold > 0 {
			o.changeThreshold = threshold
		}
	}
}

// WithChangeGating makes periodic ticks skip the recompute when the change
// detector sees no movement. Scene-change notifications and user actions
// always recompute. Disabled by default.
func WithChangeGating(enabled bool) Option {
	return func(o *options) {
		o.gateOnChange = enabled
	}
}

// WithInterval sets the Scheduler's tick interval, which is also the
// minimum spacing between two recomputes.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithOnRefresh registers a callback receiving every new result, typically
// the host's redraw request.
func WithOnRefresh(fn func(model.PairResult)) Option {
	return func(o *options) {
		o.onRefresh = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		changeThreshold:  change.DefaultThreshold,
		interval:         DefaultInterval,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
