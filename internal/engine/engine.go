package engine

import (
	"time"

	"github.com/vk/flowgrid/internal/registry"
)

const defaultRetryBaseDelay = 100 * time.Millisecond

// Engine executes registered workflows. It holds no per-execution state;
// one Engine may serve any number of concurrent Execute calls.
type Engine struct {
	registry    *registry.Registry
	parallelism int
	retryBase   time.Duration
	clock       func() time.Time
}

// Option customizes an Engine instance.
type Option func(*Engine)

// WithParallelism sets how many runnable steps may execute at once. The
// default of 1 reproduces the serial baseline: runnable steps are invoked
// and awaited one at a time in forward-scan order, and the aggregate output is
// merged in completion order. Values above 1 enable concurrent execution of
// independent steps; the aggregate output is then merged in declared step
// order, which is the documented deterministic tie-break.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithRetryBaseDelay sets the unit of the linear retry backoff: the wait
// after failed attempt k is k times this duration.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.retryBase = d
		}
	}
}

// WithClock injects a deterministic clock, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New wires an Engine to the registry it resolves workflows from.
func New(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:    reg,
		parallelism: 1,
		retryBase:   defaultRetryBaseDelay,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
