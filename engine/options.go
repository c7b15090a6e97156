package engine

import "go.uber.org/zap"

// ============================================================================
// ENGINE OPTIONS — Functional options for New()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*settings)

type settings struct {
	logger        *zap.Logger
	parallel      bool
	maxIterations int
}

// WithLogger attaches a structured logger. The engine is silent by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParallelism enables concurrent per-attribute generalization.
// Attributes are independent during the generalize phase; results are
// joined before aggregation, so output is identical either way.
func WithParallelism(enabled bool) Option {
	return func(s *settings) {
		s.parallel = enabled
	}
}

// WithMaxIterations caps the relation-threshold climb loop. Termination is
// already guaranteed by finite hierarchy depth; the cap is a defensive
// bound against a misbehaving Hierarchy implementation.
func WithMaxIterations(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

func applyOptions(opts []Option) *settings {
	s := &settings{
		logger:        zap.NewNop(),
		maxIterations: 64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
