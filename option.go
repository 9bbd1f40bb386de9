package golps

import (
	"fmt"
	"math"

	"github.com/costela/golps/internal/tableau"
)

// config holds the solver settings shared by Model and Problem solves.
type config struct {
	logger        Logger
	tolerance     float64
	maxIterations int
}

func newConfig(opts ...Option) (config, error) {
	cfg := config{
		logger:        noopLogger{},
		tolerance:     tableau.DefaultTolerance,
		maxIterations: tableau.DefaultMaxIterations,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

type Option func(*config) error

// WithLogger sends solver progress to logger. A nil logger disables logging.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			logger = noopLogger{}
		}
		c.logger = logger

		return nil
	}
}

// WithTolerance sets the epsilon under which values are treated as zero in
// pivoting decisions and in the feasibility test. The default is 1e-9.
func WithTolerance(eps float64) Option {
	return func(c *config) error {
		if !(eps > 0) || math.IsInf(eps, 0) {
			return fmt.Errorf("tolerance must be positive and finite, got %g", eps)
		}
		c.tolerance = eps

		return nil
	}
}

// WithMaxIterations caps the number of pivots of a single solve. Solves
// exceeding it fail with ErrIterationLimitExceeded. n <= 0 removes the cap.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		c.maxIterations = n

		return nil
	}
}
