package block

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/haplo/internal/ctxlog"
	"github.com/arloliu/haplo/internal/metrics"
	"github.com/arloliu/haplo/internal/options"
)

// FlipPolicy decides when the classifier normalizes the orientation of a site.
type FlipPolicy uint8

const (
	// FlipNever leaves every site as ingested. Orientation is then left to the optimizer,
	// which may call FlipSite itself.
	FlipNever FlipPolicy = iota
	// FlipMajorityOnes inverts every non-monotone site observed with more ones than zeros,
	// so zero is the majority allele of every site after classification.
	FlipMajorityOnes
)

func (p FlipPolicy) String() string {
	switch p {
	case FlipNever:
		return "never"
	case FlipMajorityOnes:
		return "majority-ones"
	default:
		return "unknown"
	}
}

// ParseFlipPolicy converts "never" or "majority-ones" into a FlipPolicy.
func ParseFlipPolicy(s string) (FlipPolicy, bool) {
	switch s {
	case "never", "":
		return FlipNever, true
	case "majority-ones":
		return FlipMajorityOnes, true
	default:
		return FlipNever, false
	}
}

// Config holds the build settings of a block.
type Config struct {
	parallelism int
	flipPolicy  FlipPolicy
	logger      *slog.Logger
	metrics     *metrics.Collector
}

// Option configures a block build.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		parallelism: runtime.GOMAXPROCS(0),
		flipPolicy:  FlipNever,
		logger:      ctxlog.Discard(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parallelism returns the configured number of classifier lanes.
func (c *Config) Parallelism() int {
	return c.parallelism
}

// FlipPolicy returns the configured flip policy.
func (c *Config) FlipPolicy() FlipPolicy {
	return c.flipPolicy
}

// WithParallelism sets the maximum number of classifier lanes. The effective lane count is
// min(n, site count). Defaults to GOMAXPROCS.
func WithParallelism(n int) Option {
	return options.Named("parallelism", func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("must be positive, got %d", n)
		}
		c.parallelism = n

		return nil
	})
}

// WithFlipPolicy selects when sites are flipped during classification. Defaults to FlipNever.
func WithFlipPolicy(p FlipPolicy) Option {
	return options.Named("flip policy", func(c *Config) error {
		switch p {
		case FlipNever, FlipMajorityOnes:
			c.flipPolicy = p
			return nil
		default:
			return fmt.Errorf("unknown policy %d", p)
		}
	})
}

// WithLogger sets the structured logger used for build and merge diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMetrics records pipeline metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return options.NoError(func(c *Config) {
		c.metrics = metrics.NewCollector(reg)
	})
}
