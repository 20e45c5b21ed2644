// Package config loads runtime settings from STRATEGO_* environment variables.
package config

import (
	"fmt"
	"time"

	"stratego/belief"
	"stratego/searcher"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel string `env:"STRATEGO_LOG_LEVEL" envDefault:"info"`
	Seed     uint64 `env:"STRATEGO_SEED" envDefault:"1"`

	SearchStrategy   string        `env:"STRATEGO_SEARCH_STRATEGY" envDefault:"minimax"`
	SearchBudget     time.Duration `env:"STRATEGO_SEARCH_BUDGET" envDefault:"950ms"`
	SearchGoroutines int           `env:"STRATEGO_SEARCH_GOROUTINES" envDefault:"4"`
	SearchMaxDepth   int           `env:"STRATEGO_SEARCH_MAX_DEPTH" envDefault:"64"`
	SearchNodeCheck  int           `env:"STRATEGO_SEARCH_NODE_CHECK" envDefault:"1024"`
	SearchCutoff     int           `env:"STRATEGO_SEARCH_CUTOFF" envDefault:"40"`

	BeliefStationaryBias float64 `env:"STRATEGO_BELIEF_STATIONARY_BIAS" envDefault:"3.0"`
	BeliefMobilityBias   float64 `env:"STRATEGO_BELIEF_MOBILITY_BIAS" envDefault:"1.25"`

	MaxMoves      int    `env:"STRATEGO_MAX_MOVES" envDefault:"600"`
	ExperimentDir string `env:"STRATEGO_EXPERIMENT_DIR" envDefault:"experiments"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.SearchStrategy != searcher.StrategyMinimax && c.SearchStrategy != searcher.StrategyISMCTS {
		return fmt.Errorf("invalid search strategy %q", c.SearchStrategy)
	}
	if c.SearchBudget <= 0 {
		return fmt.Errorf("search budget must be positive, got %s", c.SearchBudget)
	}
	if c.SearchGoroutines <= 0 {
		return fmt.Errorf("search goroutines must be positive, got %d", c.SearchGoroutines)
	}
	if c.BeliefStationaryBias <= 0 || c.BeliefMobilityBias <= 0 {
		return fmt.Errorf("belief biases must be positive")
	}
	return nil
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c Config) Weights() belief.Weights {
	return belief.Weights{StationaryBias: c.BeliefStationaryBias, MobilityBias: c.BeliefMobilityBias}
}

// SearchOptions translates the search settings into searcher options.
func (c Config) SearchOptions() []searcher.Option {
	return []searcher.Option{
		searcher.WithGoroutines(c.SearchGoroutines),
		searcher.WithMaxDepth(c.SearchMaxDepth),
		searcher.WithNodeCheck(c.SearchNodeCheck),
		searcher.WithCutoff(c.SearchCutoff),
		searcher.WithSeed(c.Seed),
	}
}

// NewSearcher builds the configured search strategy.
func (c Config) NewSearcher(options ...searcher.Option) (searcher.Searcher, error) {
	return searcher.New(c.SearchStrategy, append(c.SearchOptions(), options...)...)
}
