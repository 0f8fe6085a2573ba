package meshdist

import (
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/meshdist/internal/resolve"
	"github.com/hupe1980/meshdist/model"
	"gopkg.in/yaml.v3"
)

// Documented configuration ranges.
const (
	MinMaxDistance   float32 = 0.01
	MaxMaxDistance   float32 = 10000
	MinMaxVertices           = 1
	MaxMaxVertices           = 10000
	MinMaxPairs              = 1
	MaxMaxPairs              = 10000
	MinNeighborDepth         = 0
	MaxNeighborDepth         = 5
)

// Config holds the inputs of one refresh. The core keeps no configuration
// between calls; hosts pass the current values every time.
type Config struct {
	// MaxDistance keeps only pairs at most this far apart (inclusive).
	MaxDistance float32 `yaml:"max_distance"`
	// MaxVertices caps the number of resolved vertices across all meshes.
	MaxVertices int `yaml:"max_vertices"`
	// MaxPairs caps the number of returned pairs.
	MaxPairs int `yaml:"max_pairs"`
	// NeighborDepth is the number of edge-hops walked from each anchor.
	// Zero disables adjacency expansion.
	NeighborDepth int `yaml:"neighbor_depth"`
	// LockEnabled uses Locked instead of the live selection.
	LockEnabled bool `yaml:"lock_selection"`
	// Locked is the user-frozen vertex set.
	Locked model.LockedSelection `yaml:"-"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxDistance:   100,
		MaxVertices:   100,
		MaxPairs:      10,
		NeighborDepth: 1,
	}
}

// Validate checks every field against its documented range.
func (c Config) Validate() error {
	var errs []error
	if c.MaxDistance < MinMaxDistance || c.MaxDistance > MaxMaxDistance {
		errs = append(errs, &ErrInvalidConfig{Field: "max_distance", Value: c.MaxDistance, Min: MinMaxDistance, Max: MaxMaxDistance})
	}
	if c.MaxVertices < MinMaxVertices || c.MaxVertices > MaxMaxVertices {
		errs = append(errs, &ErrInvalidConfig{Field: "max_vertices", Value: c.MaxVertices, Min: MinMaxVertices, Max: MaxMaxVertices})
	}
	if c.MaxPairs < MinMaxPairs || c.MaxPairs > MaxMaxPairs {
		errs = append(errs, &ErrInvalidConfig{Field: "max_pairs", Value: c.MaxPairs, Min: MinMaxPairs, Max: MaxMaxPairs})
	}
	if c.NeighborDepth < MinNeighborDepth || c.NeighborDepth > MaxNeighborDepth {
		errs = append(errs, &ErrInvalidConfig{Field: "neighbor_depth", Value: c.NeighborDepth, Min: MinNeighborDepth, Max: MaxNeighborDepth})
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML config, starting from DefaultConfig, and
// validates the result. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("meshdist: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) resolveParams(logger *Logger) resolve.Params {
	return resolve.Params{
		MaxVertices: c.MaxVertices,
		LockEnabled: c.LockEnabled,
		Locked:      c.Locked,
		Logger:      logger.Logger,
	}
}
