package main

import (
	"math"

	"github.com/pthm-cable/slide/config"
)

// ParamSpec defines a single tunable movement limit.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // rounded before use
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// stuckLimit bounds the work one movement may do and is not searched.
const stuckLimit = 3

// NewParamVector creates the standard set of movement limits.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "completion_threshold", Path: "physics.completion_threshold", Min: 1.0 / 256, Max: 0.5, Default: 0.0625},
			{Name: "stuck_threshold", Path: "physics.stuck_threshold", Min: 1.0 / 1024, Max: 0.125, Default: 0.015625},
			// stuck_limit locked at 3
			{Name: "max_iterations", Path: "physics.max_iterations", Min: 2, Max: 32, Default: 16, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp keeps all values within bounds and rounds the integer ones.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg and recomputes its
// derived values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	cfg.Physics.CompletionThreshold = clamped[0]
	cfg.Physics.StuckThreshold = clamped[1]
	cfg.Physics.StuckLimit = stuckLimit
	cfg.Physics.MaxIterations = int(clamped[2])
	return cfg.Derive()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Physics.CompletionThreshold,
		cfg.Physics.StuckThreshold,
		float64(cfg.Physics.MaxIterations),
	}
}
