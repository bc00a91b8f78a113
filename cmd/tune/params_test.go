package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/slide/config"
	"github.com/pthm-cable/slide/fixed"
)

func TestParamVector_RoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		assert.InDelta(t, def[i], back[i], 1e-9, pv.Specs[i].Name)
	}
}

func TestParamVector_ClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-1, 1, 100})

	assert.Equal(t, pv.Specs[0].Min, got[0])
	assert.Equal(t, pv.Specs[1].Max, got[1])
	assert.Equal(t, 32.0, got[2])
	assert.Equal(t, 7.0, pv.Clamp([]float64{0, 0, 6.6})[2])
}

func TestParamVector_DefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	assert.Equal(t, pv.DefaultVector(), pv.ExtractFromConfig(cfg))
}

func TestParamVector_ApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Physics.StuckLimit = 6

	pv := NewParamVector()
	require.NoError(t, pv.ApplyToConfig(cfg, []float64{0.125, 0.03125, 8}))

	assert.Equal(t, 8, cfg.Physics.MaxIterations)
	assert.Equal(t, fixed.FromRatio(1, 8), cfg.Derived.CompletionThreshold)
	assert.Equal(t, fixed.FromRatio(1, 32), cfg.Derived.StuckThreshold)
}

func TestParamVector_StuckLimitIsNotSearched(t *testing.T) {
	pv := NewParamVector()
	for _, spec := range pv.Specs {
		assert.NotEqual(t, "stuck_limit", spec.Name)
	}

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Physics.StuckLimit = 6
	require.NoError(t, pv.ApplyToConfig(cfg, pv.DefaultVector()))
	assert.Equal(t, 3, cfg.Physics.StuckLimit)
}
