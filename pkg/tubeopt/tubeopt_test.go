package tubeopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gotube/internal/optimizer"
)

func TestOptimizeBoundaryCase(t *testing.T) {
	opt := New(10e3, 5e3)

	converged, dims := opt.Optimize(0.05, 3)

	require.True(t, converged)
	assert.Greater(t, dims.InnerDiam, 0.0)
	assert.Greater(t, dims.OuterDiam, dims.InnerDiam)
	assert.GreaterOrEqual(t, dims.Thickness, 3-2e-3)
	assert.GreaterOrEqual(t, dims.SafetyMargin, 0.0499)
}

func TestOptimizeZeroLoads(t *testing.T) {
	opt := New(0, 0)

	converged, dims := opt.Optimize(0, 1)

	require.True(t, converged)
	assert.Greater(t, dims.SafetyMargin, 1e6, "unloaded tube has an astronomical margin")
	assert.Greater(t, dims.OuterDiam, dims.InnerDiam)
}

func TestOptimizeInfeasibleLoads(t *testing.T) {
	opt := New(10e3, 1e9)

	converged, dims := opt.Optimize(0.5, 1)

	assert.False(t, converged)
	assert.Greater(t, dims.OuterDiam, 0.0, "best-effort dimensions are still reported")
}

func TestOptimizeWithConfig(t *testing.T) {
	opt := New(10e3, 5e3).WithLogger(zap.NewNop())

	cfg := optimizer.DefaultConfig()
	cfg.MinThickness = 3
	cfg.MinSafetyMargin = 0.05

	res, err := opt.OptimizeWithConfig(cfg)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Positive(t, res.Iterations)

	cfg.OuterDiamMin, cfg.OuterDiamMax = cfg.OuterDiamMax, cfg.OuterDiamMin
	_, err = opt.OptimizeWithConfig(cfg)
	assert.Error(t, err)
}
