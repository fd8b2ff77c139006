package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gotube/internal/section"
)

// relTol matches the solver's feasibility tolerance with headroom for the
// rounded reporting values.
const relTol = 1e-4

func TestRunBoundaryScenario(t *testing.T) {
	runner := NewRunner(zap.NewNop(), section.Loading{AxialForce: 10e3, BendingMoment: 5e3})

	cfg := DefaultConfig()
	cfg.MinSafetyMargin = 0.05
	cfg.MinThickness = 3

	res, err := runner.Run(cfg)
	require.NoError(t, err)
	require.True(t, res.Converged, "boundary scenario is feasible and must converge")

	assert.Greater(t, res.InnerDiam, 0.0)
	assert.Greater(t, res.OuterDiam, res.InnerDiam)
	assert.GreaterOrEqual(t, res.Thickness, 3-2e-3, "thickness within solver tolerance of the 3 mm floor")
	assert.GreaterOrEqual(t, res.SafetyMargin, 0.0499)
	assert.GreaterOrEqual(t, res.DiamOverThickness, MinDiamOverThickness*(1-relTol))
	assert.LessOrEqual(t, res.DiamOverThickness, MaxDiamOverThickness*(1+relTol))

	initialArea := section.Evaluate(
		section.Tube{InnerDiam: cfg.InitialInner, OuterDiam: cfg.InitialOuter},
		section.Loading{},
	).Area
	assert.Less(t, res.Area, initialArea, "optimized area must beat the initial guess")
}

func TestRunZeroLoadShrinksToGeometricLimits(t *testing.T) {
	runner := NewRunner(nil, section.Loading{})

	res, err := runner.Run(DefaultConfig())
	require.NoError(t, err)
	require.True(t, res.Converged)

	// With no loads the margin is astronomically high, so the active
	// constraints are geometric: the tube shrinks to the outer diameter
	// bound at the minimum wall thickness.
	assert.Greater(t, res.SafetyMargin, 1e6)
	assert.InDelta(t, 10, res.OuterDiam, 0.5)
	assert.InDelta(t, 1, res.Thickness, 0.1)
	assert.GreaterOrEqual(t, res.DiamOverThickness, float64(MinDiamOverThickness)-relTol)
	assert.LessOrEqual(t, res.DiamOverThickness, float64(MaxDiamOverThickness)+relTol)
}

func TestRunInfeasibleLoadReportsBestEffort(t *testing.T) {
	// No geometry within the bounds survives a 1e9 N-m moment with margin
	// 0.5; the contract is best-effort values with Converged=false.
	runner := NewRunner(zap.NewNop(), section.Loading{AxialForce: 10e3, BendingMoment: 1e9})

	cfg := DefaultConfig()
	cfg.MinSafetyMargin = 0.5

	res, err := runner.Run(cfg)
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Greater(t, res.OuterDiam, 0.0, "best-effort fields must still be populated")
	assert.Greater(t, res.Thickness, 0.0)
}

func TestRunNegativeLoadsFlowThrough(t *testing.T) {
	// Non-positive loads are mathematically valid and must not error.
	runner := NewRunner(zap.NewNop(), section.Loading{AxialForce: -5e3, BendingMoment: 0})

	res, err := runner.Run(DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Greater(t, res.OuterDiam, res.InnerDiam)
}

func TestRunRejectsInvertedBounds(t *testing.T) {
	runner := NewRunner(zap.NewNop(), section.Loading{AxialForce: 1e3})

	cfg := DefaultConfig()
	cfg.InnerDiamMin, cfg.InnerDiamMax = cfg.InnerDiamMax, cfg.InnerDiamMin
	_, err := runner.Run(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.OuterDiamMin, cfg.OuterDiamMax = cfg.OuterDiamMax, cfg.OuterDiamMin
	_, err = runner.Run(cfg)
	assert.Error(t, err)
}

func TestRunIsRepeatable(t *testing.T) {
	// No state survives a run; two runs from the same inputs must agree.
	runner := NewRunner(zap.NewNop(), section.Loading{AxialForce: 10e3, BendingMoment: 5e3})

	cfg := DefaultConfig()
	cfg.MinSafetyMargin = 0.05
	cfg.MinThickness = 3

	first, err := runner.Run(cfg)
	require.NoError(t, err)
	second, err := runner.Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1.0, cfg.MinThickness)
	assert.Equal(t, 0.0, cfg.MinSafetyMargin)
	assert.Equal(t, 0.060, cfg.InitialInner)
	assert.Equal(t, 0.100, cfg.InitialOuter)
	assert.Equal(t, 0.005, cfg.InnerDiamMin)
	assert.Equal(t, 0.6, cfg.OuterDiamMax)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 12.346, roundTo(12.34567, 3))
	assert.Equal(t, 0.0501, roundTo(0.05012, 4))
	assert.Equal(t, -1.234, roundTo(-1.2341, 3))
}
