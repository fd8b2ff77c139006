package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gotube/internal/material"
)

func TestEvaluateDeterminism(t *testing.T) {
	tube := Tube{InnerDiam: 0.060, OuterDiam: 0.100}
	load := Loading{AxialForce: 10e3, BendingMoment: 5e3}

	first := Evaluate(tube, load)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(tube, load), "evaluation must be bit-identical across calls")
	}
}

func TestEvaluateGeometricIdentities(t *testing.T) {
	cases := []struct {
		name  string
		inner float64
		outer float64
	}{
		{"thick wall", 0.020, 0.100},
		{"thin wall", 0.095, 0.100},
		{"small tube", 0.008, 0.010},
		{"large tube", 0.400, 0.600},
	}

	load := Loading{AxialForce: 1e3, BendingMoment: 2e3}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Evaluate(Tube{InnerDiam: tc.inner, OuterDiam: tc.outer}, load)

			wantThickness := (tc.outer - tc.inner) / 2
			assert.Equal(t, wantThickness, p.Thickness)
			assert.InEpsilon(t, tc.outer/wantThickness, p.DiamOverThickness, 1e-12)
			assert.InEpsilon(t, 0.25*math.Pi*(tc.outer*tc.outer-tc.inner*tc.inner), p.Area, 1e-12)
		})
	}
}

func TestEvaluateAreaMonotonicInOuterDiam(t *testing.T) {
	const inner = 0.050
	load := Loading{}

	prev := Evaluate(Tube{InnerDiam: inner, OuterDiam: 0.051}, load).Area
	for outer := 0.052; outer < 0.200; outer += 0.001 {
		area := Evaluate(Tube{InnerDiam: inner, OuterDiam: outer}, load).Area
		require.Greater(t, area, prev, "area must strictly increase with outer diameter (outer=%.3f)", outer)
		prev = area
	}
}

func TestEvaluateZeroLoad(t *testing.T) {
	p := Evaluate(Tube{InnerDiam: 0.060, OuterDiam: 0.100}, Loading{})

	// With no loads, the smoothed combined stress collapses to sqrt(ε).
	assert.InEpsilon(t, math.Sqrt(StressSmoothing), p.CombinedStress, 1e-12)
	assert.InEpsilon(t, material.YieldStrength/math.Sqrt(StressSmoothing)-1, p.SafetyMargin, 1e-12)
	assert.Greater(t, p.SafetyMargin, 1e9, "zero-load margin should be astronomically high")
}

func TestEvaluateStressBalance(t *testing.T) {
	tube := Tube{InnerDiam: 0.060, OuterDiam: 0.100}

	// Margin must shrink as the bending moment grows.
	low := Evaluate(tube, Loading{AxialForce: 10e3, BendingMoment: 1e3})
	high := Evaluate(tube, Loading{AxialForce: 10e3, BendingMoment: 50e3})
	assert.Greater(t, low.SafetyMargin, high.SafetyMargin)

	// Combined stress is at least the magnitude of the summed components.
	sum := low.AxialStress + low.BendingStress
	assert.GreaterOrEqual(t, low.CombinedStress, math.Abs(sum))
}

func TestEvaluateDegenerateGeometryPropagates(t *testing.T) {
	load := Loading{AxialForce: 10e3, BendingMoment: 5e3}

	// Inverted geometry: negative thickness flows through, no panic, no error.
	p := Evaluate(Tube{InnerDiam: 0.100, OuterDiam: 0.060}, load)
	assert.Negative(t, p.Thickness)
	assert.Negative(t, p.DiamOverThickness)

	// Zero thickness: division by zero propagates as non-finite values.
	p = Evaluate(Tube{InnerDiam: 0.100, OuterDiam: 0.100}, load)
	assert.True(t, math.IsInf(p.DiamOverThickness, 1))
}

func TestTubeValidate(t *testing.T) {
	assert.NoError(t, Tube{InnerDiam: 0.060, OuterDiam: 0.100}.Validate())

	var verr *ValidationError
	err := Tube{InnerDiam: 0.100, OuterDiam: 0.060}.Validate()
	require.Error(t, err)
	assert.ErrorAs(t, err, &verr)

	assert.Error(t, Tube{InnerDiam: -0.01, OuterDiam: 0.060}.Validate())
	assert.Error(t, Tube{InnerDiam: 0.01, OuterDiam: 0}.Validate())
	assert.Error(t, Tube{InnerDiam: 0.05, OuterDiam: 0.05}.Validate())
}
