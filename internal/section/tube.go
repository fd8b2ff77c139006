package section

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gotube/internal/material"
)

// StressSmoothing is added under the square root of the combined stress so
// the stress surface stays differentiable where axial and bending stress
// cancel exactly. The value is in Pa² and is negligible against real stress
// magnitudes.
const StressSmoothing = 0.001

// Tube represents a hollow circular section defined by its diameters
type Tube struct {
	InnerDiam float64 // m
	OuterDiam float64 // m
}

// Loading holds the loads applied to the tube, fixed for one sizing run
type Loading struct {
	AxialForce    float64 // N
	BendingMoment float64 // N-m
}

// Properties holds calculated section and stress quantities
type Properties struct {
	// Geometry
	Area              float64 // Cross-sectional area (m²)
	Thickness         float64 // Wall thickness (m)
	DiamOverThickness float64 // Outer diameter to wall thickness ratio
	MomentOfInertia   float64 // Second moment of area (m⁴)

	// Stresses (Pa)
	AxialStress    float64
	BendingStress  float64
	CombinedStress float64

	// Margin of safety against yield; >= 0 means the section does not yield
	SafetyMargin float64
}

// Evaluate computes section properties and stress margins for a tube under
// the given loading. It is a pure function: identical inputs always produce
// identical outputs. It deliberately does not guard against a non-positive
// wall thickness; degenerate geometry propagates through the arithmetic and
// it is the caller's job to keep the geometry sensible.
func Evaluate(t Tube, l Loading) Properties {
	var p Properties

	// Section properties
	p.Area = 0.25 * math.Pi * (t.OuterDiam*t.OuterDiam - t.InnerDiam*t.InnerDiam)
	p.Thickness = (t.OuterDiam - t.InnerDiam) / 2
	p.DiamOverThickness = t.OuterDiam / p.Thickness
	p.MomentOfInertia = math.Pi / 4 * (math.Pow(t.OuterDiam/2, 4) - math.Pow(t.InnerDiam/2, 4))
	radius := t.OuterDiam / 2

	// Stress components
	p.AxialStress = l.AxialForce / p.Area
	p.BendingStress = l.BendingMoment * radius / p.MomentOfInertia

	// Combined stress, smoothed near the cancellation point
	sum := p.AxialStress + p.BendingStress
	p.CombinedStress = math.Sqrt(sum*sum + StressSmoothing)

	p.SafetyMargin = material.YieldStrength/p.CombinedStress - 1

	return p
}

// Validate checks that the tube geometry is physically meaningful. The
// optimizer never calls this; it is for callers evaluating a fixed geometry.
func (t Tube) Validate() error {
	if t.InnerDiam <= 0 {
		return &ValidationError{fmt.Sprintf("inner diameter must be positive, got %.4f m", t.InnerDiam)}
	}
	if t.OuterDiam <= 0 {
		return &ValidationError{fmt.Sprintf("outer diameter must be positive, got %.4f m", t.OuterDiam)}
	}
	if t.OuterDiam <= t.InnerDiam {
		return &ValidationError{fmt.Sprintf("outer diameter (%.4f m) must exceed inner diameter (%.4f m)", t.OuterDiam, t.InnerDiam)}
	}
	return nil
}

// ValidationError represents an invalid tube definition
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
