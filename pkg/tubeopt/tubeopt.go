// Package tubeopt sizes a hollow steel tube subject to an axial force and a
// bending moment so that its cross-sectional area is minimized.
//
// The tube wall must satisfy a minimum thickness, a minimum margin of safety
// against yield (350 MPa structural steel) and a diameter-to-thickness ratio
// between 2 and 25. Results are reported in millimetres.
//
//	opt := tubeopt.New(10e3, 5e3)
//	converged, dims := opt.Optimize(0.05, 3)
package tubeopt

import (
	"go.uber.org/zap"

	"github.com/alexiusacademia/gotube/internal/optimizer"
	"github.com/alexiusacademia/gotube/internal/section"
)

// Dimensions is the sized tube: lengths in millimetres rounded to 3
// decimals, safety margin rounded to 4 decimals.
type Dimensions struct {
	InnerDiam    float64 // mm
	OuterDiam    float64 // mm
	Thickness    float64 // mm
	SafetyMargin float64
}

// TubeOptimization sizes a tube for a fixed axial force and bending moment.
type TubeOptimization struct {
	AxialForce    float64 // N
	BendingMoment float64 // N-m

	logger *zap.Logger
}

// New creates a TubeOptimization for the given loads.
func New(axialForce, bendingMoment float64) *TubeOptimization {
	return &TubeOptimization{
		AxialForce:    axialForce,
		BendingMoment: bendingMoment,
		logger:        zap.NewNop(),
	}
}

// WithLogger returns the optimization configured to log solve progress.
func (t *TubeOptimization) WithLogger(logger *zap.Logger) *TubeOptimization {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// Optimize sizes the tube for the given minimum safety margin (unitless) and
// minimum wall thickness (mm). The boolean reports whether the solve
// converged; the dimensions are best-effort either way and callers must
// check the flag.
func (t *TubeOptimization) Optimize(minimumSafetyMargin, minimumThickness float64) (bool, Dimensions) {
	cfg := optimizer.DefaultConfig()
	cfg.MinSafetyMargin = minimumSafetyMargin
	cfg.MinThickness = minimumThickness

	res, err := t.OptimizeWithConfig(cfg)
	if err != nil {
		// DefaultConfig bounds are well-formed; only a caller-mutated config
		// can fail, and that path goes through OptimizeWithConfig.
		return false, Dimensions{}
	}

	return res.Converged, Dimensions{
		InnerDiam:    res.InnerDiam,
		OuterDiam:    res.OuterDiam,
		Thickness:    res.Thickness,
		SafetyMargin: res.SafetyMargin,
	}
}

// OptimizeWithConfig sizes the tube with full control over bounds,
// thresholds and the initial guess.
func (t *TubeOptimization) OptimizeWithConfig(cfg optimizer.Config) (*optimizer.Result, error) {
	runner := optimizer.NewRunner(t.logger, section.Loading{
		AxialForce:    t.AxialForce,
		BendingMoment: t.BendingMoment,
	})
	return runner.Run(cfg)
}
