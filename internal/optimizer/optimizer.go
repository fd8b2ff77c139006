// Package optimizer sizes a hollow steel tube carrying an axial force and a
// bending moment, minimizing cross-sectional area subject to wall thickness,
// safety margin and diameter-to-thickness constraints.
package optimizer

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gotube/internal/section"
	"github.com/alexiusacademia/gotube/internal/solver"
)

const (
	// MinDiamOverThickness and MaxDiamOverThickness bound how thin-walled a
	// tube may be relative to its diameter, a manufacturability and
	// buckling-resistance proxy.
	MinDiamOverThickness = 2
	MaxDiamOverThickness = 25
)

// Config holds the bounds and thresholds for one sizing run.
type Config struct {
	// Constraint thresholds
	MinThickness    float64 // mm
	MinSafetyMargin float64 // unitless

	// Design variable bounds (m)
	InnerDiamMin float64
	InnerDiamMax float64
	OuterDiamMin float64
	OuterDiamMax float64

	// Initial guess (m). Fixed defaults, not derived from the load case;
	// loads far from the defaults' tuning point may need a reseed.
	InitialInner float64
	InitialOuter float64
}

// DefaultConfig returns the standard bounds, thresholds and initial guess.
func DefaultConfig() Config {
	return Config{
		MinThickness:    1,
		MinSafetyMargin: 0,
		InnerDiamMin:    0.005,
		InnerDiamMax:    0.5,
		OuterDiamMin:    0.01,
		OuterDiamMax:    0.6,
		InitialInner:    0.060,
		InitialOuter:    0.100,
	}
}

// Result holds the sized tube. Lengths are reported in millimetres rounded
// to 3 decimals; the safety margin is rounded to 4 decimals. When Converged
// is false the fields still carry the best iterate found.
type Result struct {
	// Rounded reporting values
	InnerDiam    float64 // mm
	OuterDiam    float64 // mm
	Thickness    float64 // mm
	SafetyMargin float64

	// Unrounded quantities at the final point
	Area              float64 // m²
	DiamOverThickness float64

	// Status
	Converged  bool
	Iterations int
}

// Runner drives sizing runs for a fixed loading. Each Run builds a fresh
// problem instance, so a Runner is safe for sequential reuse and distinct
// Runners may solve concurrently.
type Runner struct {
	logger  *zap.Logger
	loading section.Loading
}

// NewRunner constructs a Runner for the provided loading. A nil logger is
// replaced with a no-op logger.
func NewRunner(logger *zap.Logger, loading section.Loading) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, loading: loading}
}

// Run sizes the tube under the runner's loading. Non-convergence is not an
// error: the returned result carries the last iterate with Converged=false.
// An error is returned only for a malformed configuration.
func (r *Runner) Run(cfg Config) (*Result, error) {
	if cfg.InnerDiamMin >= cfg.InnerDiamMax {
		return nil, fmt.Errorf("inverted inner diameter bounds: [%g, %g]", cfg.InnerDiamMin, cfg.InnerDiamMax)
	}
	if cfg.OuterDiamMin >= cfg.OuterDiamMax {
		return nil, fmt.Errorf("inverted outer diameter bounds: [%g, %g]", cfg.OuterDiamMin, cfg.OuterDiamMax)
	}

	// The solve runs in millimetres: reporting wants mm anyway, and the
	// mm scale keeps the objective and constraint gradients comparable,
	// which the quasi-Newton inner solves reward.
	loading := r.loading
	evaluate := func(x []float64) section.Properties {
		return section.Evaluate(section.Tube{InnerDiam: x[0] / 1000, OuterDiam: x[1] / 1000}, loading)
	}

	problem := solver.Problem{
		Objective: func(x []float64) float64 { return evaluate(x).Area },
		Constraints: []solver.Constraint{
			{Func: func(x []float64) float64 { return evaluate(x).Thickness * 1000 }, Lower: cfg.MinThickness, Upper: math.Inf(1)},
			{Func: func(x []float64) float64 { return evaluate(x).SafetyMargin }, Lower: cfg.MinSafetyMargin, Upper: math.Inf(1)},
			{Func: func(x []float64) float64 { return evaluate(x).DiamOverThickness }, Lower: MinDiamOverThickness, Upper: MaxDiamOverThickness},
		},
		Lower: []float64{cfg.InnerDiamMin * 1000, cfg.OuterDiamMin * 1000},
		Upper: []float64{cfg.InnerDiamMax * 1000, cfg.OuterDiamMax * 1000},
	}

	solution := solver.Solve(problem, []float64{cfg.InitialInner * 1000, cfg.InitialOuter * 1000}, solver.Settings{
		Logger: r.logger,
	})

	final := evaluate(solution.X)
	result := &Result{
		InnerDiam:         roundTo(solution.X[0], 3),
		OuterDiam:         roundTo(solution.X[1], 3),
		Thickness:         roundTo(final.Thickness*1000, 3),
		SafetyMargin:      roundTo(final.SafetyMargin, 4),
		Area:              final.Area,
		DiamOverThickness: final.DiamOverThickness,
		Converged:         solution.Converged,
		Iterations:        solution.Iterations,
	}

	r.logger.Info("tube sizing finished",
		zap.Float64("axialForce", loading.AxialForce),
		zap.Float64("bendingMoment", loading.BendingMoment),
		zap.Float64("innerDiamMM", result.InnerDiam),
		zap.Float64("outerDiamMM", result.OuterDiam),
		zap.Float64("thicknessMM", result.Thickness),
		zap.Float64("safetyMargin", result.SafetyMargin),
		zap.Float64("areaM2", result.Area),
		zap.Int("iterations", result.Iterations),
		zap.Bool("converged", result.Converged),
	)

	return result, nil
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
