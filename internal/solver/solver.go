// Package solver implements a small gradient-based solver for inequality
// constrained nonlinear programs of the form
//
//	minimize f(x) subject to
//	  - lᵢ ≤ cᵢ(x) ≤ uᵢ  (general constraints)
//	  - Lⱼ ≤ xⱼ ≤ Uⱼ    (variable bounds)
//
// The constraints are handled by an augmented Lagrangian: each outer
// iteration minimizes a smooth penalized objective with L-BFGS, then updates
// the multiplier estimates and, when feasibility stalls, grows the penalty.
// Variable bounds are folded into the constraint set the way SQP codes
// augment the constraint matrix with ±I rows, and the final iterate is
// projected onto the box. Derivatives are approximated by central finite
// differences unless the problem supplies its own gradient.
//
// Non-convergence is never an error: Solve always returns the best iterate
// found together with a Converged flag, and callers are expected to check
// the flag.
package solver

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// Constraint is an inequality band on a scalar function of the variables.
// Use math.Inf for a missing side.
type Constraint struct {
	Func  func(x []float64) float64
	Lower float64
	Upper float64
}

// Problem defines the objective, constraints and variable bounds.
type Problem struct {
	Objective   func(x []float64) float64
	Constraints []Constraint

	// Variable bounds; both slices must match the dimension of x.
	Lower []float64
	Upper []float64

	// Gradient, when non-nil, replaces the finite-difference approximation
	// of the penalized objective's derivative. The function must write the
	// gradient of fn at x into grad.
	Gradient func(grad []float64, fn func([]float64) float64, x []float64)
}

// Settings controls iteration budgets and tolerances. The zero value selects
// the defaults.
type Settings struct {
	MaxOuterIterations int     // multiplier updates, default 40
	MaxInnerIterations int     // L-BFGS iterations per subproblem, default 200
	Tolerance          float64 // feasibility and stationarity tolerance, default 1e-6
	FDStep             float64 // finite-difference step, default 1e-7
	InitialPenalty     float64 // starting penalty weight, default 10
	Logger             *zap.Logger
}

// Result is the outcome of a solve: the final iterate projected onto the
// variable box, its objective value, the worst remaining constraint
// violation and whether the run satisfied the convergence criteria before
// exhausting its budget.
type Result struct {
	X            []float64
	Objective    float64
	MaxViolation float64
	Iterations   int
	Converged    bool
}

func (s *Settings) applyDefaults() {
	if s.MaxOuterIterations <= 0 {
		s.MaxOuterIterations = 40
	}
	if s.MaxInnerIterations <= 0 {
		s.MaxInnerIterations = 200
	}
	if s.Tolerance <= 0 {
		s.Tolerance = 1e-6
	}
	if s.FDStep <= 0 {
		s.FDStep = 1e-7
	}
	if s.InitialPenalty <= 0 {
		s.InitialPenalty = 10
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
}

// oneSided is a constraint rewritten in the g(x) ≥ 0 convention used by
// SQP-style solvers, with its own multiplier estimate.
type oneSided struct {
	eval       func(x []float64) float64
	multiplier float64
}

// Solve minimizes the problem starting from x0. x0 is not modified.
func Solve(p Problem, x0 []float64, s Settings) Result {
	s.applyDefaults()

	ineqs := gatherConstraints(p)
	penalty := s.InitialPenalty

	x := clamp(append([]float64(nil), x0...), p.Lower, p.Upper)

	// Smooth penalized objective for the current multipliers and penalty.
	// ψ(g) = (max(0, λ−ρg)² − λ²) / 2ρ is the Rockafellar inequality term:
	// zero (up to a constant) when the constraint is comfortably satisfied,
	// quadratic in the violation otherwise, and C¹ at the boundary.
	merged := func(v []float64) float64 {
		val := p.Objective(v)
		for i := range ineqs {
			g := ineqs[i].eval(v)
			if t := ineqs[i].multiplier - penalty*g; t > 0 {
				val += (t*t - ineqs[i].multiplier*ineqs[i].multiplier) / (2 * penalty)
			} else {
				val -= ineqs[i].multiplier * ineqs[i].multiplier / (2 * penalty)
			}
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			// Keep the line search inside the region where the model
			// arithmetic stays finite.
			return math.MaxFloat64 / 4
		}
		return val
	}

	grad := func(dst, v []float64) {
		if p.Gradient != nil {
			p.Gradient(dst, merged, v)
			return
		}
		fd.Gradient(dst, merged, v, &fd.Settings{
			Formula: fd.Central,
			Step:    s.FDStep,
		})
	}

	prevObjective := math.Inf(1)
	prevViolation := math.Inf(1)

	res := Result{}
	for iter := 1; iter <= s.MaxOuterIterations; iter++ {
		res.Iterations = iter

		x = minimizeSubproblem(merged, grad, x, s.MaxInnerIterations)

		objective := p.Objective(x)
		violation := 0.0
		for i := range ineqs {
			if g := ineqs[i].eval(x); g < 0 {
				violation = math.Max(violation, -g)
			}
		}

		s.Logger.Debug("outer iteration",
			zap.Int("iteration", iter),
			zap.Float64("objective", objective),
			zap.Float64("maxViolation", violation),
			zap.Float64("penalty", penalty),
		)

		// Convergence needs feasibility plus a stalled objective, mirroring
		// the feasibility/optimality/step checks of SLSQP implementations.
		if violation <= s.Tolerance &&
			math.Abs(objective-prevObjective) <= s.Tolerance*(1+math.Abs(objective)) {
			res.Converged = true
			break
		}

		// First-order multiplier update: λ ← max(0, λ − ρ g).
		for i := range ineqs {
			g := ineqs[i].eval(x)
			ineqs[i].multiplier = math.Max(0, ineqs[i].multiplier-penalty*g)
		}

		// Grow the penalty when infeasibility is not shrinking fast enough.
		if violation > s.Tolerance && violation > 0.25*prevViolation {
			penalty = math.Min(penalty*10, 1e10)
		}

		prevObjective = objective
		prevViolation = violation
	}

	// Report the iterate projected onto the box. When the run converged the
	// bound violation is below tolerance, so the projection is negligible.
	res.X = clamp(x, p.Lower, p.Upper)
	res.Objective = p.Objective(res.X)
	res.MaxViolation = 0
	for _, c := range p.Constraints {
		v := c.Func(res.X)
		if !math.IsInf(c.Lower, -1) && v < c.Lower {
			res.MaxViolation = math.Max(res.MaxViolation, c.Lower-v)
		}
		if !math.IsInf(c.Upper, 1) && v > c.Upper {
			res.MaxViolation = math.Max(res.MaxViolation, v-c.Upper)
		}
	}
	return res
}

// minimizeSubproblem runs the smooth inner minimization. The candidate is
// kept only if it actually improves the penalized objective, so
// iteration-limit and line-search terminations are all handled the same
// way: a failed inner solve falls back to the incoming iterate and the
// outer loop then reports non-convergence through the violation and
// stationarity checks.
func minimizeSubproblem(fn func([]float64) float64, grad func(dst, x []float64), x0 []float64, maxIter int) []float64 {
	problem := optimize.Problem{
		Func: fn,
		Grad: grad,
	}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
	}

	result, _ := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if result == nil || len(result.Location.X) != len(x0) {
		return append([]float64(nil), x0...)
	}
	if fn(result.Location.X) > fn(x0) {
		return append([]float64(nil), x0...)
	}
	return result.Location.X
}

// gatherConstraints rewrites each band lᵢ ≤ cᵢ(x) ≤ uᵢ as up to two
// one-sided constraints g(x) ≥ 0, skipping infinite sides, and augments the
// set with the variable bounds.
func gatherConstraints(p Problem) []oneSided {
	var out []oneSided
	for _, c := range p.Constraints {
		c := c
		if !math.IsInf(c.Lower, -1) {
			lower := c.Lower
			out = append(out, oneSided{eval: func(x []float64) float64 { return c.Func(x) - lower }})
		}
		if !math.IsInf(c.Upper, 1) {
			upper := c.Upper
			out = append(out, oneSided{eval: func(x []float64) float64 { return upper - c.Func(x) }})
		}
	}
	for j := range p.Lower {
		j := j
		if !math.IsInf(p.Lower[j], -1) {
			out = append(out, oneSided{eval: func(x []float64) float64 { return x[j] - p.Lower[j] }})
		}
	}
	for j := range p.Upper {
		j := j
		if !math.IsInf(p.Upper[j], 1) {
			out = append(out, oneSided{eval: func(x []float64) float64 { return p.Upper[j] - x[j] }})
		}
	}
	return out
}

// clamp projects x onto the variable box in place and returns it.
func clamp(x, lower, upper []float64) []float64 {
	for i := range x {
		if i < len(lower) && x[i] < lower[i] {
			x[i] = lower[i]
		}
		if i < len(upper) && x[i] > upper[i] {
			x[i] = upper[i]
		}
	}
	return x
}
