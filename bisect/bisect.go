// Package bisect provides the two bracket-halving primitives used by the
// piecewise-linear approximation engine.
//
// Both helpers shrink a bracket [lo, hi] until its width drops below a
// tolerance. They differ in their convergence criterion:
//   - Sign converges on the point where a predicate flips
//   - Threshold converges on the point where a function crosses a limit
//
// Every call carries a hard iteration cap. The searches that reach these
// helpers are monotone over their brackets, so hitting the cap indicates a
// broken invariant rather than a slow input, and it is surfaced as an error
// instead of looping forever.
package bisect

import (
	"errors"
	"fmt"
)

// MaxIterations bounds a single bisection. At the tightest tolerance used by
// the engine (1e-14 over a bracket of width ln 2) convergence takes about 45
// halvings, so 200 leaves a wide margin.
const MaxIterations = 200

// ErrNoConvergence reports a bracket that failed to shrink below its
// tolerance within MaxIterations.
var ErrNoConvergence = errors.New("bisect: bracket did not converge")

// Sign locates the crossing point of a predicate on [lo, hi].
//
// above(x) must be true on the upper side of the crossing and false on the
// lower side. The bracket is halved toward the crossing until hi-lo <= tol
// and the last evaluated midpoint is returned.
func Sign(lo, hi, tol float64, above func(x float64) bool) (float64, error) {
	mid := (lo + hi) / 2
	for i := 0; hi-lo > tol; i++ {
		if i >= MaxIterations {
			return 0, fmt.Errorf("%w: sign search stalled at [%g, %g]", ErrNoConvergence, lo, hi)
		}
		mid = (lo + hi) / 2
		if above(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return mid, nil
}

// Threshold locates the point on [lo, hi] where f crosses limit.
//
// f must be decreasing across the bracket: above limit at lo, at or below it
// at hi. The converged lower bound is returned, so the result sits on the
// side of the crossing where f still exceeds the limit.
func Threshold(lo, hi, tol float64, f func(x float64) float64, limit float64) (float64, error) {
	for i := 0; hi-lo > tol; i++ {
		if i >= MaxIterations {
			return 0, fmt.Errorf("%w: threshold search stalled at [%g, %g]", ErrNoConvergence, lo, hi)
		}
		mid := (lo + hi) / 2
		if f(mid) <= limit {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, nil
}
