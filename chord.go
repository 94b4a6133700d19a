// Package chord computes minimal-cardinality piecewise-linear convex
// approximations to the two-variable log-sum-exp function
// f(x, y) = log(exp(x) + exp(y)).
//
// An r-term approximation is a polytope of r half-planes whose pointwise
// maximum bounds f from below (LowerApprox) or above (UpperApprox) with a
// known worst-case error. The engine searches for the error level whose
// minimal facet construction needs exactly r facets, exploiting that the
// facet count is monotonically non-increasing in the tolerated error.
//
// The construction follows the robust geometric programming literature:
//
// References:
//   - Hsiung, Kim, Boyd: "Tractable Approximate Robust Geometric
//     Programming" (2008)
package chord

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/chord/bisect"
	"github.com/akmonengine/chord/facet"
	"github.com/akmonengine/chord/tangent"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

const (
	// ErrorTolerance is the bracket width at which the outer bisection on
	// the approximation error is considered converged.
	ErrorTolerance = 1e-14

	// MaxError is ln 2, the error of the single-facet approximation; no
	// approximation with r >= 2 terms can do worse, so it brackets the
	// search from above.
	MaxError = math.Ln2

	// ValidatedTerms is the largest term count the search brackets and
	// tolerances were tuned against. Larger values are accepted but their
	// results are not numerically validated.
	ValidatedTerms = 100
)

// ErrInvalidTerms reports a term count below the minimum of 2.
var ErrInvalidTerms = errors.New("chord: term count must be at least 2")

// ErrApproximationFailed reports a broken convergence invariant: a bisection
// or the facet construction failed to converge for a valid term count.
var ErrApproximationFailed = errors.New("chord: approximation failed to converge")

// Approximation is an r-term piecewise-linear convex approximation of
// log-sum-exp. Row i of A and entry i of B are parallel and define facet i;
// the approximated value at a point is the maximum over facets. Err is the
// worst-case deviation from the true function.
type Approximation struct {
	A   []mgl64.Vec2
	B   []float64
	Err float64
}

// Terms returns the number of facets r.
func (a Approximation) Terms() int {
	return len(a.A)
}

// Eval returns the approximation's value at (x, y): the maximum of
// A[i]·(x, y) + B[i] over all facets.
func (a Approximation) Eval(x, y float64) float64 {
	p := mgl64.Vec2{x, y}
	v := math.Inf(-1)
	for i, row := range a.A {
		if w := row.Dot(p) + a.B[i]; w > v {
			v = w
		}
	}
	return v
}

// Dense returns the facet coefficients in matrix form, an r×2 matrix and a
// length-r vector, for callers feeding them into numeric tooling.
func (a Approximation) Dense() (*mat.Dense, *mat.VecDense) {
	A := mat.NewDense(len(a.A), 2, nil)
	b := mat.NewVecDense(len(a.B), nil)
	for i, row := range a.A {
		A.SetRow(i, []float64{row.X(), row.Y()})
		b.SetVec(i, a.B[i])
	}
	return A, b
}

// LowerApprox returns the best r-term piecewise-linear convex lower
// approximation to log-sum-exp together with its approximation error.
//
// r == 2 is the closed-form boundary case: the two asymptote facets, whose
// coefficients are fixed by definition rather than searched, reported with
// zero searched error. For r > 2 the error is bisected over (0, MaxError]:
// a trial error producing more than r facets is too small, fewer or exactly
// r is large enough. The converged upper bound is solved once more to
// produce the returned polytope and is reported as the achieved error.
//
// r < 2 is rejected with ErrInvalidTerms. Term counts above ValidatedTerms
// are accepted but outside the numerically validated range.
func LowerApprox(r int) (Approximation, error) {
	if r < 2 {
		return Approximation{}, fmt.Errorf("%w: got %d", ErrInvalidTerms, r)
	}
	if r == 2 {
		return Approximation{
			A: []mgl64.Vec2{{0, 1}, {1, 0}},
			B: []float64{0, 0},
		}, nil
	}

	// Outer bisection on the error. Inline rather than in package bisect
	// because the trial evaluation is fallible and its result feeds both
	// branches of the bracket update.
	lo, hi := 0.0, MaxError
	for i := 0; hi-lo > ErrorTolerance; i++ {
		if i >= bisect.MaxIterations {
			return Approximation{}, fmt.Errorf("%w: error bisection stalled at [%g, %g] for r=%d", ErrApproximationFailed, lo, hi, r)
		}
		mid := (lo + hi) / 2
		facets, err := facet.Solve(mid)
		if err != nil {
			return Approximation{}, fmt.Errorf("%w: %v", ErrApproximationFailed, err)
		}
		if len(facets) > r {
			lo = mid
		} else {
			hi = mid
		}
	}

	facets, err := facet.Solve(hi)
	if err != nil {
		return Approximation{}, fmt.Errorf("%w: %v", ErrApproximationFailed, err)
	}
	if len(facets) != r {
		return Approximation{}, fmt.Errorf("%w: converged error %g yields %d facets, want %d", ErrApproximationFailed, hi, len(facets), r)
	}

	return fromFacets(facets, hi), nil
}

// UpperApprox returns the best r-term piecewise-linear convex upper
// approximation: the lower approximation with its error added to every
// offset, shifting the polytope up by exactly the error so it bounds the
// function from above with the same worst-case deviation.
func UpperApprox(r int) (Approximation, error) {
	a, err := LowerApprox(r)
	if err != nil {
		return Approximation{}, err
	}
	for i := range a.B {
		a.B[i] += a.Err
	}
	return a, nil
}

func fromFacets(facets []tangent.HalfPlane, achieved float64) Approximation {
	a := Approximation{
		A:   make([]mgl64.Vec2, len(facets)),
		B:   make([]float64, len(facets)),
		Err: achieved,
	}
	for i, f := range facets {
		a.A[i] = f.Normal
		a.B[i] = f.Offset
	}
	return a
}
