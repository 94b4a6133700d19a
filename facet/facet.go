// Package facet constructs the minimal half-plane polytope whose boundary
// stays within a prescribed error of the log-sum-exp curve.
//
// This is the inverse problem of the approximation engine: instead of fixing
// the number of facets, it fixes the tolerated error and inserts tangent
// facets until the reachable part of the curve is covered.
//
// Algorithm overview:
//  1. Seed the polytope with the vertical asymptote facet [1, 0] and place
//     the working vertex where the error budget meets the axis
//  2. Sign-bisect along the curve for the tangent line passing through the
//     working vertex; insert it as the next facet
//  3. Threshold-bisect along the new facet for the point where its vertical
//     gap to the curve exhausts the error budget; that point is the next
//     working vertex
//  4. When the vertex passes the leftmost reachable x, close the polytope
//     with the horizontal asymptote facet [0, 1] and stop
//
// References:
//   - Hsiung, Kim, Boyd: "Tractable Approximate Robust Geometric
//     Programming" (2008), section on piecewise-linear approximation
package facet

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/chord/bisect"
	"github.com/akmonengine/chord/tangent"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// SolveTolerance is the bracket width at which the two inner bisections
	// (tangent point and next vertex) are considered converged.
	SolveTolerance = 1e-12

	// RoundDigits is the decimal precision of the returned coefficients.
	// Rounding keeps repeated solves bit-identical across platforms.
	RoundDigits = 8

	// BracketScale maps the leftmost reachable x to the bisection bracket's
	// lower bound -M = -BracketScale·|leftmost x|. This is an empirical
	// safety margin, not a derived bound; it only has to keep the bracket
	// left of every tangent point, which it does with two orders of
	// magnitude to spare for the tolerances the engine uses.
	BracketScale = 100

	// MaxFacets caps the insertion loop. The construction converges after
	// finitely many facets for every positive error, so reaching this cap
	// indicates a broken invariant.
	MaxFacets = 4096

	// maxExpArg is the largest argument for which math.Exp stays finite.
	maxExpArg = 709.0
)

// ErrTooManyFacets reports an insertion loop that failed to reach the curve
// boundary within MaxFacets facets.
var ErrTooManyFacets = errors.New("facet: construction exceeded facet cap")

// Solve returns the facets of the minimal polytope whose boundary stays
// within epsilon of the curve log(exp(x)+exp(y)) = 0, for epsilon in
// (0, ln 2). Facets are ordered outermost-first: the horizontal asymptote
// facet [0, 1] first, then the tangent facets from leftmost touch point to
// rightmost, then the vertical asymptote facet [1, 0].
//
// All coefficients are rounded to RoundDigits decimals. An error is returned
// only when a bisection or the insertion loop fails to converge, which for
// valid inputs indicates a broken invariant rather than a property of the
// input.
func Solve(epsilon float64) ([]tangent.HalfPlane, error) {
	// Leftmost x of the curve reachable within the error budget: where the
	// budget boundary meets the axis. By symmetry this is also the y of the
	// starting vertex on the other axis.
	leftmostX := math.Log(math.Expm1(epsilon))
	m := math.Abs(BracketScale * leftmostX)

	facets := []tangent.HalfPlane{{Normal: mgl64.Vec2{1, 0}}}
	vertex := mgl64.Vec2{0, leftmostX}

	for i := 0; i < MaxFacets; i++ {
		// Tangent line through the working vertex. The supporting line at a
		// curve point evaluates positive at the vertex for touch points
		// right of the crossing and negative left of it.
		x, err := bisect.Sign(-m, vertex.X(), SolveTolerance, func(x float64) bool {
			return tangent.At(curvePoint(x)).Eval(vertex) >= 0
		})
		if err != nil {
			return nil, fmt.Errorf("facet %d: %w", len(facets), err)
		}
		touch := curvePoint(x)
		hp := tangent.At(touch)
		facets = append(facets, hp)

		// Walk left along the new facet to where its vertical gap to the
		// curve exhausts the error budget; that is the next vertex. The gap
		// term grows without bound toward -m, so the exponential saturates
		// to +Inf rather than faulting when the facet line climbs past the
		// representable range.
		vx, err := bisect.Threshold(-m, touch.X(), SolveTolerance, func(x float64) float64 {
			return math.Log(math.Exp(x) + expSat(lineY(hp, x)))
		}, epsilon)
		if err != nil {
			return nil, fmt.Errorf("facet %d: %w", len(facets), err)
		}

		if vx <= leftmostX {
			// The reachable range is exhausted; close with the horizontal
			// asymptote facet.
			facets = append(facets, tangent.HalfPlane{Normal: mgl64.Vec2{0, 1}})
			return publish(facets), nil
		}
		vertex = mgl64.Vec2{vx, lineY(hp, vx)}
	}

	return nil, fmt.Errorf("%w (%d) for epsilon=%g", ErrTooManyFacets, MaxFacets, epsilon)
}

// curvePoint returns the point of the boundary curve exp(x)+exp(y) = 1 at
// the given x < 0.
func curvePoint(x float64) mgl64.Vec2 {
	return mgl64.Vec2{x, math.Log1p(-math.Exp(x))}
}

// lineY returns the y coordinate of the half-plane's boundary line at x.
func lineY(h tangent.HalfPlane, x float64) float64 {
	return (-h.Offset - h.Normal.X()*x) / h.Normal.Y()
}

// expSat is a saturating exponential: arguments beyond the finite range of
// float64 yield +Inf instead of a range fault. Part of the solver's numeric
// contract — the threshold bisection only needs the comparison to degrade to
// "budget exhausted" when one exponential term dominates.
func expSat(x float64) float64 {
	if x > maxExpArg {
		return math.Inf(1)
	}
	return math.Exp(x)
}

// publish reverses the accumulated facets into outermost-first order and
// rounds every coefficient. Facets are appended during construction for O(1)
// growth and reversed once here instead of prepending each insertion.
func publish(facets []tangent.HalfPlane) []tangent.HalfPlane {
	for i, j := 0, len(facets)-1; i < j; i, j = i+1, j-1 {
		facets[i], facets[j] = facets[j], facets[i]
	}
	for i := range facets {
		facets[i] = facets[i].Round(RoundDigits)
	}
	return facets
}
