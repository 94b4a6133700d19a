// Package tangent builds supporting half-planes of the two-variable
// log-sum-exp function f(x, y) = log(exp(x) + exp(y)).
//
// A supporting half-plane at a point is the standard gradient construction
// for convex functions: the normal is the gradient of f at the point and the
// offset places the plane through it. Every facet of the piecewise-linear
// approximation is produced this way, so the facet touches the true function
// at exactly one point and never crosses it.
package tangent

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HalfPlane is one linear inequality of the approximating polytope, in the
// form Normal·(x, y) + Offset. Values are immutable once created.
type HalfPlane struct {
	Normal mgl64.Vec2
	Offset float64
}

// At returns the supporting half-plane of f(x, y) = log(exp(x)+exp(y)) at a
// point on the zero-level boundary exp(x) + exp(y) = 1.
//
// The normal is the gradient (exp(x), exp(y)) / (exp(x)+exp(y)) and the
// offset is -Normal·p, so the plane passes through p. Pure function; the
// input is not validated and is expected to be finite and on or near the
// boundary curve.
func At(p mgl64.Vec2) HalfPlane {
	ex := math.Exp(p.X())
	ey := math.Exp(p.Y())
	normal := mgl64.Vec2{ex, ey}.Mul(1 / (ex + ey))

	return HalfPlane{
		Normal: normal,
		Offset: -normal.Dot(p),
	}
}

// Eval returns Normal·p + Offset, the facet's value at p relative to its
// boundary line. Zero means p lies on the line.
func (h HalfPlane) Eval(p mgl64.Vec2) float64 {
	return h.Normal.Dot(p) + h.Offset
}

// Round returns a copy of h with every coefficient rounded to the given
// number of decimal digits.
func (h HalfPlane) Round(digits int) HalfPlane {
	scale := math.Pow(10, float64(digits))
	round := func(v float64) float64 { return math.Round(v*scale) / scale }

	return HalfPlane{
		Normal: mgl64.Vec2{round(h.Normal.X()), round(h.Normal.Y())},
		Offset: round(h.Offset),
	}
}
