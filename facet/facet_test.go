package facet

import (
	"math"
	"testing"

	"github.com/akmonengine/chord/tangent"
	"github.com/go-gl/mathgl/mgl64"
)

func TestSolveStructure(t *testing.T) {
	tests := []struct {
		name    string
		epsilon float64
	}{
		{name: "loose_tolerance", epsilon: 0.3},
		{name: "medium_tolerance", epsilon: 0.1},
		{name: "tight_tolerance", epsilon: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facets, err := Solve(tt.epsilon)
			if err != nil {
				t.Fatalf("Solve(%g) returned error: %v", tt.epsilon, err)
			}
			if len(facets) < 3 {
				t.Fatalf("Solve(%g) produced %d facets, expected at least 3", tt.epsilon, len(facets))
			}

			// Outermost-first: horizontal asymptote facet first, vertical last
			first := facets[0]
			if first.Normal != (mgl64.Vec2{0, 1}) || first.Offset != 0 {
				t.Errorf("first facet = %+v, expected horizontal asymptote [0 1], 0", first)
			}
			last := facets[len(facets)-1]
			if last.Normal != (mgl64.Vec2{1, 0}) || last.Offset != 0 {
				t.Errorf("last facet = %+v, expected vertical asymptote [1 0], 0", last)
			}

			// Interior facets are tangent planes: gradient components of a
			// curve point, so they are positive and sum to 1
			for i := 1; i < len(facets)-1; i++ {
				f := facets[i]
				if f.Normal.X() <= 0 || f.Normal.Y() <= 0 {
					t.Errorf("facet %d normal %v has non-positive component", i, f.Normal)
				}
				if sum := f.Normal.X() + f.Normal.Y(); math.Abs(sum-1) > 1e-7 {
					t.Errorf("facet %d normal components sum to %g, expected 1", i, sum)
				}
			}

			// Touch points move rightward through the returned order
			for i := 2; i < len(facets)-1; i++ {
				// Steeper facets (larger x component) touch further right
				if facets[i].Normal.X() <= facets[i-1].Normal.X() {
					t.Errorf("facet %d normal %v not steeper than facet %d normal %v",
						i, facets[i].Normal, i-1, facets[i-1].Normal)
				}
			}
		})
	}
}

// TestSolveSupportsCurve verifies every facet stays at or below the curve:
// the polytope is a lower approximation, so no facet may rise above the
// zero-level set anywhere.
func TestSolveSupportsCurve(t *testing.T) {
	facets, err := Solve(0.05)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}

	for x := -9.0; x < -0.001; x += 0.03 {
		q := curvePoint(x)
		for i, f := range facets {
			if v := f.Eval(q); v > 1e-6 {
				t.Errorf("facet %d rises %g above the curve at x=%g", i, v, x)
			}
		}
	}
}

// TestSolveCountMonotonic verifies the correctness precondition of the outer
// search: a larger tolerated error never needs more facets.
func TestSolveCountMonotonic(t *testing.T) {
	epsilons := []float64{0.005, 0.02, 0.05, 0.1, 0.3}

	prev := math.MaxInt32
	for _, eps := range epsilons {
		facets, err := Solve(eps)
		if err != nil {
			t.Fatalf("Solve(%g) returned error: %v", eps, err)
		}
		if len(facets) > prev {
			t.Errorf("Solve(%g) produced %d facets, more than %d at a smaller epsilon", eps, len(facets), prev)
		}
		prev = len(facets)
	}
}

// TestSolveDeterministic verifies repeated solves are bit-identical, which
// the coefficient rounding is there to guarantee.
func TestSolveDeterministic(t *testing.T) {
	a, err := Solve(0.07)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	b, err := Solve(0.07)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("facet counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("facet %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestExpSat(t *testing.T) {
	tests := []struct {
		name     string
		arg      float64
		expected float64
	}{
		{name: "ordinary_argument", arg: 1, expected: math.E},
		{name: "zero", arg: 0, expected: 1},
		{name: "overflowing_argument", arg: 1e6, expected: math.Inf(1)},
		{name: "positive_infinity", arg: math.Inf(1), expected: math.Inf(1)},
		{name: "negative_underflow", arg: -1e6, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expSat(tt.arg); got != tt.expected {
				t.Errorf("expSat(%g) = %g, expected %g", tt.arg, got, tt.expected)
			}
		})
	}
}

// TestLineY checks the facet boundary line solved for y.
func TestLineY(t *testing.T) {
	hp := tangent.HalfPlane{Normal: mgl64.Vec2{0.25, 0.75}, Offset: 0.6}

	for _, x := range []float64{-3, -1, 0, 2} {
		y := lineY(hp, x)
		if v := hp.Eval(mgl64.Vec2{x, y}); math.Abs(v) > 1e-12 {
			t.Errorf("point (%g, %g) off the boundary line by %g", x, y, v)
		}
	}
}
