// Command surrogate demonstrates feeding the engine's coefficients into a
// third-party optimizer as a tractable stand-in for log-sum-exp.
//
// The problem is a small regularized design objective
//
//	minimize  log(exp(x) + exp(y)) + ((x-1)² + (y+2)²)/2
//
// solved twice with gonum's Nelder-Mead: once with the true log-sum-exp term
// and once with an 8-term upper approximation in its place. The gap between
// the two optima stays within the approximation error.
package main

import (
	"fmt"
	"log"
	"math"

	"github.com/akmonengine/chord"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

func main() {
	approx, err := chord.UpperApprox(8)
	if err != nil {
		log.Fatal(err)
	}

	A, b := approx.Dense()
	fmt.Printf("A =\n%v\n", mat.Formatted(A, mat.Prefix("    "), mat.Squeeze()))
	fmt.Printf("b = %v\n", mat.Formatted(b.T(), mat.Squeeze()))
	fmt.Printf("error = %v\n\n", approx.Err)

	regularizer := func(x []float64) float64 {
		return ((x[0]-1)*(x[0]-1) + (x[1]+2)*(x[1]+2)) / 2
	}

	exact := optimize.Problem{
		Func: func(x []float64) float64 {
			return math.Log(math.Exp(x[0])+math.Exp(x[1])) + regularizer(x)
		},
	}
	surrogate := optimize.Problem{
		Func: func(x []float64) float64 {
			return approx.Eval(x[0], x[1]) + regularizer(x)
		},
	}

	start := []float64{0, 0}
	exactResult, err := optimize.Minimize(exact, start, nil, &optimize.NelderMead{})
	if err != nil {
		log.Fatal(err)
	}
	surrogateResult, err := optimize.Minimize(surrogate, start, nil, &optimize.NelderMead{})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("exact:     x = %.6f  f = %.6f\n", exactResult.X, exactResult.F)
	fmt.Printf("surrogate: x = %.6f  f = %.6f\n", surrogateResult.X, surrogateResult.F)
	fmt.Printf("objective gap: %.6f (approximation error %.6f)\n",
		math.Abs(exactResult.F-surrogateResult.F), approx.Err)
}
