// Package refsolver back-calculates frame and edge-of-glass U-values from
// published reference certifications.
//
// Each reference case gives a center-of-glass U-value and the resulting
// whole-assembly U-value for the standard 2 m x 2 m door. Area-weighting the
// energy balance at both cases yields a 2x2 linear system in the two unknown
// component U-values.
package refsolver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/glazecalc/glazecalc/pkg/geometry"
)

// ErrSolveFailed is returned when the least-squares factorization cannot be
// computed at all. Rank deficiency is not a failure; see LeastSquares.
var ErrSolveFailed = errors.New("reference solve failed")

// RefCase is one published calibration point: the center-of-glass U-value
// and the resulting assembly U-value for the reference door, both in W/m²K.
type RefCase struct {
	GlassU float64
	TotalU float64
}

// Solver back-calculates the frame and edge U-values from two reference
// cases sharing one area partition. Implementations must tolerate the
// structurally rank-deficient system this produces (both equations carry
// identical frame/edge coefficients); a well-posed variant using two
// independent partitions can be substituted without touching the
// orchestrator.
type Solver interface {
	SolveFrameAndEdgeU(ref1, ref2 RefCase, areas geometry.AreaPartition) (frameU, edgeU float64, err error)
}

// LeastSquares is the default Solver. It computes the minimum-norm
// least-squares solution via SVD, matching the reference model: because the
// same area partition feeds both equations the system is rank 1, and the
// minimum-norm answer distributes the mean right-hand side across frame and
// edge in proportion to their areas rather than erroring on singularity.
type LeastSquares struct{}

// SolveFrameAndEdgeU solves
//
//	totalU_i * A_total = A_glass*glassU_i + A_frame*frameU + A_edge*edgeU
//
// for (frameU, edgeU) across both reference cases.
func (LeastSquares) SolveFrameAndEdgeU(ref1, ref2 RefCase, areas geometry.AreaPartition) (float64, float64, error) {
	a := mat.NewDense(2, 2, []float64{
		areas.FrameM2, areas.EdgeM2,
		areas.FrameM2, areas.EdgeM2,
	})
	b := []float64{
		ref1.TotalU*areas.TotalM2 - ref1.GlassU*areas.GlassM2,
		ref2.TotalU*areas.TotalM2 - ref2.GlassU*areas.GlassM2,
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return 0, 0, fmt.Errorf("%w: SVD factorization did not converge", ErrSolveFailed)
	}

	x, err := minNormSolve(&svd, b)
	if err != nil {
		return 0, 0, err
	}
	return x[0], x[1], nil
}

// minNormSolve computes x = V * Σ⁺ * Uᵀ * b, the minimum-norm least-squares
// solution. Singular values below the numpy-style cutoff are treated as
// zero, so a rank-deficient system yields a defined answer instead of an
// error.
func minNormSolve(svd *mat.SVD, b []float64) ([]float64, error) {
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	n := len(s)
	if n == 0 || len(b) != n {
		return nil, fmt.Errorf("%w: unexpected factor dimensions", ErrSolveFailed)
	}

	// rcond cutoff as used by numpy lstsq: max(m,n) * eps * s_max.
	tol := float64(n) * epsilon * s[0]

	// c = Uᵀ b, scaled by the pseudo-inverted singular values.
	c := make([]float64, n)
	for j := 0; j < n; j++ {
		if s[j] <= tol {
			continue
		}
		var dot float64
		for i := 0; i < n; i++ {
			dot += u.At(i, j) * b[i]
		}
		c[j] = dot / s[j]
	}

	// x = V c
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += v.At(i, j) * c[j]
		}
		x[i] = sum
	}
	return x, nil
}

var epsilon = math.Nextafter(1, 2) - 1
