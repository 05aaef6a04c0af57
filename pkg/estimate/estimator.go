// Package estimate computes assembly U-values for aluminum-framed glazed
// door systems from manufacturer glass data and unit geometry.
//
// The model is calibrated, not simulated: frame and edge-of-glass U-values
// are back-solved from two published reference certifications, then blended
// with the caller's center-of-glass value by zone area and corrected for
// recess, size and aspect ratio. There is no finite-element heat transfer
// here and none is intended.
package estimate

import (
	"fmt"
	"math"

	"github.com/glazecalc/glazecalc/pkg/geometry"
	"github.com/glazecalc/glazecalc/pkg/refsolver"
	"github.com/glazecalc/glazecalc/pkg/units"
)

// Estimator runs the estimation pipeline. The zero-value-equivalent
// New() Estimator uses the minimum-norm least-squares reference solver and
// permissive area handling, matching the reference model. Estimators are
// stateless after construction and safe for concurrent use.
type Estimator struct {
	solver      refsolver.Solver
	strictAreas bool
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithSolver substitutes the reference back-solver, e.g. a well-posed
// two-partition variant.
func WithSolver(s refsolver.Solver) Option {
	return func(e *Estimator) { e.solver = s }
}

// WithStrictAreas rejects inputs whose derived area partition contains
// non-positive glass or frame zones instead of passing them through.
func WithStrictAreas() Option {
	return func(e *Estimator) { e.strictAreas = true }
}

// New creates an Estimator.
func New(opts ...Option) *Estimator {
	e := &Estimator{solver: refsolver.LeastSquares{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate runs the full pipeline for one unit:
//
//  1. Multi-panel normalization: units with more than two panels are
//     width-scaled to a two-panel equivalent of the same height. Mullion
//     thermal bridging is deliberately ignored.
//  2. Unit conversion to mm and W/m²K.
//  3. Frame/edge geometry and area partition.
//  4. Frame and edge U-values back-solved from the reference calibration.
//  5. Recess adjustment, area-weighted blend, aspect and size corrections,
//     applied with the caller's original glass U-value.
//
// Validation happens up front; on any failure a typed error is returned and
// no partial result is produced.
func (e *Estimator) Estimate(door DoorSpec, glass GlassSpec, cal ReferenceCalibration, recess RecessConfig) (*Result, error) {
	if err := validateInputs(door, glass, cal); err != nil {
		return nil, err
	}

	// Scale to the two-panel equivalent before any conversion. Height is
	// never rescaled.
	scaledWidth := door.Width
	if door.Panels > 2 {
		scaledWidth = door.Width * 2.0 / float64(door.Panels)
	}

	widthMM, err := units.LengthToMM(scaledWidth, door.Unit)
	if err != nil {
		return nil, err
	}
	heightMM, err := units.LengthToMM(door.Height, door.Unit)
	if err != nil {
		return nil, err
	}

	// Pathologically large dimensions overflow the area computation long
	// before they are physically meaningful; stop them here so the solver
	// never sees non-finite coefficients.
	if math.IsInf(widthMM*heightMM, 0) {
		return nil, fmt.Errorf("%w: %v mm x %v mm exceeds float64 range", ErrNumericOverflow, widthMM, heightMM)
	}

	glassU, err := units.UToMetric(glass.U, glass.Unit)
	if err != nil {
		return nil, err
	}
	ref1, ref2, err := cal.toMetric()
	if err != nil {
		return nil, err
	}

	frameWidthMM, edgeZoneMM := geometry.FrameAndEdge(widthMM, heightMM)
	areas := geometry.PartitionAreas(widthMM, heightMM, frameWidthMM, edgeZoneMM)
	if e.strictAreas {
		if err := areas.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNonPositiveDimension, err)
		}
	}

	frameU, edgeU, err := e.solver.SolveFrameAndEdgeU(ref1, ref2, areas)
	if err != nil {
		return nil, err
	}

	frameUAdj := RecessAdjust(frameU, recess)

	weightedU, err := AreaWeightedU(glassU, edgeU, frameUAdj, areas)
	if err != nil {
		return nil, err
	}

	aspectFactor, aspectRatio := AspectFactor(widthMM/1000.0, heightMM/1000.0)
	sizeCorrection, sizeFactor := SizeCorrection(widthMM, heightMM)

	finalU := weightedU * aspectFactor * sizeCorrection
	if math.IsNaN(finalU) || math.IsInf(finalU, 0) {
		return nil, fmt.Errorf("%w: final U-value is not finite", ErrNumericOverflow)
	}

	return &Result{
		UMetric:        round3(finalU),
		UBTU:           round3(units.UToBTU(finalU)),
		Areas:          areas,
		UGlass:         glassU,
		UEdge:          round3(edgeU),
		UFrameRaw:      round3(frameU),
		UFrameAdjusted: round3(frameUAdj),
		Diagnostics: Diagnostics{
			AspectRatio:  aspectRatio,
			SizeFactor:   sizeFactor,
			FrameWidthMM: frameWidthMM,
			EdgeZoneMM:   edgeZoneMM,
			ScaledWidth:  scaledWidth,
			ScaledHeight: door.Height,
			Panels:       door.Panels,
		},
	}, nil
}

func validateInputs(door DoorSpec, glass GlassSpec, cal ReferenceCalibration) error {
	if door.Width <= 0 {
		return fmt.Errorf("%w: width %v", ErrNonPositiveDimension, door.Width)
	}
	if door.Height <= 0 {
		return fmt.Errorf("%w: height %v", ErrNonPositiveDimension, door.Height)
	}
	if door.Panels < 1 {
		return fmt.Errorf("%w: panel count %d", ErrNonPositiveDimension, door.Panels)
	}
	if glass.U <= 0 {
		return fmt.Errorf("%w: glass U-value %v", ErrNonPositiveDimension, glass.U)
	}
	if cal.GlassU1 == cal.GlassU2 {
		return fmt.Errorf("%w: both reference glass U-values are %v", ErrDegenerateCalibration, cal.GlassU1)
	}
	return nil
}

func (c ReferenceCalibration) toMetric() (refsolver.RefCase, refsolver.RefCase, error) {
	var ref1, ref2 refsolver.RefCase
	var err error

	if ref1.GlassU, err = units.UToMetric(c.GlassU1, c.Unit); err != nil {
		return ref1, ref2, err
	}
	if ref1.TotalU, err = units.UToMetric(c.TotalU1, c.Unit); err != nil {
		return ref1, ref2, err
	}
	if ref2.GlassU, err = units.UToMetric(c.GlassU2, c.Unit); err != nil {
		return ref1, ref2, err
	}
	if ref2.TotalU, err = units.UToMetric(c.TotalU2, c.Unit); err != nil {
		return ref1, ref2, err
	}
	return ref1, ref2, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000.0) / 1000.0
}
