package estimate

import (
	"fmt"
	"math"

	"github.com/glazecalc/glazecalc/pkg/geometry"
)

// Correction coefficients calibrated against the two documented reference
// cases (2m x 2m NFRC-style door and the 24' x 12' large-format check).
// They must not change without refitting, or existing outputs shift.
const (
	aspectPenaltyCoeff = 0.02
	sizeDecayCoeff     = 0.06
	minWidthM          = 1e-6

	// The reference door the size factor is measured against, mm per side.
	referenceSideMM = 2000.0
)

// RecessAdjust lowers the frame U-value for frames embedded into the
// surrounding wall. Both recess factors are clamped to [0,1], so the
// adjusted value never exceeds the raw one and never drops below zero.
func RecessAdjust(frameU float64, recess RecessConfig) float64 {
	fraction := clamp01(recess.Fraction)
	effectiveness := clamp01(recess.Effectiveness)
	return frameU * (1.0 - fraction*effectiveness)
}

// AreaWeightedU blends the component U-values by their zone areas.
func AreaWeightedU(glassU, edgeU, frameU float64, areas geometry.AreaPartition) (float64, error) {
	if areas.TotalM2 <= 0 {
		return 0, fmt.Errorf("%w: total area %.6f m²", ErrNonPositiveDimension, areas.TotalM2)
	}
	return (glassU*areas.GlassM2 + edgeU*areas.EdgeM2 + frameU*areas.FrameM2) / areas.TotalM2, nil
}

// AspectFactor penalizes departures from a square unit symmetrically. The
// penalty is zero exactly at aspect ratio 1. Width is floored at 1 µm to
// guard the division.
func AspectFactor(widthM, heightM float64) (factor, aspectRatio float64) {
	aspectRatio = heightM / math.Max(widthM, minWidthM)
	factor = 1.0 + aspectPenaltyCoeff*math.Abs(aspectRatio-1.0)
	return factor, aspectRatio
}

// SizeCorrection discounts units larger than the reference door and
// penalizes smaller ones. Strictly positive and non-increasing in the size
// factor; it tends to zero for arbitrarily large units but never reaches it.
func SizeCorrection(widthMM, heightMM float64) (correction, sizeFactor float64) {
	sizeFactor = (widthMM * heightMM) / (referenceSideMM * referenceSideMM)
	correction = math.Exp(-sizeDecayCoeff * (sizeFactor - 1.0))
	return correction, sizeFactor
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
