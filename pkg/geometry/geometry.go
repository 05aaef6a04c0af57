// Package geometry partitions a glazed door into glass, edge-of-glass and
// frame zones from its overall dimensions.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Clamp bands for the derived frame width and edge-of-glass zone, in mm.
// These are calibration constants fit against the reference certifications,
// not physical derivations. Do not retune without new calibration data.
const (
	frameWidthCoeff = 0.015
	frameWidthMinMM = 40.0
	frameWidthMaxMM = 100.0

	edgeZoneCoeff = 0.010
	edgeZoneMinMM = 30.0
	edgeZoneMaxMM = 80.0
)

// ErrNonPositiveArea is returned by strict validation when the partition
// contains a zero or negative glass or frame area.
var ErrNonPositiveArea = errors.New("non-positive area")

// AreaPartition splits the total door area into its thermal zones. All
// areas are in m². Total always equals Glass + Edge + Frame exactly, because
// Frame is computed as the remainder.
type AreaPartition struct {
	TotalM2 float64 `json:"total_m2"`
	GlassM2 float64 `json:"glass_m2"`
	EdgeM2  float64 `json:"edge_m2"`
	FrameM2 float64 `json:"frame_m2"`
}

// FrameAndEdge estimates the effective frame width and edge-of-glass zone
// thickness from the door perimeter. Both grow slowly with size but stay
// inside realistic bands.
func FrameAndEdge(widthMM, heightMM float64) (frameWidthMM, edgeZoneMM float64) {
	perimeterMM := 2.0 * (widthMM + heightMM)

	frameWidthMM = clamp(frameWidthCoeff*math.Sqrt(perimeterMM), frameWidthMinMM, frameWidthMaxMM)
	edgeZoneMM = clamp(edgeZoneCoeff*math.Sqrt(perimeterMM), edgeZoneMinMM, edgeZoneMaxMM)

	return frameWidthMM, edgeZoneMM
}

// PartitionAreas splits the door area into glass, edge-of-glass and frame
// zones. The edge zone is an annulus of the given thickness straddling the
// glass boundary, clamped to zero when the door is too small to carry one.
//
// Glass area can go negative when the door is implausibly small relative to
// the derived frame width, and the frame remainder can go negative when the
// edge annulus overshoots. Both are passed through unvalidated so the
// estimate stays reproducible against the reference calibrations; callers
// wanting hard guarantees should run Validate on the result.
func PartitionAreas(widthMM, heightMM, frameWidthMM, edgeZoneMM float64) AreaPartition {
	total := widthMM * heightMM / 1e6

	glassW := widthMM - 2.0*frameWidthMM
	glassH := heightMM - 2.0*frameWidthMM
	glass := glassW * glassH / 1e6

	// Outer minus inner rectangle around the glass boundary.
	edge := ((glassW+2.0*edgeZoneMM)*(glassH+2.0*edgeZoneMM) -
		(glassW-2.0*edgeZoneMM)*(glassH-2.0*edgeZoneMM)) / 1e6
	edge = math.Max(0.0, edge)

	frame := total - glass - edge

	return AreaPartition{
		TotalM2: total,
		GlassM2: glass,
		EdgeM2:  edge,
		FrameM2: frame,
	}
}

// Validate rejects partitions whose glass or frame zones collapsed to zero
// or negative area. This is the opt-in strict mode; the default pipeline
// tolerates such partitions.
func (p AreaPartition) Validate() error {
	if p.TotalM2 <= 0 {
		return fmt.Errorf("%w: total area %.6f m²", ErrNonPositiveArea, p.TotalM2)
	}
	if p.GlassM2 <= 0 {
		return fmt.Errorf("%w: glass area %.6f m²", ErrNonPositiveArea, p.GlassM2)
	}
	if p.FrameM2 <= 0 {
		return fmt.Errorf("%w: frame area %.6f m²", ErrNonPositiveArea, p.FrameM2)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
