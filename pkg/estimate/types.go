package estimate

import (
	"github.com/glazecalc/glazecalc/pkg/geometry"
	"github.com/glazecalc/glazecalc/pkg/units"
)

// DoorSpec describes the unit being estimated. Width and height are in the
// declared length unit; Panels is the number of glazed panels.
type DoorSpec struct {
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
	Unit   units.LengthUnit `json:"unit"`
	Panels int              `json:"panels"`
}

// GlassSpec is the manufacturer-supplied center-of-glass U-value.
type GlassSpec struct {
	U    float64          `json:"u"`
	Unit units.UValueUnit `json:"unit"`
}

// ReferenceCalibration holds two published (glass U, assembly U) pairs for
// the standard 2 m x 2 m reference door. The two glass U-values must differ
// or the back-solve is ill-posed.
type ReferenceCalibration struct {
	GlassU1 float64          `json:"glass_u1"`
	TotalU1 float64          `json:"total_u1"`
	GlassU2 float64          `json:"glass_u2"`
	TotalU2 float64          `json:"total_u2"`
	Unit    units.UValueUnit `json:"unit"`
}

// RecessConfig controls the frame recess adjustment. Both factors are
// clamped to [0,1] before use.
type RecessConfig struct {
	Fraction      float64 `json:"fraction"`
	Effectiveness float64 `json:"effectiveness"`
}

// DefaultRecessEffectiveness is applied when the caller does not specify
// how strongly recessing lowers the frame U-value.
const DefaultRecessEffectiveness = 0.6

// Diagnostics carries the intermediate quantities of one estimation run,
// unrounded, for charting and debugging.
type Diagnostics struct {
	AspectRatio  float64 `json:"aspect_ratio"`
	SizeFactor   float64 `json:"size_factor"`
	FrameWidthMM float64 `json:"frame_width_mm"`
	EdgeZoneMM   float64 `json:"edge_zone_mm"`
	// ScaledWidth and ScaledHeight are the dimensions actually fed to the
	// geometry stage, in the caller's length unit. They differ from the
	// input only for units with more than two panels.
	ScaledWidth  float64 `json:"scaled_width"`
	ScaledHeight float64 `json:"scaled_height"`
	Panels       int     `json:"panels"`
}

// Result is the immutable outcome of one estimation run. Final and
// component U-values are rounded to three decimals; the glass U-value and
// all diagnostics are passed through unrounded.
type Result struct {
	UMetric float64 `json:"u_metric"` // W/m²K
	UBTU    float64 `json:"u_btu"`    // BTU/hr·ft²·°F

	Areas geometry.AreaPartition `json:"areas"`

	// Component U-values in W/m²K.
	UGlass         float64 `json:"u_glass"`
	UEdge          float64 `json:"u_edge"`
	UFrameRaw      float64 `json:"u_frame_raw"`
	UFrameAdjusted float64 `json:"u_frame_adjusted"`

	Diagnostics Diagnostics `json:"diagnostics"`
}
