package restserver

import (
	"fmt"

	"github.com/glazecalc/glazecalc/pkg/estimate"
	"github.com/glazecalc/glazecalc/pkg/units"
)

// EstimateRequest is the flat parameter set accepted by POST /api/estimate.
// Calibration comes from either a named preset or a full set of explicit
// reference values; explicit values win when both are supplied.
type EstimateRequest struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	SizeUnit   string  `json:"size_unit"`
	Panels     int     `json:"panels,omitempty"` // default 2
	GlassU     float64 `json:"glass_u"`
	GlassUUnit string  `json:"glass_u_unit,omitempty"` // default BTU

	Preset     string  `json:"preset,omitempty"`
	RefGlassU1 float64 `json:"ref_glass_u1,omitempty"`
	RefTotalU1 float64 `json:"ref_total_u1,omitempty"`
	RefGlassU2 float64 `json:"ref_glass_u2,omitempty"`
	RefTotalU2 float64 `json:"ref_total_u2,omitempty"`
	RefUUnit   string  `json:"ref_u_unit,omitempty"` // default BTU

	RecessFraction      float64  `json:"recess_fraction,omitempty"`
	RecessEffectiveness *float64 `json:"recess_effectiveness,omitempty"`
}

// SweepAPIRequest is the payload for POST /api/sweep: one EstimateRequest
// plus the swept axis and range. The swept dimension field of the embedded
// request is ignored.
type SweepAPIRequest struct {
	EstimateRequest
	Axis   string  `json:"axis"`
	From   float64 `json:"from"`
	To     float64 `json:"to"`
	Step   float64 `json:"step"`
	Panels []int   `json:"panel_counts"`
}

// DatasheetRequest is the payload for POST /api/datasheet.
type DatasheetRequest struct {
	EstimateRequest
	Project string `json:"project,omitempty"`
	Author  string `json:"author,omitempty"`
	Title   string `json:"title,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// PresetResponse is one entry of GET /api/presets.
type PresetResponse struct {
	Name        string                        `json:"name"`
	Calibration estimate.ReferenceCalibration `json:"calibration"`
	BuiltIn     bool                          `json:"built_in"`
}

// resolveInputs turns a flat request into engine inputs, applying the
// configured defaults for anything unspecified.
func (c *Controller) resolveInputs(req EstimateRequest) (estimate.DoorSpec, estimate.GlassSpec, estimate.ReferenceCalibration, estimate.RecessConfig, error) {
	var (
		door   estimate.DoorSpec
		glass  estimate.GlassSpec
		cal    estimate.ReferenceCalibration
		recess estimate.RecessConfig
	)

	sizeUnit, err := units.ParseLengthUnit(req.SizeUnit)
	if err != nil {
		return door, glass, cal, recess, err
	}

	panels := req.Panels
	if panels == 0 {
		panels = 2
	}
	door = estimate.DoorSpec{Width: req.Width, Height: req.Height, Unit: sizeUnit, Panels: panels}

	glassUnit, err := parseUUnitOrBTU(req.GlassUUnit)
	if err != nil {
		return door, glass, cal, recess, err
	}
	glass = estimate.GlassSpec{U: req.GlassU, Unit: glassUnit}

	cal, err = c.resolveCalibration(req)
	if err != nil {
		return door, glass, cal, recess, err
	}

	effectiveness := c.defaults.RecessEffectiveness
	if effectiveness == 0 {
		effectiveness = estimate.DefaultRecessEffectiveness
	}
	if req.RecessEffectiveness != nil {
		effectiveness = *req.RecessEffectiveness
	}
	recess = estimate.RecessConfig{Fraction: req.RecessFraction, Effectiveness: effectiveness}

	return door, glass, cal, recess, nil
}

func (c *Controller) resolveCalibration(req EstimateRequest) (estimate.ReferenceCalibration, error) {
	// Full explicit override takes precedence over any preset name.
	if req.RefGlassU1 != 0 || req.RefTotalU1 != 0 || req.RefGlassU2 != 0 || req.RefTotalU2 != 0 {
		unit, err := parseUUnitOrBTU(req.RefUUnit)
		if err != nil {
			return estimate.ReferenceCalibration{}, err
		}
		return estimate.ReferenceCalibration{
			GlassU1: req.RefGlassU1, TotalU1: req.RefTotalU1,
			GlassU2: req.RefGlassU2, TotalU2: req.RefTotalU2,
			Unit: unit,
		}, nil
	}

	name := req.Preset
	if name == "" {
		name = c.defaults.Preset
	}
	if name == "" {
		name = "Cero2"
	}
	cal, ok := c.presets[name]
	if !ok {
		return estimate.ReferenceCalibration{}, fmt.Errorf("%w: %q", errUnknownPreset, name)
	}
	return cal, nil
}

func parseUUnitOrBTU(s string) (units.UValueUnit, error) {
	if s == "" {
		return units.BTU, nil
	}
	return units.ParseUValueUnit(s)
}
