package estimate

import (
	"fmt"
	"sort"

	"github.com/glazecalc/glazecalc/pkg/units"
)

// Preset is a named reference calibration.
type Preset struct {
	Name        string               `json:"name"`
	Calibration ReferenceCalibration `json:"calibration"`
}

// Built-in calibrations from the published Cero series certifications.
var builtinPresets = map[string]ReferenceCalibration{
	"Cero2": {
		GlassU1: 0.25, TotalU1: 0.41,
		GlassU2: 0.30, TotalU2: 0.48,
		Unit: units.BTU,
	},
	"Cero3": {
		GlassU1: 0.12, TotalU1: 0.29,
		GlassU2: 0.15, TotalU2: 0.31,
		Unit: units.BTU,
	},
}

// PresetByName looks up a built-in calibration preset.
func PresetByName(name string) (Preset, error) {
	cal, ok := builtinPresets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown calibration preset %q", name)
	}
	return Preset{Name: name, Calibration: cal}, nil
}

// Presets returns the built-in presets sorted by name.
func Presets() []Preset {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}
	sort.Strings(names)

	presets := make([]Preset, 0, len(names))
	for _, name := range names {
		presets = append(presets, Preset{Name: name, Calibration: builtinPresets[name]})
	}
	return presets
}
