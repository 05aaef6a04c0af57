package estimate

import (
	"testing"

	"github.com/glazecalc/glazecalc/pkg/units"
)

func TestPresetByName(t *testing.T) {
	preset, err := PresetByName("Cero2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cal := preset.Calibration
	if cal.GlassU1 != 0.25 || cal.TotalU1 != 0.41 || cal.GlassU2 != 0.30 || cal.TotalU2 != 0.48 {
		t.Errorf("Cero2 calibration mismatch: %+v", cal)
	}
	if cal.Unit != units.BTU {
		t.Errorf("Cero2 unit: expected BTU, got %q", cal.Unit)
	}

	if _, err := PresetByName("Cero9"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetsSorted(t *testing.T) {
	presets := Presets()
	if len(presets) != 2 {
		t.Fatalf("expected 2 built-in presets, got %d", len(presets))
	}
	if presets[0].Name != "Cero2" || presets[1].Name != "Cero3" {
		t.Errorf("presets not sorted by name: %v, %v", presets[0].Name, presets[1].Name)
	}
}

func TestBuiltinPresetsEstimate(t *testing.T) {
	// Both built-in calibrations must run end to end, and the better glass
	// series must produce the better assembly U.
	e := New()
	door := DoorSpec{Width: 12, Height: 9, Unit: units.Foot, Panels: 2}
	glass := GlassSpec{U: 0.25, Unit: units.BTU}

	cero2, err := e.Estimate(door, glass, builtinPresets["Cero2"], RecessConfig{})
	if err != nil {
		t.Fatalf("Cero2: %v", err)
	}
	cero3, err := e.Estimate(door, glass, builtinPresets["Cero3"], RecessConfig{})
	if err != nil {
		t.Fatalf("Cero3: %v", err)
	}

	if cero3.UBTU >= cero2.UBTU {
		t.Errorf("Cero3 (%v) should beat Cero2 (%v)", cero3.UBTU, cero2.UBTU)
	}
}
