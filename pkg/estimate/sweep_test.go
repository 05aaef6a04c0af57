package estimate

import (
	"math"
	"testing"

	"github.com/glazecalc/glazecalc/pkg/units"
)

func TestSweepWidth(t *testing.T) {
	e := New()
	table, err := e.Sweep(SweepRequest{
		Door:        DoorSpec{Height: 9, Unit: units.Foot},
		Glass:       GlassSpec{U: 0.30, Unit: units.BTU},
		Calibration: builtinPresets["Cero2"],
		Axis:        SweepWidth,
		From:        8,
		To:          24,
		Step:        4,
		Panels:      []int{2, 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table.Values) != 5 {
		t.Fatalf("expected 5 sweep points, got %d: %v", len(table.Values), table.Values)
	}
	if table.Values[0] != 8 || table.Values[4] != 24 {
		t.Errorf("sweep endpoints wrong: %v", table.Values)
	}
	if len(table.UBTU) != 5 || len(table.UBTU[0]) != 2 {
		t.Fatalf("result grid shape wrong: %dx%d", len(table.UBTU), len(table.UBTU[0]))
	}

	// At any width, a 4-panel unit scales to a narrower 2-panel
	// equivalent, losing the size discount, so it cannot beat the 2-panel
	// estimate.
	for i := range table.Values {
		if table.UBTU[i][1] < table.UBTU[i][0] {
			t.Errorf("width %v: 4-panel U %v below 2-panel U %v",
				table.Values[i], table.UBTU[i][1], table.UBTU[i][0])
		}
	}
}

func TestSweepMatchesSingleEstimates(t *testing.T) {
	e := New()
	req := SweepRequest{
		Door:        DoorSpec{Width: 12, Unit: units.Foot},
		Glass:       GlassSpec{U: 0.30, Unit: units.BTU},
		Calibration: builtinPresets["Cero3"],
		Recess:      RecessConfig{Fraction: 0.5, Effectiveness: 0.6},
		Axis:        SweepHeight,
		From:        6,
		To:          12,
		Step:        3,
		Panels:      []int{2},
	}
	table, err := e.Sweep(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, h := range table.Values {
		door := req.Door
		door.Height = h
		door.Panels = 2
		single, err := e.Estimate(door, req.Glass, req.Calibration, req.Recess)
		if err != nil {
			t.Fatalf("height %v: %v", h, err)
		}
		if math.Abs(single.UBTU-table.UBTU[i][0]) > 1e-12 {
			t.Errorf("height %v: sweep %v != single %v", h, table.UBTU[i][0], single.UBTU)
		}
	}
}

func TestSweepValidation(t *testing.T) {
	e := New()
	base := SweepRequest{
		Door:        DoorSpec{Width: 12, Height: 9, Unit: units.Foot},
		Glass:       GlassSpec{U: 0.30, Unit: units.BTU},
		Calibration: builtinPresets["Cero2"],
		Axis:        SweepWidth,
		From:        8,
		To:          16,
		Step:        2,
		Panels:      []int{2},
	}

	tests := []struct {
		name   string
		mutate func(*SweepRequest)
	}{
		{"bad axis", func(r *SweepRequest) { r.Axis = "diagonal" }},
		{"zero step", func(r *SweepRequest) { r.Step = 0 }},
		{"negative step", func(r *SweepRequest) { r.Step = -1 }},
		{"empty range", func(r *SweepRequest) { r.From = 20; r.To = 10 }},
		{"no panels", func(r *SweepRequest) { r.Panels = nil }},
		{"too many points", func(r *SweepRequest) { r.From = 0.0001; r.To = 1e6; r.Step = 0.0001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			if _, err := e.Sweep(req); err == nil {
				t.Error("expected error")
			}
		})
	}
}
