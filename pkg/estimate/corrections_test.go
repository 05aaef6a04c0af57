package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/glazecalc/glazecalc/pkg/geometry"
)

func TestRecessAdjust(t *testing.T) {
	tests := []struct {
		name     string
		frameU   float64
		recess   RecessConfig
		expected float64
	}{
		{"no recess", 3.0, RecessConfig{}, 3.0},
		{"half recess at 0.6 effectiveness", 3.0, RecessConfig{Fraction: 0.5, Effectiveness: 0.6}, 3.0 * 0.7},
		{"full recess fully effective", 3.0, RecessConfig{Fraction: 1.0, Effectiveness: 1.0}, 0.0},
		{"fraction clamped above one", 3.0, RecessConfig{Fraction: 2.5, Effectiveness: 1.0}, 0.0},
		{"negative factors clamp to zero", 3.0, RecessConfig{Fraction: -1.0, Effectiveness: -0.5}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecessAdjust(tt.frameU, tt.recess)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRecessMonotonicity(t *testing.T) {
	// Deeper recess must never raise the adjusted frame U.
	prev := math.Inf(1)
	for fraction := 0.0; fraction <= 1.0; fraction += 0.05 {
		adj := RecessAdjust(2.8, RecessConfig{Fraction: fraction, Effectiveness: 0.6})
		if adj > prev {
			t.Fatalf("fraction %.2f: adjusted U %v rose above %v", fraction, adj, prev)
		}
		prev = adj
	}
}

func TestAreaWeightedU(t *testing.T) {
	areas := geometry.AreaPartition{TotalM2: 4.0, GlassM2: 3.0, EdgeM2: 0.6, FrameM2: 0.4}
	got, err := AreaWeightedU(1.5, 2.0, 3.0, areas)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := (1.5*3.0 + 2.0*0.6 + 3.0*0.4) / 4.0
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestAreaWeightedURejectsZeroTotal(t *testing.T) {
	_, err := AreaWeightedU(1.5, 2.0, 3.0, geometry.AreaPartition{})
	if !errors.Is(err, ErrNonPositiveDimension) {
		t.Errorf("expected ErrNonPositiveDimension, got %v", err)
	}
}

func TestAspectFactor(t *testing.T) {
	// Zero penalty exactly at square.
	factor, ratio := AspectFactor(2.0, 2.0)
	if factor != 1.0 {
		t.Errorf("square unit: expected factor 1.0, got %v", factor)
	}
	if ratio != 1.0 {
		t.Errorf("square unit: expected ratio 1.0, got %v", ratio)
	}

	// Strictly positive penalty off-square, symmetric in |ratio - 1|.
	tall, _ := AspectFactor(2.0, 3.0) // ratio 1.5
	wide, _ := AspectFactor(2.0, 1.0) // ratio 0.5
	if tall <= 1.0 {
		t.Errorf("tall unit: expected factor > 1, got %v", tall)
	}
	if wide <= 1.0 {
		t.Errorf("wide unit: expected factor > 1, got %v", wide)
	}

	// |1.5 - 1| == |0.5 - 1|, so both land on the same penalty.
	if math.Abs(tall-wide) > 1e-12 {
		t.Errorf("expected equal penalties for ratios 1.5 and 0.5, got %v and %v", tall, wide)
	}

	// Near-zero width is floored rather than dividing by zero.
	factor, ratio = AspectFactor(0.0, 2.0)
	if math.IsInf(ratio, 0) || math.IsNaN(factor) {
		t.Errorf("zero width: got ratio %v factor %v", ratio, factor)
	}
}

func TestSizeCorrection(t *testing.T) {
	// Reference size is the neutral point.
	corr, factor := SizeCorrection(2000, 2000)
	if math.Abs(corr-1.0) > 1e-12 || math.Abs(factor-1.0) > 1e-12 {
		t.Errorf("reference size: expected (1, 1), got (%v, %v)", corr, factor)
	}

	// Larger units get a discount, smaller a penalty.
	large, _ := SizeCorrection(4000, 3000)
	if large >= 1.0 {
		t.Errorf("large unit: expected correction < 1, got %v", large)
	}
	small, _ := SizeCorrection(1000, 1000)
	if small <= 1.0 {
		t.Errorf("small unit: expected correction > 1, got %v", small)
	}
}

func TestSizeCorrectionMonotonicNonIncreasing(t *testing.T) {
	prev := math.Inf(1)
	for side := 500.0; side <= 12000.0; side += 250.0 {
		corr, _ := SizeCorrection(side, side)
		if corr > prev {
			t.Fatalf("side %.0f mm: correction %v rose above %v", side, corr, prev)
		}
		if corr <= 0 {
			t.Fatalf("side %.0f mm: correction %v not strictly positive", side, corr)
		}
		prev = corr
	}
}
