// Command uvalue runs a single U-value estimation from the command line
// and prints a text report, optionally writing a PDF datasheet.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glazecalc/glazecalc/pkg/estimate"
	"github.com/glazecalc/glazecalc/pkg/report"
	"github.com/glazecalc/glazecalc/pkg/units"
)

func main() {
	var (
		width      = flag.Float64("width", 12.0, "Door width")
		height     = flag.Float64("height", 9.0, "Door height")
		sizeUnit   = flag.String("unit", "ft", "Length unit: mm, m, ft, in")
		panels     = flag.Int("panels", 2, "Number of panels")
		glassU     = flag.Float64("glass-u", 0.30, "Center-of-glass U-value")
		glassUnit  = flag.String("glass-u-unit", "BTU", "Glass U-value unit: BTU or W")
		preset     = flag.String("preset", "Cero2", "Calibration preset (Cero2, Cero3)")
		refGlassU1 = flag.Float64("ref-glass-u1", 0, "Reference glass U #1 (overrides preset with the other three)")
		refTotalU1 = flag.Float64("ref-total-u1", 0, "Reference total U #1")
		refGlassU2 = flag.Float64("ref-glass-u2", 0, "Reference glass U #2")
		refTotalU2 = flag.Float64("ref-total-u2", 0, "Reference total U #2")
		refUnit    = flag.String("ref-u-unit", "BTU", "Reference U-value unit: BTU or W")
		recess     = flag.Float64("recess", 0, "Frame recess fraction (0-1)")
		recessEff  = flag.Float64("recess-effectiveness", estimate.DefaultRecessEffectiveness, "Recess effectiveness (0-1)")
		strict     = flag.Bool("strict", false, "Reject implausible area partitions")
		pdfOut     = flag.String("pdf", "", "Optional PDF datasheet output path")
		project    = flag.String("project", "", "Project name for the datasheet")
	)
	flag.Parse()

	lengthUnit, err := units.ParseLengthUnit(*sizeUnit)
	if err != nil {
		fatalf("invalid -unit: %v", err)
	}
	glassUUnit, err := units.ParseUValueUnit(*glassUnit)
	if err != nil {
		fatalf("invalid -glass-u-unit: %v", err)
	}

	cal, err := resolveCalibration(*preset, *refGlassU1, *refTotalU1, *refGlassU2, *refTotalU2, *refUnit)
	if err != nil {
		fatalf("%v", err)
	}

	var opts []estimate.Option
	if *strict {
		opts = append(opts, estimate.WithStrictAreas())
	}

	door := estimate.DoorSpec{Width: *width, Height: *height, Unit: lengthUnit, Panels: *panels}
	result, err := estimate.New(opts...).Estimate(
		door,
		estimate.GlassSpec{U: *glassU, Unit: glassUUnit},
		cal,
		estimate.RecessConfig{Fraction: *recess, Effectiveness: *recessEff},
	)
	if err != nil {
		fatalf("estimation failed: %v", err)
	}

	printReport(door, result)

	if *pdfOut != "" {
		f, err := os.Create(*pdfOut)
		if err != nil {
			fatalf("creating %s: %v", *pdfOut, err)
		}
		defer f.Close()
		meta := report.DatasheetMeta{Project: *project}
		if err := report.WriteDatasheet(f, meta, door, result); err != nil {
			fatalf("writing datasheet: %v", err)
		}
		fmt.Printf("\nDatasheet written to %s\n", *pdfOut)
	}
}

func resolveCalibration(preset string, g1, t1, g2, t2 float64, unitToken string) (estimate.ReferenceCalibration, error) {
	if g1 != 0 || t1 != 0 || g2 != 0 || t2 != 0 {
		unit, err := units.ParseUValueUnit(unitToken)
		if err != nil {
			return estimate.ReferenceCalibration{}, fmt.Errorf("invalid -ref-u-unit: %w", err)
		}
		return estimate.ReferenceCalibration{
			GlassU1: g1, TotalU1: t1,
			GlassU2: g2, TotalU2: t2,
			Unit: unit,
		}, nil
	}
	p, err := estimate.PresetByName(preset)
	if err != nil {
		return estimate.ReferenceCalibration{}, err
	}
	return p.Calibration, nil
}

func printReport(door estimate.DoorSpec, result *estimate.Result) {
	d := result.Diagnostics

	fmt.Printf("Glazed Door U-Value Estimate\n")
	fmt.Printf("============================\n\n")
	fmt.Printf("Unit: %g x %g %s, %d panels\n", door.Width, door.Height, door.Unit, door.Panels)
	if d.Panels > 2 {
		fmt.Printf("  2-panel equivalent: %g x %g %s\n", d.ScaledWidth, d.ScaledHeight, door.Unit)
	}
	fmt.Printf("\nAssembly U-value:\n")
	fmt.Printf("  %.3f W/m²K\n", result.UMetric)
	fmt.Printf("  %.3f BTU/hr·ft²·°F\n", result.UBTU)
	fmt.Printf("\nArea partition (m²):\n")
	fmt.Printf("  Total: %8.4f\n", result.Areas.TotalM2)
	fmt.Printf("  Glass: %8.4f\n", result.Areas.GlassM2)
	fmt.Printf("  Edge:  %8.4f\n", result.Areas.EdgeM2)
	fmt.Printf("  Frame: %8.4f\n", result.Areas.FrameM2)
	fmt.Printf("\nComponent U-values (W/m²K):\n")
	fmt.Printf("  Glass:          %8.4f\n", result.UGlass)
	fmt.Printf("  Edge:           %8.3f\n", result.UEdge)
	fmt.Printf("  Frame raw:      %8.3f\n", result.UFrameRaw)
	fmt.Printf("  Frame adjusted: %8.3f\n", result.UFrameAdjusted)
	fmt.Printf("\nDiagnostics:\n")
	fmt.Printf("  Aspect ratio: %.4f\n", d.AspectRatio)
	fmt.Printf("  Size factor:  %.4f\n", d.SizeFactor)
	fmt.Printf("  Frame width:  %.1f mm\n", d.FrameWidthMM)
	fmt.Printf("  Edge zone:    %.1f mm\n", d.EdgeZoneMM)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
