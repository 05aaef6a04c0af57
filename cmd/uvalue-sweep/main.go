// Command uvalue-sweep estimates U-values across a dimension range for one
// or more panel counts, writing the table as CSV or XLSX and printing
// summary statistics per panel count.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/glazecalc/glazecalc/pkg/estimate"
	"github.com/glazecalc/glazecalc/pkg/report"
	"github.com/glazecalc/glazecalc/pkg/units"
)

func main() {
	var (
		axis      = flag.String("axis", "width", "Swept dimension: width or height")
		from      = flag.Float64("from", 8.0, "Sweep start")
		to        = flag.Float64("to", 24.0, "Sweep end")
		step      = flag.Float64("step", 1.0, "Sweep step")
		width     = flag.Float64("width", 12.0, "Fixed width (when sweeping height)")
		height    = flag.Float64("height", 9.0, "Fixed height (when sweeping width)")
		sizeUnit  = flag.String("unit", "ft", "Length unit: mm, m, ft, in")
		panelsArg = flag.String("panels", "2,4", "Comma-separated panel counts")
		glassU    = flag.Float64("glass-u", 0.30, "Center-of-glass U-value")
		glassUnit = flag.String("glass-u-unit", "BTU", "Glass U-value unit: BTU or W")
		preset    = flag.String("preset", "Cero2", "Calibration preset (Cero2, Cero3)")
		recess    = flag.Float64("recess", 0, "Frame recess fraction (0-1)")
		recessEff = flag.Float64("recess-effectiveness", estimate.DefaultRecessEffectiveness, "Recess effectiveness (0-1)")
		csvOut    = flag.String("csv", "", "CSV output file path (default stdout)")
		xlsxOut   = flag.String("xlsx", "", "Optional XLSX output file path")
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
	p, err := estimate.PresetByName(*preset)
	if err != nil {
		fatalf("%v", err)
	}
	panels, err := parsePanels(*panelsArg)
	if err != nil {
		fatalf("invalid -panels: %v", err)
	}

	table, err := estimate.New().Sweep(estimate.SweepRequest{
		Door:        estimate.DoorSpec{Width: *width, Height: *height, Unit: lengthUnit},
		Glass:       estimate.GlassSpec{U: *glassU, Unit: glassUUnit},
		Calibration: p.Calibration,
		Recess:      estimate.RecessConfig{Fraction: *recess, Effectiveness: *recessEff},
		Axis:        estimate.SweepAxis(*axis),
		From:        *from,
		To:          *to,
		Step:        *step,
		Panels:      panels,
	})
	if err != nil {
		fatalf("sweep failed: %v", err)
	}

	if *xlsxOut != "" {
		f, err := os.Create(*xlsxOut)
		if err != nil {
			fatalf("creating %s: %v", *xlsxOut, err)
		}
		if err := report.WriteSweepWorkbook(f, table); err != nil {
			f.Close()
			fatalf("writing workbook: %v", err)
		}
		f.Close()
		fmt.Fprintf(os.Stderr, "Workbook written to %s\n", *xlsxOut)
	} else {
		out := os.Stdout
		if *csvOut != "" {
			f, err := os.Create(*csvOut)
			if err != nil {
				fatalf("creating %s: %v", *csvOut, err)
			}
			defer f.Close()
			out = f
		}
		if err := writeCSV(out, table); err != nil {
			fatalf("writing CSV: %v", err)
		}
	}

	printSummary(table)
}

func parsePanels(arg string) ([]int, error) {
	var panels []int
	for _, tok := range strings.Split(arg, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, err
		}
		panels = append(panels, n)
	}
	return panels, nil
}

func writeCSV(f *os.File, table *estimate.SweepTable) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{fmt.Sprintf("%s_%s", table.Axis, table.Unit)}
	for _, panels := range table.Panels {
		header = append(header,
			fmt.Sprintf("u_metric_%dp", panels),
			fmt.Sprintf("u_btu_%dp", panels))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, v := range table.Values {
		row := []string{strconv.FormatFloat(v, 'g', -1, 64)}
		for j := range table.Panels {
			row = append(row,
				strconv.FormatFloat(table.UMetric[i][j], 'f', 3, 64),
				strconv.FormatFloat(table.UBTU[i][j], 'f', 3, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func printSummary(table *estimate.SweepTable) {
	fmt.Fprintf(os.Stderr, "\nSweep summary (%d points, %s %g-%g %s):\n",
		len(table.Values), table.Axis, table.Values[0], table.Values[len(table.Values)-1], table.Unit)

	for j, panels := range table.Panels {
		col := make([]float64, len(table.Values))
		for i := range table.Values {
			col[i] = table.UBTU[i][j]
		}
		mean := stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		fmt.Fprintf(os.Stderr, "  %d panels: U_btu min %.3f  max %.3f  mean %.3f  stddev %.3f\n",
			panels, minOf(col), maxOf(col), mean, sd)
	}
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
