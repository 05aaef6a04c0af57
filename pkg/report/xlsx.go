package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/glazecalc/glazecalc/pkg/estimate"
)

const sweepSheet = "Sweep"

// WriteSweepWorkbook renders a sweep table as an XLSX workbook: one row per
// swept dimension value, one pair of U-value columns per panel count.
func WriteSweepWorkbook(w io.Writer, table *estimate.SweepTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sweepSheet); err != nil {
		return err
	}

	// Header row.
	header := []any{fmt.Sprintf("%s (%s)", table.Axis, table.Unit)}
	for _, panels := range table.Panels {
		header = append(header,
			fmt.Sprintf("U W/m²K (%d panels)", panels),
			fmt.Sprintf("U BTU (%d panels)", panels))
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, v := range table.Values {
		row := []any{v}
		for j := range table.Panels {
			row = append(row, table.UMetric[i][j], table.UBTU[i][j])
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sweepSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
