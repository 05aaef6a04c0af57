// Package report renders estimation results as PDF datasheets and XLSX
// sweep workbooks.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/glazecalc/glazecalc/pkg/estimate"
)

// DatasheetMeta labels a PDF datasheet.
type DatasheetMeta struct {
	Project string
	Author  string
	Title   string
	Notes   string
}

// WriteDatasheet renders one estimation run as a single-page PDF datasheet.
func WriteDatasheet(w io.Writer, meta DatasheetMeta, door estimate.DoorSpec, result *estimate.Result) error {
	title := meta.Title
	if title == "" {
		title = "U-Value Estimate"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
		pdf.Ln(6)
	}
	if meta.Author != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Unit")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Size: %g x %g %s, %d panels", door.Width, door.Height, door.Unit, door.Panels))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Assembly U-value")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%.3f W/m²K  (%.3f BTU/hr·ft²·°F)", result.UMetric, result.UBTU))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Area partition")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rows := []string{
		fmt.Sprintf("Total: %.4f m²", result.Areas.TotalM2),
		fmt.Sprintf("Glass: %.4f m²", result.Areas.GlassM2),
		fmt.Sprintf("Edge of glass: %.4f m²", result.Areas.EdgeM2),
		fmt.Sprintf("Frame: %.4f m²", result.Areas.FrameM2),
	}
	for _, row := range rows {
		pdf.Cell(0, 6, row)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Component U-values (W/m²K)")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rows = []string{
		fmt.Sprintf("Center of glass: %.4f", result.UGlass),
		fmt.Sprintf("Edge of glass: %.3f", result.UEdge),
		fmt.Sprintf("Frame (raw): %.3f", result.UFrameRaw),
		fmt.Sprintf("Frame (recess adjusted): %.3f", result.UFrameAdjusted),
	}
	for _, row := range rows {
		pdf.Cell(0, 6, row)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	d := result.Diagnostics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Model diagnostics")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rows = []string{
		fmt.Sprintf("Aspect ratio: %.4f   Size factor: %.4f", d.AspectRatio, d.SizeFactor),
		fmt.Sprintf("Frame width: %.1f mm   Edge zone: %.1f mm", d.FrameWidthMM, d.EdgeZoneMM),
		fmt.Sprintf("Scaled size: %g x %g %s (2-panel equivalent)", d.ScaledWidth, d.ScaledHeight, door.Unit),
	}
	for _, row := range rows {
		pdf.Cell(0, 6, row)
		pdf.Ln(6)
	}

	if meta.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
	}

	return pdf.Output(w)
}
