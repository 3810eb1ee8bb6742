package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/report"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
)

// ExportPDF generates a PDF document with the aggregate report on the
// first page and one page of cutting patterns per profile group.
func ExportPDF(path string, results []engine.GroupResult, settings model.CutSettings) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)

	pdf.AddPage()
	renderAggregatePage(pdf, results, settings)

	for _, res := range results {
		pdf.AddPage()
		renderPatternPage(pdf, res, settings)
	}

	return pdf.OutputFileAndClose(path)
}

// renderAggregatePage draws the per-profile aggregate table.
func renderAggregatePage(pdf *fpdf.Fpdf, results []engine.GroupResult, settings model.CutSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Stock Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, y)
	line := fmt.Sprintf("Stock length: %d mm | Cut kerf: %.1f mm", settings.StockLengthMM, settings.KerfMM)
	pdf.CellFormat(200, 6, line, "", 0, "L", false, 0, "")
	y += 10

	colWidths := []float64{40, 20, 26, 24, 26, 28, 22, 28, 28, 25}
	headers := []string{
		"Profile", "Stocks", "Stock Len (mm)", "Weight (kg/m)",
		"Total Use (m)", "Effective (m)", "Waste (m)",
		"Order Wt (kg)", "Effective Wt (kg)", "Waste Wt (kg)",
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 8)
	for i, agg := range report.AggregateAll(results, settings) {
		rowData := []string{
			agg.Profile,
			fmt.Sprintf("%d", agg.StocksUsed),
			fmt.Sprintf("%d", agg.StockLengthMM),
			fmt.Sprintf("%.2f", agg.WeightPerMeterKG),
			fmt.Sprintf("%.3f", agg.TotalStockM),
			fmt.Sprintf("%.3f", agg.EffectiveUsageM),
			fmt.Sprintf("%.3f", agg.WasteM),
			fmt.Sprintf("%.2f", agg.TotalOrderWeightKG),
			fmt.Sprintf("%.2f", agg.EffectiveWeightKG),
			fmt.Sprintf("%.2f", agg.WasteWeightKG),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BarCut - Steel Bar Cutting Optimizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderPatternPage draws the cutting patterns for one profile group.
func renderPatternPage(pdf *fpdf.Fpdf, res engine.GroupResult, settings model.CutSettings) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Profile: %s (%d bars of %d mm)", res.Profile, len(res.Bins), settings.StockLengthMM)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	y := marginTop + 14

	colWidths := []float64{35, 35, 160, 37}
	headers := []string{"Pattern Name", "Pattern Len (mm)", "Cut Details", "Waste (mm)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for i, pat := range report.PatternRows(res.Bins, settings) {
		if y > pageHeight-marginBottom-rowHeight {
			pdf.AddPage()
			y = marginTop
		}

		name := pat.Name
		if pat.OverLength {
			name += " [over length]"
			pdf.SetTextColor(200, 0, 0)
		}

		rowData := []string{
			name,
			fmt.Sprintf("%.0f", pat.UsedMM),
			pat.CutDetails,
			fmt.Sprintf("%.0f", pat.WasteMM),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			align := "C"
			if j == 2 {
				align = "L"
			}
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, align, true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight

		pdf.SetTextColor(0, 0, 0)
	}
}
