package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/report"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each bundle label's QR code. One
// label is printed per stock bar so the saw operator can tag the bundle
// it produces.
type LabelInfo struct {
	Profile       string  `json:"profile"`
	PatternName   string  `json:"pattern"`
	StockLengthMM int     `json:"stock_mm"`
	CutDetails    string  `json:"cuts"`
	WasteMM       float64 `json:"waste_mm"`
	OverLength    bool    `json:"over_length,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts one label per stock bar from the results.
func CollectLabelInfos(results []engine.GroupResult, settings model.CutSettings) []LabelInfo {
	var labels []LabelInfo
	for _, res := range results {
		for _, pat := range report.PatternRows(res.Bins, settings) {
			labels = append(labels, LabelInfo{
				Profile:       res.Profile,
				PatternName:   pat.Name,
				StockLengthMM: settings.StockLengthMM,
				CutDetails:    pat.CutDetails,
				WasteMM:       pat.WasteMM,
				OverLength:    pat.OverLength,
			})
		}
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded bundle labels, one per stock
// bar in the results. Each label carries the profile, pattern name, and
// a QR code encoding the cut list as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US
// Letter).
func ExportLabels(path string, results []engine.GroupResult, settings model.CutSettings) error {
	labels := CollectLabelInfos(results, settings)
	if len(labels) == 0 {
		return fmt.Errorf("no bars to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q %s: %w", label.Profile, label.PatternName, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area on the left
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	profile := info.Profile
	if pdf.GetStringWidth(profile) > textW {
		for len(profile) > 0 && pdf.GetStringWidth(profile+"...") > textW {
			profile = profile[:len(profile)-1]
		}
		profile += "..."
	}
	pdf.CellFormat(textW, 4.5, profile, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	barInfo := fmt.Sprintf("%s / %d mm bar", info.PatternName, info.StockLengthMM)
	pdf.CellFormat(textW, 3.5, barInfo, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)

	cuts := info.CutDetails
	if pdf.GetStringWidth(cuts) > textW {
		for len(cuts) > 0 && pdf.GetStringWidth(cuts+"...") > textW {
			cuts = cuts[:len(cuts)-1]
		}
		cuts += "..."
	}
	pdf.CellFormat(textW, 3, cuts, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	if info.OverLength {
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(textW, 3, "OVER LENGTH", "", 0, "L", false, 0, "")
	} else {
		pdf.CellFormat(textW, 3, fmt.Sprintf("Waste: %.0f mm", info.WasteMM), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}
