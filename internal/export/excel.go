// Package export writes cut optimization results to spreadsheet, PDF,
// and QR-label formats.
package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/report"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet all results are written to.
const SheetName = "Cutting Stock Results"

var aggregateHeader = []interface{}{
	"Profile",
	"Stocks Used",
	"Stock Length (mm)",
	"Weight (kg/m)",
	"Total Usage (m)",
	"Effective Usage (m)",
	"Waste (m)",
	"Total Order Weight (kg)",
	"Effective Weight (kg)",
	"Waste Weight (kg)",
}

var patternHeader = []interface{}{
	"Pattern Name",
	"Pattern Length (mm)",
	"Cut Details",
	"Remaining Waste (mm)",
}

// BuildWorkbook assembles the results workbook in memory. The single
// sheet holds the aggregate report block followed by a pattern details
// block per profile, the same layout the text reporter prints.
func BuildWorkbook(results []engine.GroupResult, settings model.CutSettings) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	row := 1
	if err := setRow(f, row, []interface{}{"--- Final Aggregate Report ---"}); err != nil {
		return nil, err
	}
	row++
	if err := setRow(f, row, aggregateHeader); err != nil {
		return nil, err
	}
	row++

	for _, agg := range report.AggregateAll(results, settings) {
		cells := []interface{}{
			agg.Profile,
			agg.StocksUsed,
			agg.StockLengthMM,
			agg.WeightPerMeterKG,
			agg.TotalStockM,
			agg.EffectiveUsageM,
			agg.WasteM,
			agg.TotalOrderWeightKG,
			agg.EffectiveWeightKG,
			agg.WasteWeightKG,
		}
		if err := setRow(f, row, cells); err != nil {
			return nil, err
		}
		row++
	}

	row++
	if err := setRow(f, row, []interface{}{"--- Pattern Details Table ---"}); err != nil {
		return nil, err
	}
	row++

	for _, res := range results {
		if err := setRow(f, row, []interface{}{fmt.Sprintf("Profile: %s", res.Profile)}); err != nil {
			return nil, err
		}
		row++
		if err := setRow(f, row, patternHeader); err != nil {
			return nil, err
		}
		row++

		for _, pat := range report.PatternRows(res.Bins, settings) {
			name := pat.Name
			if pat.OverLength {
				name += " [over length]"
			}
			cells := []interface{}{name, pat.UsedMM, pat.CutDetails, pat.WasteMM}
			if err := setRow(f, row, cells); err != nil {
				return nil, err
			}
			row++
		}
		row++
	}

	return f, nil
}

// ExportExcel writes the results workbook to the given path.
func ExportExcel(path string, results []engine.GroupResult, settings model.CutSettings) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to export")
	}

	f, err := BuildWorkbook(results, settings)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// WriteWorkbook streams the results workbook to a writer, for handlers
// that serve the file without touching disk.
func WriteWorkbook(w io.Writer, results []engine.GroupResult, settings model.CutSettings) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to export")
	}

	f, err := BuildWorkbook(results, settings)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
