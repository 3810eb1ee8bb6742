// Package report derives the cutting pattern and per-profile aggregate
// tables from packed bins. Both reporters are read-only projections: they
// never mutate the bins and produce identical output on repeated calls.
package report

import (
	"fmt"
	"strings"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
)

// PatternRow describes one cutting pattern (one stock bar) for display
// and export.
type PatternRow struct {
	Pattern    int     `json:"pattern"`
	Name       string  `json:"name"`
	UsedMM     float64 `json:"used_mm"`
	CutDetails string  `json:"cut_details"`
	WasteMM    float64 `json:"waste_mm"`
	OverLength bool    `json:"over_length"`
}

// PatternRows builds one row per bin, in packing order. Pattern numbers
// are 1-based.
func PatternRows(bins []model.Bin, settings model.CutSettings) []PatternRow {
	rows := make([]PatternRow, 0, len(bins))
	for i, bin := range bins {
		rows = append(rows, PatternRow{
			Pattern:    i + 1,
			Name:       fmt.Sprintf("Pattern %d", i+1),
			UsedMM:     bin.UsedMM(settings.StockLengthMM),
			CutDetails: cutDetails(bin.Cuts),
			WasteMM:    bin.RemainingMM,
			OverLength: bin.OverLength(),
		})
	}
	return rows
}

// cutDetails renders the cuts of one bin, collapsing consecutive runs of
// identical (profile, length) cuts into a single "Nx Profile(Lmm)" entry.
func cutDetails(cuts []model.CutItem) string {
	var entries []string
	for i := 0; i < len(cuts); {
		j := i
		for j < len(cuts) && cuts[j] == cuts[i] {
			j++
		}
		entries = append(entries, fmt.Sprintf("%dx %s(%dmm)", j-i, cuts[i].Profile, cuts[i].LengthMM))
		i = j
	}
	return strings.Join(entries, " + ")
}

// AggregateRow holds the per-profile usage, waste and weight totals.
type AggregateRow struct {
	Profile            string  `json:"profile"`
	StocksUsed         int     `json:"stocks_used"`
	StockLengthMM      int     `json:"stock_length_mm"`
	WeightPerMeterKG   float64 `json:"weight_per_meter_kg"`
	TotalStockM        float64 `json:"total_stock_m"`
	EffectiveUsageM    float64 `json:"effective_usage_m"`
	WasteM             float64 `json:"waste_m"`
	TotalOrderWeightKG float64 `json:"total_order_weight_kg"`
	EffectiveWeightKG  float64 `json:"effective_weight_kg"`
	WasteWeightKG      float64 `json:"waste_weight_kg"`
}

// Aggregate computes the totals for one packed profile group.
//
// Effective usage counts nominal cut lengths only; the kerf consumed by
// the saw is charged to waste, once per physical cut, matching the
// packer's effective-length accounting. Weight figures use the linear
// weight of the group's first request: a profile group is assumed to
// carry a single weight-per-meter value, and this is not validated.
func Aggregate(res engine.GroupResult, settings model.CutSettings) AggregateRow {
	stocksUsed := len(res.Bins)
	totalStockMM := float64(stocksUsed * settings.StockLengthMM)

	var usageMM float64
	var totalQuantity int
	for _, p := range res.Parts {
		usageMM += float64(p.LengthMM * p.Quantity)
		totalQuantity += p.Quantity
	}
	wasteMM := totalStockMM - usageMM - settings.KerfMM*float64(totalQuantity)

	row := AggregateRow{
		Profile:         res.Profile,
		StocksUsed:      stocksUsed,
		StockLengthMM:   settings.StockLengthMM,
		TotalStockM:     totalStockMM / 1000,
		EffectiveUsageM: usageMM / 1000,
		WasteM:          wasteMM / 1000,
	}
	if len(res.Parts) > 0 {
		row.WeightPerMeterKG = res.Parts[0].WeightPerMeterKG
	}
	if row.WeightPerMeterKG > 0 {
		row.TotalOrderWeightKG = row.TotalStockM * row.WeightPerMeterKG
		row.EffectiveWeightKG = row.EffectiveUsageM * row.WeightPerMeterKG
		row.WasteWeightKG = row.WasteM * row.WeightPerMeterKG
	}
	return row
}

// AggregateAll builds one aggregate row per group result, in input order.
func AggregateAll(results []engine.GroupResult, settings model.CutSettings) []AggregateRow {
	rows := make([]AggregateRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, Aggregate(res, settings))
	}
	return rows
}
