package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
)

// fmtNum renders a float with the shortest exact representation, so
// whole numbers print without a trailing ".0".
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteAggregateTable renders the final aggregate report as an aligned
// text table.
func WriteAggregateTable(w io.Writer, rows []AggregateRow) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Profile\tStocks Used\tStock Length (mm)\tWeight (kg/m)\tTotal Usage (m)\tEffective Usage (m)\tWaste (m)\tTotal Order Weight (kg)\tEffective Weight (kg)\tWaste Weight (kg)")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Profile, r.StocksUsed, r.StockLengthMM,
			fmtNum(r.WeightPerMeterKG),
			fmtNum(r.TotalStockM), fmtNum(r.EffectiveUsageM), fmtNum(r.WasteM),
			fmtNum(r.TotalOrderWeightKG), fmtNum(r.EffectiveWeightKG), fmtNum(r.WasteWeightKG))
	}
	return tw.Flush()
}

// WritePatternTables renders the cutting pattern details for every
// profile group, one block per profile in group order.
func WritePatternTables(w io.Writer, results []engine.GroupResult, settings model.CutSettings) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Pattern Name\tPattern Length (mm)\tCut Details\tRemaining Waste (mm)")
	for _, res := range results {
		fmt.Fprintf(tw, "Profile: %s\t\t\t\n", res.Profile)
		for _, row := range PatternRows(res.Bins, settings) {
			name := row.Name
			if row.OverLength {
				name += " [over length]"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				name, fmtNum(row.UsedMM), row.CutDetails, fmtNum(row.WasteMM))
		}
	}
	return tw.Flush()
}
