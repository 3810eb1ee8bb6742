// Package engine implements the best-fit cutting stock heuristic that
// assigns cut items to fixed-length stock bars.
package engine

import (
	"sort"

	"github.com/piwi3910/barcut/internal/model"
)

// Packer runs the 1D best-fit bin-packing algorithm.
type Packer struct {
	Settings model.CutSettings
}

func New(settings model.CutSettings) *Packer {
	return &Packer{Settings: settings}
}

// Pack assigns the given cut items to stock bars and returns the bars in
// creation order.
//
// Items are taken largest first (stable sort, so equal lengths keep their
// input order), and each item goes into the open bin that leaves the
// smallest remaining capacity after the cut. When no open bin can take the
// item a new bar is opened. An item whose length plus kerf exceeds the
// stock length still gets a bar of its own; the resulting negative
// remaining capacity is kept visible for the reporters.
//
// The result is deterministic for identical input and is not mutated
// after return.
func (p *Packer) Pack(items []model.CutItem) []model.Bin {
	sorted := make([]model.CutItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LengthMM > sorted[j].LengthMM
	})

	stockLength := float64(p.Settings.StockLengthMM)
	var bins []model.Bin

	for _, item := range sorted {
		effective := float64(item.LengthMM) + p.Settings.KerfMM

		// Best fit: among bins that can take the item, pick the one with
		// the smallest leftover. The first-opened bin wins ties.
		bestIdx := -1
		bestLeftover := 0.0
		for i, bin := range bins {
			if bin.RemainingMM < effective {
				continue
			}
			leftover := bin.RemainingMM - effective
			if bestIdx < 0 || leftover < bestLeftover {
				bestIdx = i
				bestLeftover = leftover
			}
		}

		if bestIdx >= 0 {
			bins[bestIdx].RemainingMM -= effective
			bins[bestIdx].Cuts = append(bins[bestIdx].Cuts, item)
			continue
		}

		bins = append(bins, model.Bin{
			RemainingMM: stockLength - effective,
			Cuts:        []model.CutItem{item},
		})
	}

	return bins
}

// GroupResult holds the packing outcome for one profile group.
type GroupResult struct {
	Profile string              `json:"profile"`
	Parts   []model.PartRequest `json:"parts"`
	Bins    []model.Bin         `json:"bins"`
}

// PackGroups expands and packs each profile group independently, one
// result per group in the group order given. Groups share no state, so
// the per-group bin sequences do not depend on each other.
func PackGroups(groups []model.ProfileGroup, settings model.CutSettings) []GroupResult {
	packer := New(settings)
	results := make([]GroupResult, 0, len(groups))
	for _, g := range groups {
		results = append(results, GroupResult{
			Profile: g.Profile,
			Parts:   g.Parts,
			Bins:    packer.Pack(model.ExpandItems(g.Parts)),
		})
	}
	return results
}
