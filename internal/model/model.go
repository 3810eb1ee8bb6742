package model

import "github.com/google/uuid"

// PartRequest is one line of a required cut list: a steel profile
// (section size plus grade), the cut length, how many pieces are needed,
// and optionally the linear weight used to derive mass figures.
type PartRequest struct {
	ID               string  `json:"id"`
	Size             string  `json:"size"`
	Grade            string  `json:"grade"`
	LengthMM         int     `json:"length_mm"`
	Quantity         int     `json:"quantity"`
	WeightPerMeterKG float64 `json:"weight_per_meter_kg"`
}

func NewPartRequest(size, grade string, lengthMM, quantity int, weightPerMeterKG float64) PartRequest {
	return PartRequest{
		ID:               uuid.New().String()[:8],
		Size:             size,
		Grade:            grade,
		LengthMM:         lengthMM,
		Quantity:         quantity,
		WeightPerMeterKG: weightPerMeterKG,
	}
}

// Profile returns the grouping key "<Size>_<Grade>". Packing runs
// independently per profile: bars of different sections or grades are
// never cut from the same stock.
func (p PartRequest) Profile() string {
	return p.Size + "_" + p.Grade
}

// Valid reports whether the request describes at least one cuttable piece.
// A request with an empty profile (no size and no grade) is not valid.
func (p PartRequest) Valid() bool {
	return p.LengthMM > 0 && p.Quantity > 0 && p.Profile() != "_"
}

// CutItem is a single physical piece to be cut from stock.
type CutItem struct {
	Profile  string `json:"profile"`
	LengthMM int    `json:"length_mm"`
}

// Bin is one stock bar together with the pieces assigned to it, in
// assignment order. RemainingMM is the capacity left after each assigned
// cut consumed its length plus kerf.
type Bin struct {
	RemainingMM float64   `json:"remaining_mm"`
	Cuts        []CutItem `json:"cuts"`
}

// UsedMM returns the consumed length of the bar, kerf included.
func (b Bin) UsedMM(stockLengthMM int) float64 {
	return float64(stockLengthMM) - b.RemainingMM
}

// OverLength reports whether this bin holds a cut whose effective length
// exceeds the stock bar. Such cuts are placed alone and leave a negative
// remaining capacity; the condition is kept visible rather than
// normalized so reporters and callers can flag it.
func (b Bin) OverLength() bool {
	return b.RemainingMM < 0
}

// CutSettings holds the stock and saw parameters shared by one
// optimization run.
type CutSettings struct {
	StockLengthMM int     `json:"stock_length_mm"` // Length of one stock bar in mm
	KerfMM        float64 `json:"kerf_mm"`         // Material lost per cut in mm
}

func DefaultSettings() CutSettings {
	return CutSettings{
		StockLengthMM: 6000,
		KerfMM:        2.0,
	}
}

// ExpandItems materializes the individual cut items for a list of part
// requests: each request contributes exactly Quantity identical items.
func ExpandItems(parts []PartRequest) []CutItem {
	var items []CutItem
	for _, p := range parts {
		item := CutItem{Profile: p.Profile(), LengthMM: p.LengthMM}
		for i := 0; i < p.Quantity; i++ {
			items = append(items, item)
		}
	}
	return items
}

// ProfileGroup holds the part requests of a single profile.
type ProfileGroup struct {
	Profile string        `json:"profile"`
	Parts   []PartRequest `json:"parts"`
}

// GroupByProfile splits part requests into groups by profile key,
// preserving first-seen profile order so repeated runs produce the same
// group ordering. Requests with the empty "_" profile are dropped.
func GroupByProfile(parts []PartRequest) []ProfileGroup {
	index := make(map[string]int)
	var groups []ProfileGroup

	for _, p := range parts {
		key := p.Profile()
		if key == "_" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ProfileGroup{Profile: key})
		}
		groups[i].Parts = append(groups[i].Parts, p)
	}
	return groups
}
