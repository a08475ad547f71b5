package barter

import "math"

// Day outcome notes recorded on the barter
const (
	NoteBadDay    = "Bad day (loss)"
	NoteGoodDay   = "Good day (gain)"
	NoteNormalDay = "Normal day"
)

const (
	badDayBelow  = 0.2
	goodDayAbove = 0.8
	swingRate    = 0.2
)

// MaxExpenseEstimate bounds the expense pool so day outcomes stay finite
// and representable in JSON.
const MaxExpenseEstimate = 1e15

// Outcome is the result of one simulated day
type Outcome struct {
	Note       string
	Adjustment float64
	Estimate   float64 // expense estimate after the adjustment
}

// SimulateDay maps a uniform draw r in [0,1) onto a day outcome for estimate.
// r < 0.2 loses 20% of the pool, r > 0.8 gains 20%, anything else is flat.
// The resulting estimate never drops below zero.
func SimulateDay(r, estimate float64) Outcome {
	var out Outcome
	switch {
	case r < badDayBelow:
		out.Note = NoteBadDay
		out.Adjustment = -roundHalfUp(estimate * swingRate)
	case r > goodDayAbove:
		out.Note = NoteGoodDay
		out.Adjustment = roundHalfUp(estimate * swingRate)
	default:
		out.Note = NoteNormalDay
	}
	out.Estimate = math.Max(0, estimate+out.Adjustment)
	return out
}

// roundHalfUp rounds .5 toward positive infinity
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func estimateInRange(e float64) bool {
	return !math.IsNaN(e) && !math.IsInf(e, 0) && e >= 0 && e <= MaxExpenseEstimate
}
