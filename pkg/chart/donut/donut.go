// Package donut turns categorical (label, value) pairs into donut wedges.
//
// The layout is a pure function of its input: [Layout] filters out
// non-positive values, optionally orders the rest by descending value, and
// allocates each datum an angular span proportional to its share of the
// total. Padding gaps are placed between consecutive wedges so that the spans
// plus the padding add up to exactly one full turn.
//
// Labels identify wedges, so data sharing a label are merged into one wedge
// carrying the summed value and the first datum's color.
//
// Degenerate inputs never fail. Empty input or an all-zero input yields a
// [Pie] with no wedges and a zero total, which renderers draw as a neutral
// empty-state ring. A single datum yields one wedge spanning the full turn
// minus one padding gap.
package donut

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/applyviz/pkg/geom"
)

// DefaultPadAngle is the gap in radians placed between consecutive wedges.
const DefaultPadAngle = 0.02

// Datum is one categorical input value.
type Datum struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"` // optional; empty means "use the scheme"
}

// Wedge is the angular slice allocated to a datum.
type Wedge struct {
	Datum      Datum   `json:"datum"`
	Index      int     `json:"index"` // position in the laid-out order
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	PadAngle   float64 `json:"pad_angle"` // gap following this wedge
	Percent    float64 `json:"percent"`   // unrounded share of the total, 0..100
}

// Span returns the angular width of the wedge, excluding padding.
func (w Wedge) Span() float64 { return w.EndAngle - w.StartAngle }

// MidAngle returns the angle halfway through the wedge.
func (w Wedge) MidAngle() float64 { return (w.StartAngle + w.EndAngle) / 2 }

// DisplayPercent returns the share rounded to one decimal.
func (w Wedge) DisplayPercent() float64 { return RoundPercent(w.Percent) }

// Share is a label/value/percentage row used for legends and totals.
type Share struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color,omitempty"`
}

// Pie is the result of laying out one categorical series.
type Pie struct {
	Wedges []Wedge `json:"wedges"`
	Shares []Share `json:"shares"`
	Total  float64 `json:"total"`
}

// Empty reports whether the pie has nothing to draw.
func (p Pie) Empty() bool { return len(p.Wedges) == 0 }

// Options controls [Layout].
type Options struct {
	// PadAngle is the gap between consecutive wedges, in radians.
	PadAngle float64
	// SortDescending orders wedges by descending value (stable for ties).
	SortDescending bool
	// RetainZero keeps zero-valued entries in Shares. They never get wedges.
	RetainZero bool
}

// DefaultOptions returns the standard layout options.
func DefaultOptions() Options {
	return Options{PadAngle: DefaultPadAngle, SortDescending: true}
}

// Layout computes wedges for data. It never fails: non-positive and NaN
// values are dropped, and a zero total produces an empty pie. Total is the
// plain sum and may be +Inf when the values overflow; the wedges and
// percentages are still exact.
func Layout(data []Datum, opts Options) Pie {
	kept := make([]Datum, 0, len(data))
	seen := make(map[string]int, len(data))
	for _, d := range data {
		if !(d.Value > 0) || math.IsInf(d.Value, 1) {
			continue
		}
		if i, ok := seen[d.Label]; ok {
			kept[i].Value += d.Value
			continue
		}
		seen[d.Label] = len(kept)
		kept = append(kept, d)
	}
	var zeros []Datum
	if opts.RetainZero {
		for _, d := range data {
			if _, ok := seen[d.Label]; ok || d.Value != 0 {
				continue
			}
			seen[d.Label] = -1
			zeros = append(zeros, d)
		}
	}

	if opts.SortDescending {
		slices.SortStableFunc(kept, func(a, b Datum) int {
			return cmp.Compare(b.Value, a.Value)
		})
	}

	if len(kept) == 0 {
		return Pie{Shares: zeroShares(zeros)}
	}

	// Shares are computed against the peak so that finite values whose sum
	// overflows still divide the turn correctly.
	var peak, total, scaled float64
	for _, d := range kept {
		peak = max(peak, d.Value)
		total += d.Value
	}
	for _, d := range kept {
		scaled += d.Value / peak
	}

	n := float64(len(kept))
	pad := max(0, opts.PadAngle)
	if n*pad >= geom.FullTurn {
		pad = 0
	}
	avail := geom.FullTurn - n*pad

	pie := Pie{
		Wedges: make([]Wedge, len(kept)),
		Shares: make([]Share, 0, len(kept)+len(zeros)),
		Total:  total,
	}

	angle := 0.0
	for i, d := range kept {
		share := (d.Value / peak) / scaled
		w := Wedge{
			Datum:      d,
			Index:      i,
			StartAngle: angle,
			EndAngle:   angle + share*avail,
			PadAngle:   pad,
			Percent:    share * 100,
		}
		pie.Wedges[i] = w
		pie.Shares = append(pie.Shares, Share{Label: d.Label, Value: d.Value, Percent: w.Percent, Color: d.Color})
		angle = w.EndAngle + pad
	}
	// Pin the last boundary so accumulated rounding cannot leak past a full turn.
	last := &pie.Wedges[len(pie.Wedges)-1]
	last.EndAngle = geom.FullTurn - pad

	pie.Shares = append(pie.Shares, zeroShares(zeros)...)
	return pie
}

func zeroShares(zeros []Datum) []Share {
	if len(zeros) == 0 {
		return nil
	}
	out := make([]Share, len(zeros))
	for i, d := range zeros {
		out[i] = Share{Label: d.Label, Color: d.Color}
	}
	return out
}

// RoundPercent rounds a percentage to one decimal for display.
func RoundPercent(p float64) float64 { return math.Round(p*10) / 10 }

// Percentages returns the display percentages of every wedge in order.
func (p Pie) Percentages() []float64 {
	out := make([]float64, len(p.Wedges))
	for i, w := range p.Wedges {
		out[i] = w.DisplayPercent()
	}
	return out
}

// TotalSpan returns the summed angular spans plus padding. For a non-empty
// pie this equals a full turn.
func (p Pie) TotalSpan() float64 {
	var sum float64
	for _, w := range p.Wedges {
		sum += w.Span() + w.PadAngle
	}
	return sum
}

// Find returns the wedge with the given label.
func (p Pie) Find(label string) (Wedge, bool) {
	for _, w := range p.Wedges {
		if w.Datum.Label == label {
			return w, true
		}
	}
	return Wedge{}, false
}
