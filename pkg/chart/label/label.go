// Package label places direct labels around a donut chart.
//
// Placement is a single deterministic pass per hemisphere. Each visible wedge
// gets a candidate anchor at its angular midpoint on the label radius.
// Candidates are split into a left and a right group by the midpoint angle,
// each group is sorted top to bottom, and any label closer than the minimum
// spacing to its predecessor is pushed down to exactly that spacing. The pass
// is O(n) after sorting and never iterates, so it may leave labels below the
// natural chart bottom for very crowded hemispheres. Callers showing many
// slices should switch to a legend instead.
package label

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/geom"
)

// Side is the hemisphere a label is placed in.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// DefaultMinSliceAngle is the span below which a wedge gets no direct label.
const DefaultMinSliceAngle = 0.15

// lineHeight converts a font size into the minimum vertical spacing.
const lineHeight = 1.3

// SpacingForFont returns the minimum vertical spacing for a font size.
func SpacingForFont(fontSize float64) float64 { return fontSize * lineHeight }

// Candidate is a placed label. Coordinates are relative to the chart center.
type Candidate struct {
	Wedge     donut.Wedge   `json:"wedge"`
	Side      Side          `json:"side"`
	Text      string        `json:"text"`
	Anchor    geom.Point    `json:"anchor"` // natural position before collision resolution
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Connector [3]geom.Point `json:"connector"` // wedge edge, elbow, label
}

// TextAnchor returns the SVG text-anchor that keeps text outside the ring.
func (c Candidate) TextAnchor() string {
	if c.Side == Right {
		return "start"
	}
	return "end"
}

// Options controls [Place].
type Options struct {
	// OuterRadius is where connectors start (the wedge edge).
	OuterRadius float64
	// LabelRadius is the radius of the natural anchor and connector elbow.
	LabelRadius float64
	// AlignX is the horizontal distance from center at which every label on a
	// side is aligned. Zero means 1.1 × LabelRadius.
	AlignX float64
	// MinSliceAngle drops wedges thinner than this span.
	MinSliceAngle float64
	// MinVerticalSpacing is the smallest vertical gap between labels on one side.
	MinVerticalSpacing float64
	// ShowPercent appends the rounded percentage to the label text.
	ShowPercent bool
}

// Place computes collision-free labels for wedges. The result lists right
// side labels top to bottom, then left side labels top to bottom.
func Place(wedges []donut.Wedge, opts Options) []Candidate {
	alignX := opts.AlignX
	if alignX <= 0 {
		alignX = opts.LabelRadius * 1.1
	}

	var left, right []Candidate
	for _, w := range wedges {
		if w.Span() < opts.MinSliceAngle {
			continue
		}
		mid := geom.NormalizeAngle(w.MidAngle())
		anchor := geom.Polar(mid, opts.LabelRadius)
		c := Candidate{
			Wedge:  w,
			Text:   text(w, opts.ShowPercent),
			Anchor: anchor,
			Y:      anchor.Y,
		}
		c.Connector[0] = geom.Polar(mid, opts.OuterRadius)
		c.Connector[1] = anchor
		if mid < math.Pi {
			c.Side = Right
			right = append(right, c)
		} else {
			c.Side = Left
			left = append(left, c)
		}
	}

	spread(right, opts.MinVerticalSpacing, alignX)
	spread(left, opts.MinVerticalSpacing, -alignX)

	return append(right, left...)
}

// spread sorts one hemisphere top to bottom and applies the greedy push.
func spread(group []Candidate, spacing, x float64) {
	slices.SortStableFunc(group, func(a, b Candidate) int {
		return cmp.Compare(a.Anchor.Y, b.Anchor.Y)
	})
	for i := range group {
		if i > 0 && group[i].Y-group[i-1].Y < spacing {
			group[i].Y = group[i-1].Y + spacing
		}
		group[i].X = x
		group[i].Connector[2] = geom.Point{X: x, Y: group[i].Y}
	}
}

func text(w donut.Wedge, withPercent bool) string {
	if !withPercent {
		return w.Datum.Label
	}
	return fmt.Sprintf("%s %.1f%%", w.Datum.Label, w.DisplayPercent())
}

// MinGap returns the smallest vertical distance between two labels on the
// same side, or +Inf when no side has two labels.
func MinGap(labels []Candidate) float64 {
	gap := math.Inf(1)
	for _, side := range []Side{Left, Right} {
		var ys []float64
		for _, l := range labels {
			if l.Side == side {
				ys = append(ys, l.Y)
			}
		}
		slices.Sort(ys)
		for i := 1; i < len(ys); i++ {
			gap = min(gap, ys[i]-ys[i-1])
		}
	}
	return gap
}
