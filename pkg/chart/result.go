package chart

import (
	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/flow"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/chart/label"
	"github.com/matzehuels/applyviz/pkg/geom"
	"github.com/matzehuels/applyviz/pkg/render/anim"
	"github.com/matzehuels/applyviz/pkg/stats"
)

// Rect is an axis-aligned region of the drawing surface.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the middle of the rectangle.
func (r Rect) Center() geom.Point {
	return geom.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// LabelMode is how wedges are annotated.
type LabelMode string

const (
	ModeNone   LabelMode = "none"
	ModeLabels LabelMode = "labels"
	ModeLegend LabelMode = "legend"
)

// Slice is a laid-out wedge with the color it is drawn in.
type Slice struct {
	donut.Wedge
	Color string `json:"color"`
}

// ID returns the interaction identity of the slice.
func (s Slice) ID() interact.ElementID { return interact.WedgeID(s.Datum.Label) }

// LegendEntry is one label/color/percentage row. It hovers the wedge with
// the same label.
type LegendEntry struct {
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
	Value   float64 `json:"value"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// ID returns the interaction identity of the legend entry.
func (e LegendEntry) ID() interact.ElementID { return interact.LegendID(e.Label) }

// Legend is the legend region.
type Legend struct {
	Position LegendPosition `json:"position"`
	Frame    Rect           `json:"frame"`
	Swatch   float64        `json:"swatch"`
	Entries  []LegendEntry  `json:"entries"`
}

// DonutLayout is the categorical chart. Wedge and label coordinates are
// relative to Center.
type DonutLayout struct {
	Frame       Rect              `json:"frame"`
	Center      geom.Point        `json:"center"`
	InnerRadius float64           `json:"innerRadius"`
	OuterRadius float64           `json:"outerRadius"`
	Total       float64           `json:"total"`
	Mode        LabelMode         `json:"mode"`
	Slices      []Slice           `json:"slices"`
	Labels      []label.Candidate `json:"labels,omitempty"`
	Legend      *Legend           `json:"legend,omitempty"`
}

// Empty reports whether the donut has no wedges.
func (d DonutLayout) Empty() bool { return len(d.Slices) == 0 }

// FlowLayout is the journey diagram. Node and link coordinates are relative
// to the frame origin.
type FlowLayout struct {
	Frame Rect `json:"frame"`
	flow.Layout
}

// LayoutResult is the immutable output of [Build]. It holds no reference to
// any drawing API.
type LayoutResult struct {
	ChartID   string          `json:"chartId"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	FontSize  float64         `json:"fontSize"`
	Donut     *DonutLayout    `json:"donut,omitempty"`
	Flow      *FlowLayout     `json:"flow,omitempty"`
	Animation anim.Spec       `json:"animation"`
	Warnings  []stats.Warning `json:"warnings,omitempty"`
}

// Elements lists every interactive element for an interaction controller.
func (r LayoutResult) Elements() []interact.Element {
	var out []interact.Element
	if r.Donut != nil {
		for _, s := range r.Donut.Slices {
			out = append(out, interact.Element{
				ID:      s.ID(),
				Label:   s.Datum.Label,
				Value:   s.Datum.Value,
				Percent: s.DisplayPercent(),
			})
		}
	}
	if r.Flow != nil {
		for _, n := range r.Flow.Nodes {
			out = append(out, interact.Element{
				ID:    interact.NodeID(n.ID),
				Label: n.Label,
				Value: n.Value,
			})
		}
		for _, l := range r.Flow.Links {
			out = append(out, interact.Element{
				ID:      interact.LinkID(l.SourceID, l.TargetID),
				Value:   l.Value,
				Percent: donut.RoundPercent(l.Percent),
				Link:    l.Kind,
			})
		}
	}
	return out
}

// ElementKeys returns the string form of every element id. Animation
// timelines retain exactly these.
func (r LayoutResult) ElementKeys() []string {
	elems := r.Elements()
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = e.ID.String()
	}
	return out
}
