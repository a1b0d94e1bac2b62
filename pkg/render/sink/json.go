package sink

import (
	"encoding/json"

	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/geom"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	paths    bool
	tooltips bool
	compact  bool
}

// WithJSONPaths includes precomputed SVG path data for wedges and ribbons so
// consumers can draw without reimplementing the geometry.
func WithJSONPaths() JSONOption { return func(r *jsonRenderer) { r.paths = true } }

// WithJSONTooltips includes tooltip text for every interactive element.
func WithJSONTooltips() JSONOption { return func(r *jsonRenderer) { r.tooltips = true } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	chart.LayoutResult
	Paths    map[string]string `json:"paths,omitempty"`
	Tooltips map[string]string `json:"tooltips,omitempty"`
}

// RenderJSON exports the layout as a JSON document. The layout itself
// round-trips through [chart.LayoutResult]; paths and tooltips are extras
// keyed by element id.
func RenderJSON(res chart.LayoutResult, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{LayoutResult: res}
	if r.paths {
		out.Paths = buildPaths(res)
	}
	if r.tooltips {
		out.Tooltips = make(map[string]string)
		for _, e := range res.Elements() {
			out.Tooltips[e.ID.String()] = interact.TooltipText(e)
		}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildPaths(res chart.LayoutResult) map[string]string {
	paths := make(map[string]string)
	if d := res.Donut; d != nil {
		for _, s := range d.Slices {
			paths[s.ID().String()] = geom.ArcPath(d.InnerRadius, d.OuterRadius, s.StartAngle, s.EndAngle)
		}
	}
	if f := res.Flow; f != nil {
		for _, l := range f.Links {
			paths[interact.LinkID(l.SourceID, l.TargetID).String()] = l.Ribbon.Path()
		}
	}
	return paths
}
