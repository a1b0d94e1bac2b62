package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/flow"
	"github.com/matzehuels/applyviz/pkg/chart/label"
	"github.com/matzehuels/applyviz/pkg/geom"
	"github.com/matzehuels/applyviz/pkg/stats"
)

const (
	framePadding   = 8.0
	legendFraction = 0.32 // share of the width given to a right legend
	legendRowScale = 1.7  // row height as a multiple of the font size
	charWidth      = 0.6  // estimated glyph width as a multiple of font size
	labelMargin    = 4.5  // label allowance around the ring, in font sizes
)

// Build computes the layout for agg under cfg. It never fails: degenerate
// data yields an empty donut and a flow without links. Zero-valued numeric
// and string config fields take their defaults.
func Build(agg stats.Aggregate, cfg Config) LayoutResult {
	cfg = withDefaults(cfg)
	res := LayoutResult{
		ChartID:   cfg.ChartID,
		Width:     cfg.Width,
		Height:    cfg.Height,
		FontSize:  cfg.LabelFontSize,
		Animation: cfg.Animation(),
	}

	full := Rect{Width: cfg.Width, Height: cfg.Height}
	donutFrame, flowFrame := full, full
	if cfg.View == ViewBoth {
		donutFrame, flowFrame = split(full)
	}

	if cfg.View != ViewFlow {
		data, warns := agg.Data()
		res.Warnings = append(res.Warnings, warns...)
		d := BuildDonut(data, donutFrame, cfg)
		res.Donut = &d
	}
	if cfg.View != ViewDonut {
		f, warns := agg.Funnel()
		res.Warnings = appendNew(res.Warnings, warns)
		fl := BuildFlow(f, flowFrame, cfg)
		res.Flow = &fl
	}
	return res
}

// split divides the surface in two along its longer side.
func split(r Rect) (Rect, Rect) {
	if r.Width >= r.Height {
		w := r.Width / 2
		return Rect{r.X, r.Y, w, r.Height}, Rect{r.X + w, r.Y, r.Width - w, r.Height}
	}
	h := r.Height / 2
	return Rect{r.X, r.Y, r.Width, h}, Rect{r.X, r.Y + h, r.Width, r.Height - h}
}

// appendNew appends warnings not already present.
func appendNew(dst, src []stats.Warning) []stats.Warning {
	for _, w := range src {
		dup := false
		for _, d := range dst {
			if d == w {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, w)
		}
	}
	return dst
}

// Mode decides how a donut with n wedges is annotated. An explicit legend
// request wins; direct labels switch to a legend past the threshold.
func (c Config) Mode(n int) LabelMode {
	switch {
	case c.UseLegend:
		return ModeLegend
	case !c.ShowLabels:
		return ModeNone
	case c.LegendThreshold > 0 && n > c.LegendThreshold:
		return ModeLegend
	default:
		return ModeLabels
	}
}

// BuildDonut lays out categorical data inside frame.
func BuildDonut(data []donut.Datum, frame Rect, cfg Config) DonutLayout {
	cfg = withDefaults(cfg)
	pie := donut.Layout(data, donut.Options{
		PadAngle:       cfg.PadAngle,
		SortDescending: true,
	})

	out := DonutLayout{
		Frame: frame,
		Total: pie.Total,
		Mode:  cfg.Mode(len(pie.Wedges)),
	}
	if pie.Empty() {
		out.Mode = ModeNone
	}

	ring := frame
	if out.Mode == ModeLegend {
		var legendFrame Rect
		ring, legendFrame = splitLegend(frame, cfg, len(pie.Wedges))
		out.Legend = &Legend{Position: cfg.LegendPosition, Frame: legendFrame}
	}
	out.Center = ring.Center()

	fit := min(ring.Width, ring.Height)/2 - framePadding
	if out.Mode == ModeLabels {
		fit = min(ring.Width/2-labelMargin*2*cfg.LabelFontSize, ring.Height/2-cfg.LabelFontSize*2)
	}
	out.InnerRadius, out.OuterRadius = fitRadii(cfg.InnerRadius, cfg.OuterRadius, fit)

	out.Slices = make([]Slice, len(pie.Wedges))
	for i, w := range pie.Wedges {
		out.Slices[i] = Slice{Wedge: w, Color: cfg.color(w)}
	}

	switch out.Mode {
	case ModeLabels:
		out.Labels = label.Place(pie.Wedges, label.Options{
			OuterRadius:        out.OuterRadius,
			LabelRadius:        out.OuterRadius + cfg.LabelFontSize,
			MinSliceAngle:      cfg.MinSliceAngle,
			MinVerticalSpacing: label.SpacingForFont(cfg.LabelFontSize),
			ShowPercent:        cfg.ShowPercentages,
		})
	case ModeLegend:
		out.Legend.Swatch = cfg.LabelFontSize
		out.Legend.Entries = legendEntries(out.Slices, out.Legend.Frame, cfg)
	}
	return out
}

// fitRadii scales both radii down proportionally so the ring fits.
func fitRadii(inner, outer, fit float64) (float64, float64) {
	fit = max(fit, 1)
	if outer <= fit {
		return inner, outer
	}
	k := fit / outer
	return inner * k, fit
}

// splitLegend carves the legend region out of frame.
func splitLegend(frame Rect, cfg Config, n int) (ring, legend Rect) {
	if cfg.LegendPosition == LegendBottom {
		cols := bottomColumns(frame.Width, cfg)
		rows := int(math.Ceil(float64(n) / float64(cols)))
		h := min(frame.Height/2, float64(rows)*cfg.LabelFontSize*legendRowScale+framePadding)
		ring = Rect{frame.X, frame.Y, frame.Width, frame.Height - h}
		legend = Rect{frame.X, frame.Y + frame.Height - h, frame.Width, h}
		return ring, legend
	}
	w := frame.Width * legendFraction
	ring = Rect{frame.X, frame.Y, frame.Width - w, frame.Height}
	legend = Rect{frame.X + frame.Width - w, frame.Y, w, frame.Height}
	return ring, legend
}

// legendColumnWidth estimates the width of one bottom legend cell.
func legendColumnWidth(cfg Config) float64 {
	return cfg.LabelFontSize * (2 + 18*charWidth)
}

func bottomColumns(width float64, cfg Config) int {
	return max(1, int(width/legendColumnWidth(cfg)))
}

func legendEntries(slices []Slice, frame Rect, cfg Config) []LegendEntry {
	row := cfg.LabelFontSize * legendRowScale
	out := make([]LegendEntry, len(slices))
	cols := 1
	if cfg.LegendPosition == LegendBottom {
		cols = bottomColumns(frame.Width, cfg)
	}
	rows := int(math.Ceil(float64(len(slices)) / float64(cols)))
	top := frame.Y + max(framePadding/2, (frame.Height-float64(rows)*row)/2)
	for i, s := range slices {
		c, r := i%cols, i/cols
		x := frame.X + framePadding
		if cols > 1 {
			x = frame.X + framePadding + float64(c)*legendColumnWidth(cfg)
		}
		out[i] = LegendEntry{
			Label:   s.Datum.Label,
			Color:   s.Color,
			Value:   s.Datum.Value,
			Percent: s.DisplayPercent(),
			X:       x,
			Y:       top + float64(r)*row,
		}
	}
	return out
}

// color returns the datum color or the scheme color for the wedge index.
func (c Config) color(w donut.Wedge) string {
	if w.Datum.Color != "" {
		return w.Datum.Color
	}
	if len(c.ColorScheme) == 0 {
		return DefaultColorScheme[w.Index%len(DefaultColorScheme)]
	}
	return c.ColorScheme[w.Index%len(c.ColorScheme)]
}

// BuildFlow lays out the application journey inside frame.
func BuildFlow(f flow.Funnel, frame Rect, cfg Config) FlowLayout {
	cfg = withDefaults(cfg)
	opts := flow.DefaultOptions(frame.Width, frame.Height)
	opts.Stroke = cfg.Stroke
	opts.NodeWidth = max(6, min(opts.NodeWidth, frame.Width/20))
	return FlowLayout{Frame: frame, Layout: flow.Compute(f, opts)}
}

// withDefaults fills zero-valued fields so a partially filled config
// still produces a sensible layout.
func withDefaults(c Config) Config {
	d := DefaultConfig()
	if c.View == "" {
		c.View = d.View
	}
	if !(c.Width > 0) {
		c.Width = d.Width
	}
	if !(c.Height > 0) {
		c.Height = d.Height
	}
	if !(c.OuterRadius > 0) {
		c.OuterRadius = d.OuterRadius
	}
	if c.InnerRadius < 0 || c.InnerRadius >= c.OuterRadius {
		c.InnerRadius = 0
	}
	if c.PadAngle < 0 {
		c.PadAngle = 0
	}
	if !(c.LabelFontSize > 0) {
		c.LabelFontSize = d.LabelFontSize
	}
	if c.LegendPosition == "" {
		c.LegendPosition = d.LegendPosition
	}
	if c.AnimationDurationMs < 0 {
		c.AnimationDurationMs = 0
	}
	if c.Stroke == (flow.StrokeScale{}) {
		c.Stroke = d.Stroke
	}
	if c.ChartID == "" {
		c.ChartID = d.ChartID
	}
	return c
}

func msToDuration(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

// Summary is a one-line description used in logs.
func (r LayoutResult) Summary() string {
	s := fmt.Sprintf("%gx%g", r.Width, r.Height)
	if r.Donut != nil {
		s += fmt.Sprintf(" wedges=%d mode=%s", len(r.Donut.Slices), r.Donut.Mode)
	}
	if r.Flow != nil {
		s += fmt.Sprintf(" nodes=%d links=%d", len(r.Flow.Nodes), len(r.Flow.Links))
	}
	return s
}

// Absolute converts a point relative to the donut center to surface
// coordinates.
func (d DonutLayout) Absolute(p geom.Point) geom.Point { return d.Center.Add(p) }
