package sink

import (
	"bytes"
	"fmt"
	"time"

	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/geom"
	"github.com/matzehuels/applyviz/pkg/render/anim"
)

const (
	emptyRingColor = "#e5e7eb"
	textColor      = "#374151"
	linkOpacity    = 0.45
	staggerStep    = 60 * time.Millisecond
)

// DefaultPulse is the looping opacity animation applied to flow ribbons.
var DefaultPulse = anim.Spec{Duration: 2400 * time.Millisecond, Easing: anim.EaseInOut, Loop: true}

// css is scoped to the chart root id so several charts can share a page.
const css = `
    #%[1]s .wedge, #%[1]s .link, #%[1]s .node { transition: opacity 0.2s ease, stroke-width 0.2s ease; }
    #%[1]s .wedge { opacity: %[2]s; }
    #%[1]s .link { opacity: %[2]s; }
    #%[1]s .highlight { opacity: %[3]s; stroke: #111827; stroke-width: 1.5; }
    #%[1]s text { font-family: system-ui, sans-serif; fill: %[4]s; }
    #%[1]s .legend-entry { cursor: pointer; }`

// hoverJS links legend entries and shapes to the same highlight. It only
// queries inside the chart root.
const hoverJS = `
    (function() {
      var root = document.getElementById('%s');
      if (!root) return;
      function set(id, on) {
        root.querySelectorAll('[data-element="' + id + '"]').forEach(function(el) { el.classList.toggle('highlight', on); });
      }
      root.querySelectorAll('[data-element]').forEach(function(el) {
        var id = el.dataset.target || el.dataset.element;
        el.addEventListener('mouseenter', function() { set(id, true); });
        el.addEventListener('mouseleave', function() { set(id, false); });
      });
    })();`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	hover      bool
	tooltips   bool
	animate    bool
	background string
	pulse      anim.Spec
	idle       float64
	hovered    float64
	highlight  *interact.ElementID
	tooltip    map[interact.ElementID]string
}

// WithHover embeds a small script that highlights shapes on hover.
func WithHover() SVGOption { return func(r *svgRenderer) { r.hover = true } }

// WithoutTooltips omits title elements.
func WithoutTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = false } }

// WithoutAnimation omits every animate tag regardless of the layout's spec.
func WithoutAnimation() SVGOption { return func(r *svgRenderer) { r.animate = false } }

// WithBackground fills the surface with color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithPulse sets the ribbon pulse animation. A zero spec disables it.
func WithPulse(s anim.Spec) SVGOption { return func(r *svgRenderer) { r.pulse = s } }

// WithWeights sets idle and highlighted opacity.
func WithWeights(idle, hovered float64) SVGOption {
	return func(r *svgRenderer) { r.idle, r.hovered = idle, hovered }
}

// WithHighlight renders id in its hovered state, as an interaction
// controller would after an Enter.
func WithHighlight(id interact.ElementID) SVGOption {
	return func(r *svgRenderer) {
		t := id.Target()
		r.highlight = &t
	}
}

// RenderSVG draws the layout. The surface is exactly Width×Height.
func RenderSVG(res chart.LayoutResult, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	if !res.Animation.Enabled() {
		r.animate = false
	}
	r.tooltip = make(map[interact.ElementID]string)
	for _, e := range res.Elements() {
		r.tooltip[e.ID] = interact.TooltipText(e)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="applyviz" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		EscapeXML(res.ChartID), num(res.Width), num(res.Height), num(res.Width), num(res.Height))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n",
		fmt.Sprintf(css, res.ChartID, num(r.idle), num(r.hovered), textColor))
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="%s" height="%s" fill="%s"/>`+"\n",
			num(res.Width), num(res.Height), EscapeXML(r.background))
	}

	if res.Donut != nil {
		r.renderDonut(&buf, res, *res.Donut)
	}
	if res.Flow != nil {
		r.renderFlow(&buf, res, *res.Flow)
	}
	if r.hover {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", fmt.Sprintf(hoverJS, res.ChartID))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		tooltips: true,
		animate:  true,
		pulse:    DefaultPulse,
		idle:     interact.DefaultIdleWeight,
		hovered:  interact.DefaultHoverWeight,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) class(base string, id interact.ElementID) string {
	if r.highlight != nil && id == *r.highlight {
		return base + " highlight"
	}
	return base
}

func (r *svgRenderer) title(buf *bytes.Buffer, id interact.ElementID) {
	if !r.tooltips {
		return
	}
	if t, ok := r.tooltip[id]; ok {
		fmt.Fprintf(buf, "<title>%s</title>", EscapeXML(t))
	}
}

func (r *svgRenderer) renderDonut(buf *bytes.Buffer, res chart.LayoutResult, d chart.DonutLayout) {
	fmt.Fprintf(buf, `  <g class="donut" transform="translate(%s,%s)">`+"\n", num(d.Center.X), num(d.Center.Y))
	if d.Empty() {
		renderEmptyRing(buf, d, res.FontSize)
		buf.WriteString("  </g>\n")
		return
	}

	for i, s := range d.Slices {
		id := s.ID()
		fmt.Fprintf(buf, `    <path class="%s" data-element="%s" d="%s" fill="%s">`,
			r.class("wedge", id), EscapeXML(id.String()),
			geom.ArcPath(d.InnerRadius, d.OuterRadius, s.StartAngle, s.EndAngle), EscapeXML(s.Color))
		r.title(buf, id)
		if r.animate {
			writeGrow(buf, res.Animation.Stagger(i, staggerStep))
		}
		buf.WriteString("</path>\n")
	}

	fade := res.Animation
	fade.Delay += res.Animation.Duration
	for _, l := range d.Labels {
		id := interact.WedgeID(l.Wedge.Datum.Label)
		opacity := ""
		if r.animate {
			opacity = ` opacity="0"`
		}
		fmt.Fprintf(buf, `    <g class="label" data-element="%s"%s>`, EscapeXML(id.String()), opacity)
		fmt.Fprintf(buf, `<polyline class="connector" points="%s" fill="none" stroke="%s" stroke-width="1"/>`,
			geom.Polyline(l.Connector[:]...), textColor)
		fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-size="%s">%s</text>`,
			num(l.X), num(l.Y), l.TextAnchor(), num(res.FontSize), EscapeXML(l.Text))
		if r.animate {
			writeFade(buf, fade)
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("  </g>\n")

	if d.Legend != nil {
		r.renderLegend(buf, res, *d.Legend)
	}
}

func renderEmptyRing(buf *bytes.Buffer, d chart.DonutLayout, fontSize float64) {
	mid := (d.InnerRadius + d.OuterRadius) / 2
	width := d.OuterRadius - d.InnerRadius
	if d.InnerRadius == 0 {
		mid, width = d.OuterRadius/2, d.OuterRadius
	}
	fmt.Fprintf(buf, `    <circle class="empty" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		num(mid), emptyRingColor, num(width))
	fmt.Fprintf(buf, `    <text class="empty-text" text-anchor="middle" dominant-baseline="middle" font-size="%s">No data</text>`+"\n",
		num(fontSize))
}

func (r *svgRenderer) renderLegend(buf *bytes.Buffer, res chart.LayoutResult, l chart.Legend) {
	fmt.Fprintf(buf, `  <g class="legend legend-%s">`+"\n", l.Position)
	right := l.Frame.X + l.Frame.Width - 4
	for _, e := range l.Entries {
		id := e.ID()
		target := id.Target()
		fmt.Fprintf(buf, `    <g class="%s" data-element="%s" data-target="%s">`,
			r.class("legend-entry", target), EscapeXML(id.String()), EscapeXML(target.String()))
		r.title(buf, target)
		fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" rx="2" fill="%s"/>`,
			num(e.X), num(e.Y), num(l.Swatch), num(l.Swatch), EscapeXML(e.Color))
		text := fmt.Sprintf("%s %.1f%%", e.Label, e.Percent)
		tx := e.X + l.Swatch*1.6
		text = Truncate(text, right-tx, res.FontSize)
		fmt.Fprintf(buf, `<text x="%s" y="%s" dominant-baseline="middle" font-size="%s">%s</text>`,
			num(tx), num(e.Y+l.Swatch/2), num(res.FontSize), EscapeXML(text))
		buf.WriteString("</g>\n")
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderFlow(buf *bytes.Buffer, res chart.LayoutResult, f chart.FlowLayout) {
	fmt.Fprintf(buf, `  <g class="flow" transform="translate(%s,%s)">`+"\n", num(f.Frame.X), num(f.Frame.Y))
	colors := make(map[string]string, len(f.Nodes))
	for _, n := range f.Nodes {
		colors[n.ID] = n.Color
	}
	for _, l := range f.Links {
		id := interact.LinkID(l.SourceID, l.TargetID)
		fmt.Fprintf(buf, `    <path class="%s" data-element="%s" d="%s" fill="%s" fill-opacity="%s">`,
			r.class("link", id), EscapeXML(id.String()), l.Ribbon.Path(),
			EscapeXML(colors[l.TargetID]), num(linkOpacity))
		r.title(buf, id)
		if r.animate && r.pulse.Enabled() {
			writePulse(buf, r.pulse)
		}
		buf.WriteString("</path>\n")
	}
	for _, n := range f.Nodes {
		id := interact.NodeID(n.ID)
		fmt.Fprintf(buf, `    <rect class="%s" data-element="%s" x="%s" y="%s" width="%s" height="%s" rx="2" fill="%s">`,
			r.class("node", id), EscapeXML(id.String()),
			num(n.X), num(n.Y), num(n.Width), num(n.Height), EscapeXML(n.Color))
		r.title(buf, id)
		buf.WriteString("</rect>\n")

		x, anchor := n.Right()+4, "start"
		if n.Stage.Column() == 2 {
			x, anchor = n.X-4, "end"
		}
		fmt.Fprintf(buf, `    <text class="node-label" x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-size="%s">%s %g</text>`+"\n",
			num(x), num(n.CenterY()), anchor, num(res.FontSize), EscapeXML(n.Label), n.Value)
	}
	buf.WriteString("  </g>\n")
}

func timing(s anim.Spec) string {
	out := fmt.Sprintf(`dur="%s" begin="%s"`, seconds(s.Duration), seconds(s.Delay))
	if ks := s.Easing.KeySplines(); ks != "" {
		out += fmt.Sprintf(` calcMode="spline" keyTimes="0;1" keySplines="%s"`, ks)
	}
	return out
}

func writeGrow(buf *bytes.Buffer, s anim.Spec) {
	fmt.Fprintf(buf, `<animateTransform attributeName="transform" type="scale" from="0" to="1" %s fill="freeze"/>`, timing(s))
}

func writeFade(buf *bytes.Buffer, s anim.Spec) {
	fmt.Fprintf(buf, `<animate attributeName="opacity" from="0" to="1" %s fill="freeze"/>`, timing(s))
}

func writePulse(buf *bytes.Buffer, s anim.Spec) {
	lo, hi := num(linkOpacity), num(min(1, linkOpacity+0.3))
	fmt.Fprintf(buf, `<animate attributeName="fill-opacity" values="%s;%s;%s" dur="%s" repeatCount="indefinite"/>`,
		lo, hi, lo, seconds(s.Duration))
}
