// Package term renders chart layouts as styled terminal text.
//
// The donut becomes a legend table with proportional bars and the flow
// becomes one row per link. Output is plain text with lipgloss styling;
// colors degrade automatically when the terminal does not support them.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
)

const (
	barRune   = "█"
	swatch    = "██"
	labelCols = 18
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleValue     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleHighlight = lipgloss.NewStyle().Bold(true).Reverse(true)
	styleLabel     = lipgloss.NewStyle().Width(labelCols)
)

// Options controls terminal output.
type Options struct {
	// Width is the total line width. Zero means 60.
	Width int
	// Highlight marks one element as hovered.
	Highlight *interact.ElementID
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 60
	}
	return o.Width
}

func (o Options) highlighted(id interact.ElementID) bool {
	return o.Highlight != nil && o.Highlight.Target() == id
}

// Render draws every chart in the layout.
func Render(res chart.LayoutResult, opts Options) string {
	var parts []string
	if res.Donut != nil {
		parts = append(parts, Donut(*res.Donut, opts))
	}
	if res.Flow != nil {
		parts = append(parts, Flow(*res.Flow, opts))
	}
	return strings.Join(parts, "\n")
}

// Donut draws the categorical chart as a legend table.
func Donut(d chart.DonutLayout, opts Options) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Status distribution") + "\n")
	if d.Empty() {
		b.WriteString(styleDim.Render("  no data") + "\n")
		return b.String()
	}
	barCols := barWidth(opts)
	for _, s := range d.Slices {
		n := int(s.Percent / 100 * float64(barCols))
		line := fmt.Sprintf("%s %s %s %s",
			lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(swatch),
			styleLabel.Render(truncate(s.Datum.Label, labelCols-1)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(strings.Repeat(barRune, n))+
				strings.Repeat(" ", barCols-n),
			styleValue.Render(fmt.Sprintf("%5.1f%% (%g)", s.DisplayPercent(), s.Datum.Value)),
		)
		if opts.highlighted(s.ID()) {
			line = styleHighlight.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(styleDim.Render(fmt.Sprintf("total %g", d.Total)) + "\n")
	return b.String()
}

// Flow draws one row per link.
func Flow(f chart.FlowLayout, opts Options) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Application journey") + "\n")
	if len(f.Links) == 0 {
		b.WriteString(styleDim.Render("  no flows") + "\n")
		return b.String()
	}
	labels := make(map[string]string, len(f.Nodes))
	colors := make(map[string]string, len(f.Nodes))
	for _, n := range f.Nodes {
		labels[n.ID] = n.Label
		colors[n.ID] = n.Color
	}
	barCols := barWidth(opts)
	for _, l := range f.Links {
		name := labels[l.SourceID] + " → " + labels[l.TargetID]
		n := int(min(100, l.Percent) / 100 * float64(barCols))
		line := fmt.Sprintf("%s %s %s",
			lipgloss.NewStyle().Width(labelCols+12).Render(truncate(name, labelCols+11)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(colors[l.TargetID])).Render(strings.Repeat(barRune, n))+
				strings.Repeat(" ", barCols-n),
			styleValue.Render(fmt.Sprintf("%g", l.Value)),
		)
		if opts.highlighted(interact.LinkID(l.SourceID, l.TargetID)) {
			line = styleHighlight.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Bars draws a simple horizontal bar chart, used for monthly totals.
func Bars(title string, data []donut.Datum, opts Options) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(title) + "\n")
	peak := 0.0
	for _, d := range data {
		peak = max(peak, d.Value)
	}
	if peak <= 0 {
		b.WriteString(styleDim.Render("  no data") + "\n")
		return b.String()
	}
	barCols := barWidth(opts)
	for _, d := range data {
		n := int(max(0, d.Value) / peak * float64(barCols))
		fmt.Fprintf(&b, "%s %s %s\n",
			styleLabel.Render(truncate(d.Label, labelCols-1)),
			strings.Repeat(barRune, n)+strings.Repeat(" ", barCols-n),
			styleValue.Render(fmt.Sprintf("%g", d.Value)))
	}
	return b.String()
}

func barWidth(opts Options) int {
	return max(4, opts.width()-labelCols-20)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
