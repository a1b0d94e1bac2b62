// Package sink provides output format renderers for chart layouts.
//
// # Overview
//
// A "sink" transforms a computed [chart.LayoutResult] into a final output
// format. This package provides renderers for:
//
//   - SVG: Scalable vector graphics with tooltips and animation
//   - JSON: Layout data export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] produces a surface sized exactly to the layout with:
//
//   - Donut wedges, direct labels with connectors, or a legend region
//   - Flow nodes and ribbons
//   - Native title tooltips from the interaction tooltip table
//   - Element-local animate tags (wedge growth, label fade-in, pulsing ribbons)
//   - Style rules scoped to the chart id
//
// Every interactive shape carries a data-element attribute ("wedge:Applied",
// "link:offers-accepted"). Legend entries also carry data-target pointing at
// their wedge so a host page can link hover highlighting.
//
//	svg := sink.RenderSVG(result,
//	    sink.WithHover(),
//	    sink.WithBackground("#ffffff"),
//	)
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the layout by first generating SVG,
// then converting via [render.ToPDF] and [render.ToPNG]. Animation is
// disabled for both so the rasterized frame shows the final state.
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [chart.LayoutResult]: github.com/matzehuels/applyviz/pkg/chart.LayoutResult
// [render.ToPDF]: github.com/matzehuels/applyviz/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/applyviz/pkg/render.ToPNG
package sink
