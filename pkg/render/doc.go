// Package render turns chart layouts into output formats.
//
// # Overview
//
// Layouts come from [chart.Build] as plain data. Rendering is a separate,
// swappable step:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - SVG, PNG, PDF, and JSON output (in [sink] subpackage)
//   - Graphviz flow diagrams (in [dot] subpackage)
//   - Terminal legend and bar views (in [term] subpackage)
//   - Declarative animation parameters and timelines (in [anim] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are shared by the
// sink and dot renderers.
//
//	svg := sink.RenderSVG(result)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [chart.Build]: github.com/matzehuels/applyviz/pkg/chart.Build
// [sink]: github.com/matzehuels/applyviz/pkg/render/sink
// [dot]: github.com/matzehuels/applyviz/pkg/render/dot
// [term]: github.com/matzehuels/applyviz/pkg/render/term
// [anim]: github.com/matzehuels/applyviz/pkg/render/anim
package render
