// Package dot renders the application journey as a Graphviz diagram.
//
// The flow layout already fixes node positions, but a DOT export is useful
// for tooling that speaks Graphviz and for quick previews. [ToDOT] emits a
// left-to-right digraph where each stage is a box and each link an edge
// whose penwidth follows the link stroke width. Graphviz chooses the
// positions itself.
//
//	src := dot.ToDOT(result.Flow.Layout, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//	pdf, err := render.ToPDF(svg)
//
// Rendering uses the embedded go-graphviz engine; PDF and PNG conversion
// requires librsvg (rsvg-convert).
package dot
