package sink

import (
	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/render"
)

// Converter turns an SVG document into another format. scale is ignored
// for vector targets.
type Converter func(svg []byte, format string, scale float64) ([]byte, error)

func rsvgConvert(svg []byte, format string, scale float64) ([]byte, error) {
	if format == "pdf" {
		return render.ToPDF(svg)
	}
	return render.ToPNG(svg, scale)
}

// RasterOption configures PDF and PNG output.
type RasterOption func(*raster)

type raster struct {
	svgOpts []SVGOption
	scale   float64
	convert Converter
}

// WithSVGOptions forwards options to the SVG pass that precedes conversion.
func WithSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *raster) { r.svgOpts = append(r.svgOpts, opts...) }
}

// WithScale sets the PNG pixel density. The default is 2.
func WithScale(s float64) RasterOption {
	return func(r *raster) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithConverter replaces the rsvg-convert backend.
func WithConverter(c Converter) RasterOption {
	return func(r *raster) { r.convert = c }
}

// RenderPNG renders the final animation frame as PNG.
func RenderPNG(res chart.LayoutResult, opts ...RasterOption) ([]byte, error) {
	return rasterize(res, "png", opts)
}

// RenderPDF renders the final animation frame as PDF.
func RenderPDF(res chart.LayoutResult, opts ...RasterOption) ([]byte, error) {
	return rasterize(res, "pdf", opts)
}

func rasterize(res chart.LayoutResult, format string, opts []RasterOption) ([]byte, error) {
	r := raster{scale: 2, convert: rsvgConvert}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(res, append(r.svgOpts, WithoutAnimation())...)
	return r.convert(svg, format, r.scale)
}
