package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/errors"
	"github.com/matzehuels/applyviz/pkg/observability"
	"github.com/matzehuels/applyviz/pkg/render/dot"
	"github.com/matzehuels/applyviz/pkg/render/sink"
	"github.com/matzehuels/applyviz/pkg/render/term"
)

// Render generates output artifacts in the requested formats.
//
// A format that fails is skipped and logged; the others are still returned.
// The error is non-nil only when no format could be rendered.
func Render(ctx context.Context, res chart.LayoutResult, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var errs []error
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, res, format, opts)
		if err != nil {
			opts.Logger.Warn("render failed", "format", format, "err", err)
			errs = append(errs, fmt.Errorf("render %s: %w", format, err))
			continue
		}
		artifacts[format] = data
	}

	var err error
	if len(artifacts) == 0 && len(errs) > 0 {
		code := errors.GetCode(errs[0])
		if code == "" {
			code = errors.ErrCodeRenderFailed
		}
		err = errors.Wrap(code, stderrors.Join(errs...), "render")
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, res chart.LayoutResult, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)
	switch format {
	case FormatSVG:
		return sink.RenderSVG(res, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(res, sink.WithSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(res, sink.WithSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(res, sink.WithJSONPaths(), sink.WithJSONTooltips())
	case FormatDOT, FormatGraphviz:
		if res.Flow == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s output needs the flow view", format)
		}
		src := dot.ToDOT(res.Flow.Layout, dot.Options{Detailed: opts.Detailed})
		if format == FormatDOT {
			return []byte(src), nil
		}
		return dot.RenderSVG(ctx, src)
	case FormatText:
		return []byte(term.Render(res, term.Options{Width: 80, Highlight: highlight(opts)})), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Hover {
		svgOpts = append(svgOpts, sink.WithHover())
	}
	if opts.NoTooltips {
		svgOpts = append(svgOpts, sink.WithoutTooltips())
	}
	if opts.Static {
		svgOpts = append(svgOpts, sink.WithoutAnimation())
	}
	if id := highlight(opts); id != nil {
		svgOpts = append(svgOpts, sink.WithHighlight(*id))
	}
	return svgOpts
}

// highlight parses the highlight option. Options are validated before
// rendering, so a parse failure means no highlight.
func highlight(opts Options) *interact.ElementID {
	if opts.Highlight == "" {
		return nil
	}
	id, err := interact.ParseElementID(opts.Highlight)
	if err != nil {
		return nil
	}
	return &id
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	res, err := UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	return Render(ctx, res, opts)
}
