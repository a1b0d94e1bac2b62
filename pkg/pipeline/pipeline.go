// Package pipeline provides the core visualization pipeline for applyviz.
//
// This package implements the complete load → layout → render pipeline used
// by the CLI and the HTTP service, so both entry points behave identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode aggregate statistics from JSON or YAML
//  2. Layout: Compute the donut and flow geometry ([chart.Build])
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Layouts and artifacts are cached by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "stats.json",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	agg, err := pipeline.Load(ctx, opts)
//	res, err := runner.GenerateLayout(ctx, agg, opts)
//	artifacts, err := runner.Render(ctx, res, opts)
package pipeline

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/applyviz/pkg/cache"
	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/errors"
	"github.com/matzehuels/applyviz/pkg/stats"
)

// DefaultScale is the PNG resolution multiplier.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"      // Graphviz source of the flow diagram
	FormatGraphviz = "graphviz" // flow diagram laid out and drawn by Graphviz
	FormatText     = "txt"      // terminal rendering without ANSI styling
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatGraphviz: true,
	FormatText:     true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:      "image/svg+xml",
	FormatPNG:      "image/png",
	FormatPDF:      "application/pdf",
	FormatJSON:     "application/json",
	FormatDOT:      "text/vnd.graphviz",
	FormatGraphviz: "image/svg+xml",
	FormatText:     "text/plain; charset=utf-8",
}

// FileExtension returns the file extension for format.
func FileExtension(format string) string {
	if format == FormatGraphviz {
		return "flow.svg"
	}
	return format
}

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source      string       `json:"source,omitempty"` // file path, "-" for stdin
	InputFormat stats.Format `json:"input_format,omitempty"`

	// Layout options
	ConfigPath string        `json:"-"`
	Chart      *chart.Config `json:"chart,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Static     bool     `json:"static,omitempty"` // omit animation
	Hover      bool     `json:"hover,omitempty"`  // embed the hover script
	NoTooltips bool     `json:"no_tooltips,omitempty"`
	Highlight  string   `json:"highlight,omitempty"` // element id, e.g. "wedge:Applied"
	Detailed   bool     `json:"detailed,omitempty"`  // values in DOT labels
	Scale      float64  `json:"scale,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Input  []byte      `json:"-"` // raw statistics, takes precedence over Source
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Stats is the decoded input.
	Stats stats.Aggregate

	// StatsHash is the content hash of the input.
	StatsHash string

	// Layout is the computed chart geometry.
	Layout chart.LayoutResult

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Timing contains timing and size information.
	Timing Timing

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Timing contains pipeline execution statistics.
type Timing struct {
	Elements   int
	Warnings   int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that an input is present.
func (o *Options) ValidateForLoad() error {
	if o.Input == nil && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "statistics input is required")
	}
	if o.InputFormat == "" && o.Source != "" && o.Source != "-" {
		o.InputFormat = stats.FormatForPath(o.Source)
	}
	o.setLogger()
	return nil
}

// ValidateForLayout loads the chart config file if one is named, fills
// defaults and validates the result.
func (o *Options) ValidateForLayout() error {
	o.setLogger()
	if o.Chart == nil {
		cfg := chart.DefaultConfig()
		if o.ConfigPath != "" {
			var err error
			if cfg, err = chart.LoadConfig(o.ConfigPath); err != nil {
				return err
			}
		}
		o.Chart = &cfg
	}
	return o.Chart.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Highlight != "" {
		if _, err := interact.ParseElementID(o.Highlight); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "highlight")
		}
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
// The full config hash covers every field; the named fields keep keys
// readable in debugging output.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := chart.DefaultConfig()
	if o.Chart != nil {
		cfg = *o.Chart
	}
	return cache.LayoutKeyOpts{
		View:            string(cfg.View),
		Width:           cfg.Width,
		Height:          cfg.Height,
		InnerRadius:     cfg.InnerRadius,
		OuterRadius:     cfg.OuterRadius,
		PadAngle:        cfg.PadAngle,
		ShowLabels:      cfg.ShowLabels,
		ShowPercentages: cfg.ShowPercentages,
		UseLegend:       cfg.UseLegend,
		LegendPosition:  string(cfg.LegendPosition),
		ConfigHash:      hashJSON(cfg),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Animated:  !o.Static,
		Tooltips:  !o.NoTooltips,
		Hover:     o.Hover,
		Detailed:  o.Detailed,
		Highlight: o.Highlight,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
