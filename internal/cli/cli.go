package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/applyviz/pkg/buildinfo"
	"github.com/matzehuels/applyviz/pkg/cache"
	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "applyviz"

	// defaultAddr is the listen address of the render service.
	defaultAddr = ":8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Applyviz lays out and renders job-application statistics",
		Long:         `Applyviz turns job-tracker statistics into a status donut and an application flow diagram, rendered as SVG, PNG, PDF, JSON, Graphviz or terminal text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// newRedisRunner creates a runner backed by a shared Redis cache. Keys are
// scoped so several deployments can share one instance.
func (c *CLI) newRedisRunner(ctx context.Context, url, prefix string) (*pipeline.Runner, error) {
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: url})
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, prefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/applyviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Chart Flags
// =============================================================================

// chartFlags binds chart configuration flags. Flags the user sets override
// the values loaded from --config.
type chartFlags struct {
	configPath string
	cfg        chart.Config
	view       string
	legendPos  string
}

func addChartFlags(cmd *cobra.Command) *chartFlags {
	f := &chartFlags{cfg: chart.DefaultConfig()}
	f.view = string(f.cfg.View)
	f.legendPos = string(f.cfg.LegendPosition)

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "chart config file (TOML)")
	fs.StringVar(&f.view, "view", f.view, "charts to lay out: donut (default), flow, both")
	fs.Float64Var(&f.cfg.Width, "width", f.cfg.Width, "frame width")
	fs.Float64Var(&f.cfg.Height, "height", f.cfg.Height, "frame height")
	fs.Float64Var(&f.cfg.InnerRadius, "inner-radius", f.cfg.InnerRadius, "donut inner radius")
	fs.Float64Var(&f.cfg.OuterRadius, "outer-radius", f.cfg.OuterRadius, "donut outer radius")
	fs.Float64Var(&f.cfg.PadAngle, "pad-angle", f.cfg.PadAngle, "gap between wedges in radians")
	fs.BoolVar(&f.cfg.ShowLabels, "labels", f.cfg.ShowLabels, "draw wedge labels")
	fs.BoolVar(&f.cfg.ShowPercentages, "percentages", f.cfg.ShowPercentages, "include percentages in labels")
	fs.BoolVar(&f.cfg.UseLegend, "legend", f.cfg.UseLegend, "always draw a legend instead of labels")
	fs.StringVar(&f.legendPos, "legend-position", f.legendPos, "legend placement: right (default), bottom")
	fs.IntVar(&f.cfg.AnimationDurationMs, "animation-ms", f.cfg.AnimationDurationMs, "entrance animation duration")
	fs.StringVar(&f.cfg.ChartID, "chart-id", f.cfg.ChartID, "id prefix for SVG elements")
	return f
}

// config resolves the chart configuration for cmd.
func (f *chartFlags) config(cmd *cobra.Command) (chart.Config, error) {
	f.cfg.View = chart.View(f.view)
	f.cfg.LegendPosition = chart.LegendPosition(f.legendPos)
	if f.configPath == "" {
		return f.cfg, f.cfg.Validate()
	}

	base, err := chart.LoadConfig(f.configPath)
	if err != nil {
		return chart.Config{}, err
	}
	fs := cmd.Flags()
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"view", func() { base.View = f.cfg.View }},
		{"width", func() { base.Width = f.cfg.Width }},
		{"height", func() { base.Height = f.cfg.Height }},
		{"inner-radius", func() { base.InnerRadius = f.cfg.InnerRadius }},
		{"outer-radius", func() { base.OuterRadius = f.cfg.OuterRadius }},
		{"pad-angle", func() { base.PadAngle = f.cfg.PadAngle }},
		{"labels", func() { base.ShowLabels = f.cfg.ShowLabels }},
		{"percentages", func() { base.ShowPercentages = f.cfg.ShowPercentages }},
		{"legend", func() { base.UseLegend = f.cfg.UseLegend }},
		{"legend-position", func() { base.LegendPosition = f.cfg.LegendPosition }},
		{"animation-ms", func() { base.AnimationDurationMs = f.cfg.AnimationDurationMs }},
		{"chart-id", func() { base.ChartID = f.cfg.ChartID }},
	}
	for _, o := range overrides {
		if fs.Changed(o.flag) {
			o.apply()
		}
	}
	return base, base.Validate()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// stripExt removes the extension of input, treating "-" as "stdin".
func stripExt(input string) string {
	if input == "-" {
		return "stdin"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return strings.TrimSuffix(base, ".layout")
}

func errCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cancelled: %w", err)
	}
	return nil
}
