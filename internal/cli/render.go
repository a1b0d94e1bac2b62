package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/applyviz/pkg/pipeline"
	"github.com/matzehuels/applyviz/pkg/stats"
)

// renderFlags are the output options shared by render and visualize.
type renderFlags struct {
	formats    string
	output     string
	noCache    bool
	static     bool
	hover      bool
	noTooltips bool
	highlight  string
	detailed   bool
	scale      float64
}

func addRenderFlags(cmd *cobra.Command) *renderFlags {
	f := &renderFlags{scale: pipeline.DefaultScale}
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graphviz, txt (comma-separated)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.static, "static", false, "omit entrance animations")
	fs.BoolVar(&f.hover, "hover", false, "add CSS hover emphasis")
	fs.BoolVar(&f.noTooltips, "no-tooltips", false, "omit tooltip titles")
	fs.StringVar(&f.highlight, "highlight", "", "render one element as hovered (e.g. wedge:Applied)")
	fs.BoolVar(&f.detailed, "detailed", false, "label flow edges with values (dot, graphviz)")
	fs.Float64Var(&f.scale, "scale", f.scale, "PNG scale factor")
	return f
}

func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.Static = f.static
	opts.Hover = f.hover
	opts.NoTooltips = f.noTooltips
	opts.Highlight = f.highlight
	opts.Detailed = f.detailed
	opts.Scale = f.scale
	return pipeline.ValidateFormats(opts.Formats)
}

// renderCommand creates the render command: statistics straight to artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		refresh bool
		yamlIn  bool
	)
	cmd := &cobra.Command{
		Use:   "render [stats.json]",
		Short: "Render job-application statistics to SVG(s)",
		Long: `Render job-application statistics to visual output.

The render command reads a statistics document (JSON or YAML, "-" for stdin),
computes the layout, and writes one file per requested format. It is the
shortcut for 'layout' followed by 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
	}
	chartOpts := addChartFlags(cmd)
	out := addRenderFlags(cmd)
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&yamlIn, "yaml", false, "read stdin as YAML")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := chartOpts.config(cmd)
		if err != nil {
			return err
		}
		opts := pipeline.Options{Source: args[0], Chart: &cfg, Refresh: refresh}
		if yamlIn {
			opts.InputFormat = stats.FormatYAML
		}
		if err := out.apply(&opts); err != nil {
			return err
		}
		return c.runRender(cmd.Context(), opts, out)
	}
	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, out *renderFlags) error {
	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := startSpinner(ctx, "Rendering statistics...")

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if err := errCancelled(ctx); err != nil {
		return err
	}

	printWarnings(res.Layout.Warnings)
	return writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     opts.Source,
		output:    out.output,
		elements:  res.Timing.Elements,
		warnings:  res.Timing.Warnings,
		cacheHit:  res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	elements  int
	warnings  int
	cacheHit  bool
}

// writeArtifacts writes each rendered format to disk. A single format goes
// to --output verbatim; several formats share --output as a base path.
func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.input, p.output)
	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			printWarning("Skipped %s (no output)", format)
			continue
		}
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	if len(written) == 0 {
		return fmt.Errorf("no artifacts written")
	}

	printSuccess("Rendered %d file(s)", len(written))
	sort.Strings(written)
	for _, path := range written {
		printFile(path)
	}
	printStats(p.elements, p.warnings, p.cacheHit)
	return nil
}

// artifactPaths maps each format to its output path.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + pipeline.FileExtension(f)
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return stripExt(input)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
