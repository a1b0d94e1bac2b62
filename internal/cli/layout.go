package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/applyviz/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [stats.json]",
		Short: "Compute chart layout from job-application statistics",
		Long: `Compute chart layout from job-application statistics.

The layout command takes a statistics document (JSON or YAML) and computes
the donut and flow geometry. The output is a layout.json file (same format as
'render -f json' without paths) that can be rendered to SVG/PNG/PDF using the
'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
	}
	chartOpts := addChartFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := chartOpts.config(cmd)
		if err != nil {
			return err
		}
		opts := pipeline.Options{Source: args[0], Chart: &cfg, Refresh: refresh}
		return c.runLayout(cmd.Context(), opts, output, noCache)
	}
	return cmd
}

// runLayout loads the statistics, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	agg, err := pipeline.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load statistics %s: %w", opts.Source, err)
	}

	spinner := startSpinner(ctx, "Computing layout...")

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, agg, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if err := errCancelled(ctx); err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = stripExt(opts.Source) + ".layout.json"
	}

	data, err := pipeline.MarshalLayout(layout)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printWarnings(layout.Warnings)
	printSuccess("Layout complete")
	printFile(outputPath)
	printKeyValue("Charts", layout.Summary())
	printStats(len(layout.Elements()), len(layout.Warnings), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
