package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/applyviz/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render visualization from a computed layout",
		Long: `Render visualization from a computed layout.

Reads a layout.json written by 'layout' ("-" reads stdin) and renders it
without recomputing any geometry. Wedge angles, label anchors, flow
columns and element ids come from the file unchanged.

Use 'render' to go from statistics to output in one step.`,
		Args: cobra.ExactArgs(1),
	}
	out := addRenderFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var opts pipeline.Options
		if err := out.apply(&opts); err != nil {
			return err
		}
		return c.runVisualize(cmd.Context(), args[0], opts, out)
	}
	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, out *renderFlags) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	layout, err := pipeline.UnmarshalLayout(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := startSpinner(ctx, fmt.Sprintf("Rendering %s...", layout.Summary()))

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    out.output,
		elements:  len(layout.Elements()),
		warnings:  len(layout.Warnings),
		cacheHit:  cacheHit,
	})
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
