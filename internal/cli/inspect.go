package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/pipeline"
)

// inspectCommand creates the inspect command, an interactive terminal view
// of a computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect [stats.json]",
		Short: "Explore a chart layout interactively in the terminal",
		Long: `Explore a chart layout interactively in the terminal.

Moving the cursor through the element list hovers that element exactly as a
pointer would: the previous element is released, the tooltip follows, and
element weights ease between their idle and hovered values.

Press R to re-read the statistics file and lay it out again. Animations and
hover state for elements that disappear are dropped immediately.`,
		Args: cobra.ExactArgs(1),
	}
	chartOpts := addChartFlags(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := chartOpts.config(cmd)
		if err != nil {
			return err
		}
		opts := pipeline.Options{Source: args[0], Chart: &cfg}
		return c.runInspect(cmd.Context(), opts, noCache)
	}
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, noCache bool) error {
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
	layout, err := runner.GenerateLayout(ctx, agg, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	m := NewInspectModel(layout, agg.MonthTotals())
	m.Reload = func() (chart.LayoutResult, []donut.Datum, error) {
		agg, err := pipeline.Load(ctx, opts)
		if err != nil {
			return chart.LayoutResult{}, nil, err
		}
		res, err := runner.GenerateLayout(ctx, agg, opts)
		if err != nil {
			return chart.LayoutResult{}, nil, err
		}
		return res, agg.MonthTotals(), nil
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
