package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/applyviz/pkg/observability"
	"github.com/matzehuels/applyviz/pkg/stats"
)

// Load decodes the statistics named by opts. Raw Input wins over Source.
func Load(ctx context.Context, opts Options) (stats.Aggregate, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return stats.Aggregate{}, err
	}
	source := opts.Source
	if opts.Input != nil {
		source = "input"
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	agg, err := load(opts)
	var warnings []stats.Warning
	if err == nil {
		_, warnings = agg.Funnel()
	}
	hooks.OnLoadComplete(ctx, source, len(warnings), time.Since(start), err)
	if err != nil {
		return stats.Aggregate{}, err
	}

	for _, w := range warnings {
		opts.Logger.Warn("data shape", "field", w.Field, "msg", w.Message)
	}
	return agg, nil
}

func load(opts Options) (stats.Aggregate, error) {
	if opts.Input != nil {
		return stats.Parse(opts.Input, opts.InputFormat)
	}
	if opts.Source == "-" && opts.InputFormat != "" {
		return stats.LoadStdin(opts.InputFormat)
	}
	return stats.LoadFile(opts.Source)
}
