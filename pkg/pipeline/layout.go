package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/applyviz/pkg/cache"
	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/observability"
	"github.com/matzehuels/applyviz/pkg/stats"
)

// GenerateLayout computes the chart layout. It fails only on invalid
// options; the layout itself is total.
func GenerateLayout(ctx context.Context, agg stats.Aggregate, opts Options) (chart.LayoutResult, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.LayoutResult{}, err
	}
	view := string(opts.Chart.View)
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, view)
	start := time.Now()

	res := chart.Build(agg, *opts.Chart)

	hooks.OnLayoutComplete(ctx, view, len(res.Elements()), time.Since(start))
	return res, nil
}

// MarshalLayout serializes a layout for caching and JSON export.
func MarshalLayout(res chart.LayoutResult) ([]byte, error) {
	return json.Marshal(res)
}

// UnmarshalLayout restores a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (chart.LayoutResult, error) {
	var res chart.LayoutResult
	err := json.Unmarshal(data, &res)
	return res, err
}

// HashStats returns the content hash of an aggregate. Map keys are encoded
// in sorted order, so equal aggregates hash equally.
func HashStats(agg stats.Aggregate) string {
	return hashJSON(agg)
}

func hashJSON(v any) string {
	data, _ := json.Marshal(v)
	return cache.Hash(data)
}
