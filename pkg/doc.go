// Package pkg provides the core libraries for applyviz, the layout engine
// behind a job-tracker statistics view.
//
// # Overview
//
// Applyviz turns aggregate job-application statistics into two charts: a
// donut of the current status distribution and a flow diagram of how
// applications move from submission to offers. The pkg directory is
// organized into four main areas:
//
//  1. [geom] and [chart] - Pure layout (geometry, wedges, labels, flow, hover state)
//  2. [render] - Output adapters (SVG, PNG, PDF, JSON, Graphviz, terminal)
//  3. [pipeline] - Orchestration (load → layout → render) with caching
//  4. [server], [cache], [observability] - Service infrastructure
//
// # Architecture
//
// The typical data flow through applyviz:
//
//	Statistics document (JSON/YAML)
//	         ↓
//	    [stats] package (decode, reconcile, derive the funnel)
//	         ↓
//	    [chart] package (donut + label + flow layout, element ids)
//	         ↓
//	    [render] packages (sink, dot, term)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT/text output
//
// Layout never fails. Missing or inconsistent statistics produce warnings on
// the result, and every error in the system surfaces at an IO edge.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/applyviz/pkg/chart"
//	    "github.com/matzehuels/applyviz/pkg/render/sink"
//	    "github.com/matzehuels/applyviz/pkg/stats"
//	)
//
//	agg, _ := stats.LoadFile("stats.json")
//	cfg := chart.DefaultConfig()
//	cfg.View = chart.ViewBoth
//	res := chart.Build(agg, cfg)
//	svg := sink.RenderSVG(res)
//
// # Main Packages
//
// [geom] - Points, polar conversion, annular sectors with pad and corner
// radius, and cubic Bezier ribbons.
//
// [chart/donut] - Wedge angles from categorical data.
//
// [chart/label] - Label anchors, leader lines, and the label/legend decision.
//
// [chart/flow] - Funnel nodes and links placed in depth columns.
//
// [chart/interact] - Hover state machine and tooltip text.
//
// [pipeline] - Runner shared by the CLI and the HTTP service.
//
// [cache] - Null, file, and Redis caches for layouts and artifacts.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/geom
// [chart]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/chart
// [chart/donut]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/chart/donut
// [chart/label]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/chart/label
// [chart/flow]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/chart/flow
// [chart/interact]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/chart/interact
// [stats]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/stats
// [render]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/applyviz/pkg/observability
package pkg
