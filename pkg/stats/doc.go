// Package stats decodes the aggregate application statistics that charts are
// built from.
//
// An [Aggregate] is produced by the tracker's statistics service and arrives
// as JSON or YAML. It carries per-status counts for the current distribution
// and for the cumulative progression, optional monthly buckets, and funnel
// quantities (interviews and offer outcomes).
//
// Missing fields never fail decoding. Where a fallback source exists the
// accessor substitutes it and reports a [Warning]. Callers log warnings and
// keep rendering.
package stats
