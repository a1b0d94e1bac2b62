// Package cache stores computed layouts and rendered artifacts.
//
// Caching is content-addressed: keys are derived from a hash of the input
// statistics plus the options that influence the output, so identical
// requests reuse earlier work. Three backends are provided:
//
//   - [FileCache] for CLI usage, one JSON file per entry
//   - [RedisCache] for the HTTP service, shared between instances
//   - [NullCache] when caching is disabled
//
// Key generation is isolated behind [Keyer] so callers can namespace keys
// (see [ScopedKeyer]) without touching the backends.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes per pipeline stage. Layouts depend only on their inputs,
// so they live as long as artifacts.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with ok=false and a nil error. Backends must treat
// corrupted or expired entries as misses rather than errors.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey identifies a LayoutResult computed from the stats with the
	// given hash.
	LayoutKey(statsHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the chart options that change a computed layout.
type LayoutKeyOpts struct {
	View            string  `json:"view"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	InnerRadius     float64 `json:"inner_radius"`
	OuterRadius     float64 `json:"outer_radius"`
	PadAngle        float64 `json:"pad_angle"`
	ShowLabels      bool    `json:"show_labels"`
	ShowPercentages bool    `json:"show_percentages"`
	UseLegend       bool    `json:"use_legend"`
	LegendPosition  string  `json:"legend_position"`
	ConfigHash      string  `json:"config_hash,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Animated  bool    `json:"animated"`
	Tooltips  bool    `json:"tooltips"`
	Hover     bool    `json:"hover,omitempty"`
	Detailed  bool    `json:"detailed,omitempty"`
	Highlight string  `json:"highlight,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes the stage inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(statsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", statsHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
