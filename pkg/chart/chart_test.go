package chart

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/errors"
	"github.com/matzehuels/applyviz/pkg/stats"
)

func scenario() stats.Aggregate {
	return stats.Aggregate{
		Total: 25,
		StatusDistribution: map[string]float64{
			"Applied": 10, "Interviewing": 8, "Offered": 5, "Rejected": 2,
		},
		Offers: stats.Offers{Received: 5, Accepted: 2, Declined: 1},
	}
}

func TestBuildScenario(t *testing.T) {
	res := Build(scenario(), DefaultConfig())
	if res.Donut == nil || res.Flow != nil {
		t.Fatalf("donut view should only build the donut")
	}
	d := res.Donut
	if d.Mode != ModeLabels {
		t.Errorf("mode = %s, want labels", d.Mode)
	}
	var pcts []float64
	var names []string
	for _, s := range d.Slices {
		pcts = append(pcts, s.DisplayPercent())
		names = append(names, s.Datum.Label)
	}
	if !reflect.DeepEqual(pcts, []float64{40, 32, 20, 8}) {
		t.Errorf("percentages = %v", pcts)
	}
	if !reflect.DeepEqual(names, []string{"Applied", "Interviewing", "Offered", "Rejected"}) {
		t.Errorf("order = %v", names)
	}
	if len(d.Labels) != 4 {
		t.Errorf("labels = %d, want 4", len(d.Labels))
	}
	if res.Width != DefaultWidth || res.Height != DefaultHeight {
		t.Errorf("surface = %vx%v", res.Width, res.Height)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestBuildLabelsInsideSurface(t *testing.T) {
	res := Build(scenario(), DefaultConfig())
	d := res.Donut
	for _, l := range d.Labels {
		p := d.Center
		x, y := p.X+l.X, p.Y+l.Y
		if x < 0 || x > res.Width || y < 0 || y > res.Height {
			t.Errorf("label %q anchored outside surface at (%v, %v)", l.Text, x, y)
		}
	}
	if d.OuterRadius > DefaultOuterRadius {
		t.Errorf("outer radius grew to %v", d.OuterRadius)
	}
}

func TestModeSwitch(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config)
		n    int
		want LabelMode
	}{
		{"at threshold", func(*Config) {}, 4, ModeLabels},
		{"past threshold", func(*Config) {}, 5, ModeLegend},
		{"explicit legend", func(c *Config) { c.UseLegend = true }, 2, ModeLegend},
		{"labels off", func(c *Config) { c.ShowLabels = false }, 2, ModeNone},
		{"no threshold", func(c *Config) { c.LegendThreshold = 0 }, 12, ModeLabels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.cfg(&cfg)
			if got := cfg.Mode(tt.n); got != tt.want {
				t.Errorf("Mode(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestBuildLegend(t *testing.T) {
	agg := scenario()
	agg.StatusDistribution["Withdrawn"] = 1

	for _, pos := range []LegendPosition{LegendRight, LegendBottom} {
		t.Run(string(pos), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LegendPosition = pos
			d := Build(agg, cfg).Donut
			if d.Mode != ModeLegend || d.Legend == nil {
				t.Fatalf("mode = %s", d.Mode)
			}
			if len(d.Labels) != 0 {
				t.Error("legend mode must not place labels")
			}
			if len(d.Legend.Entries) != len(d.Slices) {
				t.Fatalf("entries = %d, slices = %d", len(d.Legend.Entries), len(d.Slices))
			}
			f := d.Legend.Frame
			for i, e := range d.Legend.Entries {
				if e.Label != d.Slices[i].Datum.Label || e.Color != d.Slices[i].Color {
					t.Errorf("entry %d does not match its wedge", i)
				}
				if e.ID().Target() != d.Slices[i].ID() {
					t.Errorf("entry %d id %v does not resolve to %v", i, e.ID(), d.Slices[i].ID())
				}
				if e.X < f.X || e.X > f.X+f.Width || e.Y < f.Y || e.Y > f.Y+f.Height {
					t.Errorf("entry %q outside legend frame", e.Label)
				}
			}
			if pos == LegendRight && d.Center.X >= DefaultWidth/2 {
				t.Errorf("ring should shift left, center %v", d.Center)
			}
			if pos == LegendBottom && d.Center.Y >= DefaultHeight/2 {
				t.Errorf("ring should shift up, center %v", d.Center)
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	agg := stats.Aggregate{StatusDistribution: map[string]float64{"A": 0, "B": 0}}
	d := Build(agg, DefaultConfig()).Donut
	if !d.Empty() || d.Total != 0 || d.Mode != ModeNone {
		t.Errorf("empty donut = %+v", d)
	}
	if d.OuterRadius <= 0 {
		t.Error("empty donut still needs radii for the neutral ring")
	}
}

func TestBuildFallbackWarning(t *testing.T) {
	agg := stats.Aggregate{CumulativeStatus: map[string]float64{"Applied": 3, "Rejected": 1}}
	cfg := DefaultConfig()
	cfg.View = ViewBoth
	res := Build(agg, cfg)
	if res.Donut.Empty() {
		t.Error("cumulative fallback should still draw wedges")
	}
	count := 0
	for _, w := range res.Warnings {
		if w.Field == "statusDistribution" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("fallback warning reported %d times: %v", count, res.Warnings)
	}
}

func TestBuildBoth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.View = ViewBoth
	res := Build(scenario(), cfg)
	if res.Donut == nil || res.Flow == nil {
		t.Fatal("both view needs both charts")
	}
	if res.Donut.Frame.Width+res.Flow.Frame.Width != cfg.Width {
		t.Errorf("frames do not tile the surface: %+v %+v", res.Donut.Frame, res.Flow.Frame)
	}
	if d := res.Flow.Dangling(); len(d) != 0 {
		t.Errorf("dangling links: %v", d)
	}
}

func TestColors(t *testing.T) {
	agg := stats.Aggregate{StatusDistribution: map[string]float64{"A": 3, "B": 2, "C": 1}}
	cfg := DefaultConfig()
	cfg.ColorScheme = []string{"#111111", "#222222"}
	d := Build(agg, cfg).Donut
	got := []string{d.Slices[0].Color, d.Slices[1].Color, d.Slices[2].Color}
	want := []string{"#111111", "#222222", "#111111"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("colors = %v, want %v", got, want)
	}

	over := BuildDonut([]donut.Datum{{Label: "X", Value: 1, Color: "#abcdef"}}, Rect{Width: 200, Height: 200}, cfg)
	if over.Slices[0].Color != "#abcdef" {
		t.Errorf("datum color ignored: %s", over.Slices[0].Color)
	}
}

func TestFitRadii(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	d := Build(scenario(), cfg).Donut
	if d.OuterRadius >= DefaultOuterRadius {
		t.Errorf("radius not reduced: %v", d.OuterRadius)
	}
	want := DefaultInnerRadius / DefaultOuterRadius
	if got := d.InnerRadius / d.OuterRadius; math.Abs(got-want) > 1e-9 {
		t.Errorf("ratio = %v, want %v", got, want)
	}
}

func TestElements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.View = ViewBoth
	res := Build(scenario(), cfg)
	elems := res.Elements()
	want := len(res.Donut.Slices) + len(res.Flow.Nodes) + len(res.Flow.Links)
	if len(elems) != want {
		t.Fatalf("elements = %d, want %d", len(elems), want)
	}
	c := interact.NewController(elems)
	if _, ok := c.Element(interact.LinkID("offers", "accepted")); !ok {
		t.Error("offers-accepted link missing from elements")
	}
	if len(res.ElementKeys()) != want {
		t.Error("keys mismatch")
	}
}

func TestBuildZeroConfig(t *testing.T) {
	res := Build(scenario(), Config{})
	if res.Width != DefaultWidth || res.ChartID != DefaultChartID {
		t.Errorf("defaults not applied: %+v", res)
	}
	if res.Animation.Enabled() {
		t.Error("zero duration disables animation")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"inner above outer", func(c *Config) { c.InnerRadius = 200 }, true},
		{"bad color", func(c *Config) { c.ColorScheme = []string{"#12"} }, true},
		{"bad legend", func(c *Config) { c.LegendPosition = "left" }, true},
		{"negative animation", func(c *Config) { c.AnimationDurationMs = -1 }, true},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"bad view", func(c *Config) { c.View = "bars" }, true},
		{"bad chart id", func(c *Config) { c.ChartID = "9 lives" }, true},
		{"bad stroke", func(c *Config) { c.Stroke.MaxWidth = 1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s", errors.GetCode(err))
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
width = 800
outerRadius = 150
useLegend = true
legendPosition = "bottom"
colorScheme = ["#000000", "#ffffff"]

[stroke]
min_width = 1
max_width = 20
cap_value = 50
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != DefaultHeight || !cfg.UseLegend || cfg.LegendPosition != LegendBottom {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Stroke.CapValue != 50 {
		t.Errorf("stroke = %+v", cfg.Stroke)
	}

	if _, err := ParseConfig([]byte(`widht = 1`)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown key error = %v", err)
	}
	if _, err := ParseConfig([]byte(`width = "x"`)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("type error = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.toml")
	if err := os.WriteFile(path, []byte("height = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil || cfg.Height != 300 {
		t.Errorf("LoadConfig = %+v, %v", cfg, err)
	}
	if _, err := LoadConfig(path + ".missing"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing error = %v", err)
	}
}
