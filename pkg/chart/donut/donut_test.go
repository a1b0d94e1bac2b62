package donut

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/applyviz/pkg/geom"
)

func TestLayoutStatusScenario(t *testing.T) {
	data := []Datum{
		{Label: "Rejected", Value: 2},
		{Label: "Offered", Value: 5},
		{Label: "Applied", Value: 10},
		{Label: "Interviewing", Value: 8},
	}
	pie := Layout(data, DefaultOptions())

	if len(pie.Wedges) != 4 {
		t.Fatalf("len(Wedges) = %d, want 4", len(pie.Wedges))
	}
	wantLabels := []string{"Applied", "Interviewing", "Offered", "Rejected"}
	wantPct := []float64{40.0, 32.0, 20.0, 8.0}
	for i, w := range pie.Wedges {
		if w.Datum.Label != wantLabels[i] {
			t.Errorf("Wedges[%d].Label = %q, want %q", i, w.Datum.Label, wantLabels[i])
		}
		if got := w.DisplayPercent(); got != wantPct[i] {
			t.Errorf("Wedges[%d] percent = %v, want %v", i, got, wantPct[i])
		}
		if w.Index != i {
			t.Errorf("Wedges[%d].Index = %d", i, w.Index)
		}
	}
	if pie.Total != 25 {
		t.Errorf("Total = %v, want 25", pie.Total)
	}
	if got := pie.TotalSpan(); math.Abs(got-geom.FullTurn) > 1e-6 {
		t.Errorf("TotalSpan() = %v, want 2π", got)
	}
}

func TestLayoutAllZero(t *testing.T) {
	pie := Layout([]Datum{{Label: "A"}, {Label: "B"}}, DefaultOptions())
	if !pie.Empty() {
		t.Errorf("expected empty pie, got %d wedges", len(pie.Wedges))
	}
	if pie.Total != 0 {
		t.Errorf("Total = %v, want 0", pie.Total)
	}
	if len(pie.Shares) != 0 {
		t.Errorf("Shares = %v, want none", pie.Shares)
	}
}

func TestLayoutEmpty(t *testing.T) {
	pie := Layout(nil, DefaultOptions())
	if !pie.Empty() || pie.Total != 0 {
		t.Errorf("Layout(nil) = %+v, want empty", pie)
	}
}

func TestLayoutSingleEntry(t *testing.T) {
	opts := DefaultOptions()
	pie := Layout([]Datum{{Label: "Only", Value: 3}}, opts)
	if len(pie.Wedges) != 1 {
		t.Fatalf("len(Wedges) = %d, want 1", len(pie.Wedges))
	}
	w := pie.Wedges[0]
	if want := geom.FullTurn - opts.PadAngle; math.Abs(w.Span()-want) > 1e-9 {
		t.Errorf("Span() = %v, want %v", w.Span(), want)
	}
	if w.DisplayPercent() != 100 {
		t.Errorf("percent = %v, want 100", w.DisplayPercent())
	}
}

func TestLayoutFiltersNonPositive(t *testing.T) {
	pie := Layout([]Datum{
		{Label: "neg", Value: -4},
		{Label: "nan", Value: math.NaN()},
		{Label: "ok", Value: 1},
	}, DefaultOptions())
	if len(pie.Wedges) != 1 || pie.Wedges[0].Datum.Label != "ok" {
		t.Errorf("Wedges = %+v, want only ok", pie.Wedges)
	}
}

func TestLayoutOverflowingTotal(t *testing.T) {
	pie := Layout([]Datum{
		{Label: "a", Value: math.MaxFloat64},
		{Label: "b", Value: math.MaxFloat64},
	}, DefaultOptions())
	if !math.IsInf(pie.Total, 1) {
		t.Fatalf("Total = %v, want +Inf", pie.Total)
	}
	spans := []float64{pie.Wedges[0].Span(), pie.Wedges[1].Span()}
	if math.Abs(spans[0]-spans[1]) > 1e-9 {
		t.Errorf("equal values got spans %v", spans)
	}
	if got := pie.Percentages(); got[0] != 50 || got[1] != 50 {
		t.Errorf("Percentages() = %v, want [50 50]", got)
	}
	if math.Abs(pie.TotalSpan()-geom.FullTurn) > 1e-9 {
		t.Errorf("TotalSpan() = %v, want full turn", pie.TotalSpan())
	}
}

func TestLayoutMergesDuplicateLabels(t *testing.T) {
	pie := Layout([]Datum{
		{Label: "Applied", Value: 3, Color: "#111"},
		{Label: "Rejected", Value: 4},
		{Label: "Applied", Value: 2, Color: "#222"},
		{Label: "Rejected", Value: 0},
	}, Options{SortDescending: true, RetainZero: true})
	if len(pie.Wedges) != 2 || len(pie.Shares) != 2 {
		t.Fatalf("got %d wedges %d shares, want 2 each", len(pie.Wedges), len(pie.Shares))
	}
	w, ok := pie.Find("Applied")
	if !ok || w.Datum.Value != 5 || w.Datum.Color != "#111" {
		t.Errorf("Applied = %+v, want value 5 color #111", w.Datum)
	}
	if pie.Wedges[0].Datum.Label != "Applied" {
		t.Errorf("merged value should sort first, got %s", pie.Wedges[0].Datum.Label)
	}
}

func TestLayoutStableTies(t *testing.T) {
	pie := Layout([]Datum{
		{Label: "first", Value: 5},
		{Label: "big", Value: 9},
		{Label: "second", Value: 5},
	}, DefaultOptions())
	got := []string{pie.Wedges[0].Datum.Label, pie.Wedges[1].Datum.Label, pie.Wedges[2].Datum.Label}
	want := []string{"big", "first", "second"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestLayoutUnsorted(t *testing.T) {
	opts := DefaultOptions()
	opts.SortDescending = false
	pie := Layout([]Datum{{Label: "a", Value: 1}, {Label: "b", Value: 3}}, opts)
	if pie.Wedges[0].Datum.Label != "a" {
		t.Errorf("input order not preserved: %q first", pie.Wedges[0].Datum.Label)
	}
}

func TestLayoutRetainZero(t *testing.T) {
	opts := DefaultOptions()
	opts.RetainZero = true
	pie := Layout([]Datum{{Label: "a", Value: 2}, {Label: "z", Value: 0}}, opts)
	if len(pie.Wedges) != 1 {
		t.Errorf("zero entries must not get wedges, got %d", len(pie.Wedges))
	}
	if len(pie.Shares) != 2 || pie.Shares[1].Label != "z" || pie.Shares[1].Percent != 0 {
		t.Errorf("Shares = %+v, want retained zero share", pie.Shares)
	}
}

func TestLayoutPaddingCollapses(t *testing.T) {
	opts := Options{PadAngle: 4, SortDescending: true}
	pie := Layout([]Datum{{Label: "a", Value: 1}, {Label: "b", Value: 1}}, opts)
	for _, w := range pie.Wedges {
		if w.PadAngle != 0 {
			t.Errorf("PadAngle = %v, want 0 when padding would exceed a full turn", w.PadAngle)
		}
	}
	if got := pie.TotalSpan(); math.Abs(got-geom.FullTurn) > 1e-9 {
		t.Errorf("TotalSpan() = %v, want 2π", got)
	}
}

func TestWedgesDoNotOverlap(t *testing.T) {
	pie := Layout([]Datum{{"a", 3, ""}, {"b", 2, ""}, {"c", 1, ""}}, DefaultOptions())
	for i := 1; i < len(pie.Wedges); i++ {
		prev, cur := pie.Wedges[i-1], pie.Wedges[i]
		if cur.StartAngle < prev.EndAngle {
			t.Errorf("wedge %d starts at %v before previous end %v", i, cur.StartAngle, prev.EndAngle)
		}
	}
}

func TestFind(t *testing.T) {
	pie := Layout([]Datum{{Label: "a", Value: 3}}, DefaultOptions())
	if _, ok := pie.Find("a"); !ok {
		t.Error("Find(a) = false")
	}
	if _, ok := pie.Find("missing"); ok {
		t.Error("Find(missing) = true")
	}
}

func genData() gopter.Gen {
	return gen.SliceOf(gen.Float64Range(0, 1000)).Map(func(vs []float64) []Datum {
		out := make([]Datum, len(vs))
		for i, v := range vs {
			out[i] = Datum{Label: string(rune('a' + i)), Value: v}
		}
		return out
	})
}

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("spans plus padding make a full turn", prop.ForAll(
		func(data []Datum) bool {
			pie := Layout(data, DefaultOptions())
			if pie.Empty() {
				return pie.Total == 0
			}
			return math.Abs(pie.TotalSpan()-geom.FullTurn) <= 1e-6
		},
		genData(),
	))

	properties.Property("percentages sum to 100 within rounding", prop.ForAll(
		func(data []Datum) bool {
			pie := Layout(data, DefaultOptions())
			if pie.Empty() {
				return true
			}
			var sum float64
			for _, p := range pie.Percentages() {
				sum += p
			}
			return math.Abs(sum-100) <= 0.1*float64(len(pie.Wedges))
		},
		genData(),
	))

	properties.Property("wedges are ordered by descending value", prop.ForAll(
		func(data []Datum) bool {
			pie := Layout(data, DefaultOptions())
			for i := 1; i < len(pie.Wedges); i++ {
				if pie.Wedges[i].Datum.Value > pie.Wedges[i-1].Datum.Value {
					return false
				}
			}
			return true
		},
		genData(),
	))

	properties.TestingRun(t)
}
