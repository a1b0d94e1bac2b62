package stats

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/applyviz/pkg/errors"
)

const sampleJSON = `{
  "total": 100,
  "statusDistribution": {"Applied": 10, "Interviewing": 15, "Offered": 5, "Rejected": 70},
  "cumulativeStatusDistribution": {"Applied": 100, "Interviewing": 25, "Offered": 5},
  "monthly": [{"month": "2026-02", "count": 30}, {"month": "2026-01", "count": 70}],
  "offers": {"received": 5, "accepted": 1, "declined": 1}
}`

const sampleYAML = `
total: 100
statusDistribution:
  Applied: 10
  Interviewing: 15
  Offered: 5
  Rejected: 70
offers:
  received: 5
  accepted: 1
  declined: 1
`

func TestParseFormats(t *testing.T) {
	j, err := Parse([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	y, err := Parse([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !reflect.DeepEqual(j.StatusDistribution, y.StatusDistribution) {
		t.Errorf("distributions differ: %v vs %v", j.StatusDistribution, y.StatusDistribution)
	}
	if j.Offers != y.Offers {
		t.Errorf("offers differ: %+v vs %+v", j.Offers, y.Offers)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"bad json", "{", FormatJSON, errors.ErrCodeInvalidStats},
		{"bad yaml", "total: [", FormatYAML, errors.ErrCodeInvalidStats},
		{"negative", `{"statusDistribution": {"Applied": -1}}`, FormatJSON, errors.ErrCodeInvalidStats},
		{"overflowing sum", `{"statusDistribution": {"Applied": 1.7e308, "Rejected": 1.7e308}}`, FormatJSON, errors.ErrCodeInvalidStats},
		{"unknown format", "{}", Format("xml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDistributionFallback(t *testing.T) {
	a := Aggregate{CumulativeStatus: map[string]float64{"Applied": 3}}
	dist, warns := a.Distribution()
	if dist["Applied"] != 3 {
		t.Errorf("dist = %v", dist)
	}
	if len(warns) != 1 || warns[0].Field != "statusDistribution" {
		t.Errorf("warnings = %v", warns)
	}

	a.StatusDistribution = map[string]float64{"Applied": 1}
	if _, warns := a.Distribution(); len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}

	if dist, warns := (Aggregate{}).Distribution(); dist != nil || len(warns) != 1 {
		t.Errorf("empty aggregate = %v, %v", dist, warns)
	}
}

func TestData(t *testing.T) {
	a, _ := Parse([]byte(sampleJSON), FormatJSON)
	data, warns := a.Data()
	if len(warns) != 0 {
		t.Errorf("warnings = %v", warns)
	}
	var labels []string
	for _, d := range data {
		labels = append(labels, d.Label)
	}
	want := []string{"Applied", "Interviewing", "Offered", "Rejected"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestFunnel(t *testing.T) {
	a, _ := Parse([]byte(sampleJSON), FormatJSON)
	f, warns := a.Funnel()
	if len(warns) != 0 {
		t.Errorf("warnings = %v", warns)
	}
	if f.Total != 100 || f.Applied != 10 || f.Interviewing != 15 || f.Offered != 5 || f.Accepted != 1 || f.Declined != 1 {
		t.Errorf("funnel = %+v", f)
	}
}

func TestFunnelFallbacks(t *testing.T) {
	a := Aggregate{
		CumulativeStatus: map[string]float64{"applied": 4, "interviewing": 2, "offered": 1, "accepted": 1},
	}
	f, warns := a.Funnel()
	if f.Total != 8 {
		t.Errorf("total = %v, want sum 8", f.Total)
	}
	if f.Applied != 4 || f.Interviewing != 2 || f.Offered != 1 || f.Accepted != 1 {
		t.Errorf("funnel = %+v", f)
	}
	fields := map[string]bool{}
	for _, w := range warns {
		fields[w.Field] = true
	}
	if !fields["statusDistribution"] || !fields["total"] {
		t.Errorf("warnings = %v", warns)
	}
}

func TestFunnelOfferMismatch(t *testing.T) {
	a := Aggregate{
		Total:              10,
		StatusDistribution: map[string]float64{"Offered": 1},
		Offers:             Offers{Received: 1, Accepted: 1, Declined: 1},
	}
	_, warns := a.Funnel()
	if len(warns) != 1 || warns[0].Field != "offers" {
		t.Errorf("warnings = %v", warns)
	}
}

func TestMonthTotals(t *testing.T) {
	a, _ := Parse([]byte(sampleJSON), FormatJSON)
	got := a.MonthTotals()
	if len(got) != 2 || got[0].Label != "2026-01" || got[0].Value != 70 {
		t.Errorf("MonthTotals = %+v", got)
	}
	if a.Monthly[0].Month != "2026-02" {
		t.Error("MonthTotals must not reorder the aggregate")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if a.Total != 100 {
		t.Errorf("total = %v", a.Total)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	a, err := Load(strings.NewReader(sampleJSON), FormatJSON)
	if err != nil || a.Total != 100 {
		t.Errorf("Load = %+v, %v", a, err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.json": FormatJSON,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %s, want %s", path, got, want)
		}
	}
}
