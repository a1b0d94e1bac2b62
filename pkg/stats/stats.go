package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/flow"
)

// Well-known status names used to derive funnel quantities.
const (
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffered      = "Offered"
	StatusRejected     = "Rejected"
	StatusAccepted     = "Accepted"
	StatusDeclined     = "Declined"
)

// Aggregate is the statistics payload for one user's applications.
type Aggregate struct {
	Total              float64            `json:"total,omitempty" yaml:"total,omitempty"`
	StatusDistribution map[string]float64 `json:"statusDistribution,omitempty" yaml:"statusDistribution,omitempty"`
	CumulativeStatus   map[string]float64 `json:"cumulativeStatusDistribution,omitempty" yaml:"cumulativeStatusDistribution,omitempty"`
	Monthly            []Month            `json:"monthly,omitempty" yaml:"monthly,omitempty"`
	Interviews         float64            `json:"interviews,omitempty" yaml:"interviews,omitempty"`
	Offers             Offers             `json:"offers" yaml:"offers"`
}

// Month is one monthly bucket of new applications.
type Month struct {
	Month    string             `json:"month" yaml:"month"` // YYYY-MM
	Count    float64            `json:"count" yaml:"count"`
	ByStatus map[string]float64 `json:"byStatus,omitempty" yaml:"byStatus,omitempty"`
}

// Offers holds offer outcome counts.
type Offers struct {
	Received float64 `json:"received,omitempty" yaml:"received,omitempty"`
	Accepted float64 `json:"accepted,omitempty" yaml:"accepted,omitempty"`
	Declined float64 `json:"declined,omitempty" yaml:"declined,omitempty"`
}

// Warning is a data-shape problem that was worked around.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string { return w.Field + ": " + w.Message }

// Distribution returns the current status distribution. When it is absent
// the cumulative distribution is substituted and a warning is returned.
func (a Aggregate) Distribution() (map[string]float64, []Warning) {
	if len(a.StatusDistribution) > 0 {
		return a.StatusDistribution, nil
	}
	if len(a.CumulativeStatus) > 0 {
		return a.CumulativeStatus, []Warning{{
			Field:   "statusDistribution",
			Message: "missing, using cumulativeStatusDistribution",
		}}
	}
	return nil, []Warning{{
		Field:   "statusDistribution",
		Message: "missing and no cumulative distribution to fall back to",
	}}
}

// Data returns the resolved distribution as donut input, ordered by status
// name so equal values keep a deterministic order.
func (a Aggregate) Data() ([]donut.Datum, []Warning) {
	dist, warns := a.Distribution()
	return toData(dist), warns
}

// CumulativeData returns the cumulative distribution as donut input.
func (a Aggregate) CumulativeData() []donut.Datum { return toData(a.CumulativeStatus) }

func toData(dist map[string]float64) []donut.Datum {
	names := make([]string, 0, len(dist))
	for name := range dist {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]donut.Datum, len(names))
	for i, name := range names {
		out[i] = donut.Datum{Label: name, Value: dist[name]}
	}
	return out
}

// Funnel derives the flow summary. Interviews and offers prefer the
// dedicated funnel fields and fall back to the distribution counts.
func (a Aggregate) Funnel() (flow.Funnel, []Warning) {
	dist, warns := a.Distribution()

	total := a.Total
	if total <= 0 {
		for _, v := range dist {
			total += max(0, v)
		}
		if total > 0 {
			warns = append(warns, Warning{Field: "total", Message: "missing, using sum of distribution"})
		}
	}

	interviewing := a.Interviews
	if interviewing <= 0 {
		interviewing = lookup(dist, StatusInterviewing)
	}
	offered := a.Offers.Received
	if offered <= 0 {
		offered = lookup(dist, StatusOffered)
	}
	accepted := a.Offers.Accepted
	if accepted <= 0 {
		accepted = lookup(dist, StatusAccepted)
	}
	declined := a.Offers.Declined
	if declined <= 0 {
		declined = lookup(dist, StatusDeclined)
	}
	if accepted+declined > offered && offered > 0 {
		warns = append(warns, Warning{
			Field:   "offers",
			Message: fmt.Sprintf("accepted+declined (%g) exceeds offers received (%g)", accepted+declined, offered),
		})
	}

	return flow.Funnel{
		Total:        total,
		Applied:      lookup(dist, StatusApplied),
		Interviewing: interviewing,
		Offered:      offered,
		Accepted:     accepted,
		Declined:     declined,
	}, warns
}

// lookup finds a status count, ignoring case.
func lookup(dist map[string]float64, status string) float64 {
	if v, ok := dist[status]; ok {
		return v
	}
	for k, v := range dist {
		if strings.EqualFold(k, status) {
			return v
		}
	}
	return 0
}

// MonthTotals returns the monthly buckets as chart input, in month order.
func (a Aggregate) MonthTotals() []donut.Datum {
	months := make([]Month, len(a.Monthly))
	copy(months, a.Monthly)
	sort.SliceStable(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	out := make([]donut.Datum, len(months))
	for i, m := range months {
		out[i] = donut.Datum{Label: m.Month, Value: m.Count}
	}
	return out
}

// Validate reports values that make no sense as counts.
func (a Aggregate) Validate() error {
	if a.Total < 0 {
		return fmt.Errorf("total is negative: %g", a.Total)
	}
	for _, dist := range []map[string]float64{a.StatusDistribution, a.CumulativeStatus} {
		var sum float64
		for k, v := range dist {
			if v < 0 {
				return fmt.Errorf("status %q has negative count %g", k, v)
			}
			sum += v
		}
		if math.IsInf(sum, 0) {
			return fmt.Errorf("status counts overflow when summed")
		}
	}
	for _, m := range a.Monthly {
		if m.Count < 0 {
			return fmt.Errorf("month %q has negative count %g", m.Month, m.Count)
		}
	}
	return nil
}
