package flow

import "fmt"

// Stage identifies a node in the funnel.
type Stage int

const (
	StageApplications Stage = iota
	StageRejected
	StagePending
	StageInterviewing
	StageOffers
	StageAccepted
	StageDeclined
	StageAwaiting

	numStages
)

var stageIDs = [numStages]string{
	StageApplications: "applications",
	StageRejected:     "rejected",
	StagePending:      "pending",
	StageInterviewing: "interviewing",
	StageOffers:       "offers",
	StageAccepted:     "accepted",
	StageDeclined:     "declined",
	StageAwaiting:     "awaiting",
}

var stageLabels = [numStages]string{
	StageApplications: "Applications",
	StageRejected:     "Rejected",
	StagePending:      "Pending",
	StageInterviewing: "Interviewing",
	StageOffers:       "Offers",
	StageAccepted:     "Accepted",
	StageDeclined:     "Declined",
	StageAwaiting:     "Awaiting decision",
}

// Stages returns every stage in topology order.
func Stages() []Stage {
	out := make([]Stage, numStages)
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

// String returns the stage identifier used in node ids.
func (s Stage) String() string {
	if s < 0 || s >= numStages {
		return "unknown"
	}
	return stageIDs[s]
}

// Label returns the display name.
func (s Stage) Label() string {
	if s < 0 || s >= numStages {
		return "Unknown"
	}
	return stageLabels[s]
}

// ParseStage maps an identifier back to its stage.
func ParseStage(id string) (Stage, bool) {
	for i, s := range stageIDs {
		if s == id {
			return Stage(i), true
		}
	}
	return 0, false
}

// position is a node placement as fractions of the frame: fx is the left
// edge, fy the vertical center.
type position struct{ fx, fy float64 }

var stagePositions = [numStages]position{
	StageApplications: {0.04, 0.50},
	StageRejected:     {0.44, 0.14},
	StagePending:      {0.44, 0.38},
	StageInterviewing: {0.44, 0.62},
	StageOffers:       {0.44, 0.86},
	StageAccepted:     {0.84, 0.62},
	StageDeclined:     {0.84, 0.78},
	StageAwaiting:     {0.84, 0.94},
}

// Column returns 0, 1, or 2 for the stage's horizontal tier.
func (s Stage) Column() int {
	switch s {
	case StageApplications:
		return 0
	case StageAccepted, StageDeclined, StageAwaiting:
		return 2
	default:
		return 1
	}
}

// LinkKind identifies a known edge of the funnel topology.
type LinkKind int

const (
	// LinkUnknown is the fallback for any pair outside the topology.
	LinkUnknown LinkKind = iota
	LinkApplicationsRejected
	LinkApplicationsPending
	LinkApplicationsInterviewing
	LinkApplicationsOffers
	LinkOffersAccepted
	LinkOffersDeclined
	LinkOffersAwaiting
)

type edge struct {
	kind     LinkKind
	from, to Stage
}

// topology lists every link in drawing order.
var topology = []edge{
	{LinkApplicationsRejected, StageApplications, StageRejected},
	{LinkApplicationsPending, StageApplications, StagePending},
	{LinkApplicationsInterviewing, StageApplications, StageInterviewing},
	{LinkApplicationsOffers, StageApplications, StageOffers},
	{LinkOffersAccepted, StageOffers, StageAccepted},
	{LinkOffersDeclined, StageOffers, StageDeclined},
	{LinkOffersAwaiting, StageOffers, StageAwaiting},
}

// Kinds returns every known link kind in topology order.
func Kinds() []LinkKind {
	out := make([]LinkKind, len(topology))
	for i, e := range topology {
		out[i] = e.kind
	}
	return out
}

// KindOf returns the link kind connecting two stages, or LinkUnknown.
func KindOf(from, to Stage) LinkKind {
	for _, e := range topology {
		if e.from == from && e.to == to {
			return e.kind
		}
	}
	return LinkUnknown
}

// Endpoints returns the stages a known link connects.
func (k LinkKind) Endpoints() (from, to Stage, ok bool) {
	for _, e := range topology {
		if e.kind == k {
			return e.from, e.to, true
		}
	}
	return 0, 0, false
}

// String returns the "source-target" key of the link.
func (k LinkKind) String() string {
	from, to, ok := k.Endpoints()
	if !ok {
		return "unknown"
	}
	return from.String() + "-" + to.String()
}

// MarshalText encodes the stage as its identifier.
func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a stage identifier.
func (s *Stage) UnmarshalText(b []byte) error {
	v, ok := ParseStage(string(b))
	if !ok {
		return fmt.Errorf("unknown stage %q", b)
	}
	*s = v
	return nil
}

// ParseLinkKind maps a "source-target" key to its kind. Unknown keys map to
// LinkUnknown.
func ParseLinkKind(key string) LinkKind {
	for _, e := range topology {
		if e.kind.String() == key {
			return e.kind
		}
	}
	return LinkUnknown
}

// MarshalText encodes the kind as its "source-target" key.
func (k LinkKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a link key. Unrecognized keys decode to LinkUnknown.
func (k *LinkKind) UnmarshalText(b []byte) error {
	*k = ParseLinkKind(string(b))
	return nil
}
