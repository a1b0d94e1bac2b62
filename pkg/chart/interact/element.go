package interact

import (
	"fmt"

	"github.com/matzehuels/applyviz/pkg/chart/flow"
)

// Kind is the class of an interactive element.
type Kind int

const (
	KindWedge Kind = iota
	KindLink
	KindNode
	// KindLegend entries resolve to the wedge with the same key.
	KindLegend
)

var kindNames = [...]string{"wedge", "link", "node", "legend"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ElementID identifies an interactive element within one chart.
type ElementID struct {
	Kind Kind
	Key  string
}

// WedgeID returns the identity of the wedge with the given label.
func WedgeID(label string) ElementID { return ElementID{KindWedge, label} }

// LegendID returns the identity of a legend entry.
func LegendID(label string) ElementID { return ElementID{KindLegend, label} }

// LinkID returns the identity of a flow link.
func LinkID(source, target string) ElementID {
	return ElementID{KindLink, source + "-" + target}
}

// NodeID returns the identity of a flow node.
func NodeID(id string) ElementID { return ElementID{KindNode, id} }

// String returns "kind:key", the form used in data-element attributes.
func (id ElementID) String() string { return id.Kind.String() + ":" + id.Key }

// Target resolves legend entries to their wedge. Other ids are returned as is.
func (id ElementID) Target() ElementID {
	if id.Kind == KindLegend {
		return WedgeID(id.Key)
	}
	return id
}

// ParseElementID parses the "kind:key" form.
func ParseElementID(s string) (ElementID, error) {
	for i, name := range kindNames {
		prefix := name + ":"
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			return ElementID{Kind(i), s[len(prefix):]}, nil
		}
	}
	return ElementID{}, fmt.Errorf("invalid element id %q", s)
}

// Element is what the controller needs to know about one drawn element.
type Element struct {
	ID      ElementID
	Label   string
	Value   float64
	Percent float64
	// Link is set for flow links. It selects the tooltip template.
	Link flow.LinkKind
}

// State is the hover state of one element.
type State int

const (
	Idle State = iota
	Hovered
)

func (s State) String() string {
	if s == Hovered {
		return "hovered"
	}
	return "idle"
}

// Transition records one element changing state.
type Transition struct {
	ID       ElementID
	From, To State
}

func (t Transition) String() string {
	return fmt.Sprintf("%s %s->%s", t.ID, t.From, t.To)
}
