package interact

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/applyviz/pkg/chart/flow"
	"github.com/matzehuels/applyviz/pkg/geom"
)

var (
	accepted = LinkID("offers", "accepted")
	declined = LinkID("offers", "declined")
	applied  = WedgeID("Applied")
)

func testElements() []Element {
	return []Element{
		{ID: accepted, Value: 2, Percent: 40, Link: flow.LinkOffersAccepted},
		{ID: declined, Value: 1, Percent: 20, Link: flow.LinkOffersDeclined},
		{ID: applied, Label: "Applied", Value: 40, Percent: 40},
		{ID: NodeID("offers"), Label: "Offers", Value: 5},
	}
}

func TestEnterWithoutLeave(t *testing.T) {
	c := NewController(testElements())

	got := c.Enter(accepted, geom.Point{X: 10, Y: 10})
	want := []Transition{{accepted, Idle, Hovered}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("first enter = %v, want %v", got, want)
	}

	got = c.Enter(declined, geom.Point{X: 20, Y: 20})
	want = []Transition{
		{accepted, Hovered, Idle},
		{declined, Idle, Hovered},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("second enter = %v, want %v", got, want)
	}
	if id, ok := c.Hovered(); !ok || id != declined {
		t.Errorf("hovered = %v, %v", id, ok)
	}
}

func TestStaleLeaveIgnored(t *testing.T) {
	c := NewController(testElements())
	c.Enter(accepted, geom.Point{})
	c.Enter(declined, geom.Point{})

	if got := c.Leave(accepted); got != nil {
		t.Errorf("stale leave = %v, want nil", got)
	}
	if c.State(declined) != Hovered {
		t.Error("declined should still be hovered")
	}
	got := c.Leave(declined)
	if len(got) != 1 || got[0].To != Idle {
		t.Errorf("leave = %v", got)
	}
	if c.Tooltip().Visible {
		t.Error("tooltip should hide on leave")
	}
	if got := c.Leave(declined); got != nil {
		t.Errorf("double leave = %v, want nil", got)
	}
}

func TestReenterSameElement(t *testing.T) {
	c := NewController(testElements())
	c.Enter(applied, geom.Point{X: 1, Y: 1})
	if got := c.Enter(applied, geom.Point{X: 5, Y: 5}); got != nil {
		t.Errorf("re-enter = %v, want nil", got)
	}
	if tip := c.Tooltip(); tip.X != 17 || tip.Y != 17 {
		t.Errorf("tooltip at (%v, %v), want (17, 17)", tip.X, tip.Y)
	}
}

func TestMoveRepositionsTooltip(t *testing.T) {
	c := NewController(testElements(), WithTooltipOffset(0, 0), WithBounds(100, 50))
	if _, ok := c.Move(geom.Point{X: 3, Y: 3}); ok {
		t.Error("move with nothing hovered should not show a tooltip")
	}
	c.Enter(applied, geom.Point{X: 10, Y: 10})
	for _, p := range []geom.Point{{X: 20, Y: 30}, {X: 40, Y: 45}} {
		tip, ok := c.Move(p)
		if !ok || tip.X != p.X || tip.Y != p.Y {
			t.Errorf("Move(%v) = %+v", p, tip)
		}
	}
	tip, _ := c.Move(geom.Point{X: 500, Y: -5})
	if tip.X != 100 || tip.Y != 0 {
		t.Errorf("tooltip not clamped: %+v", tip)
	}
}

func TestLegendResolvesToWedge(t *testing.T) {
	c := NewController(testElements())
	got := c.Enter(LegendID("Applied"), geom.Point{})
	if len(got) != 1 || got[0].ID != applied {
		t.Fatalf("legend enter = %v", got)
	}
	if c.State(applied) != Hovered || c.State(LegendID("Applied")) != Hovered {
		t.Error("wedge and legend should share hover state")
	}
	if got := c.Leave(LegendID("Applied")); len(got) != 1 {
		t.Errorf("legend leave = %v", got)
	}
}

func TestUnknownElementReleasesHover(t *testing.T) {
	c := NewController(testElements())
	c.Enter(applied, geom.Point{})
	got := c.Enter(WedgeID("missing"), geom.Point{})
	want := []Transition{{applied, Hovered, Idle}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unknown enter = %v, want %v", got, want)
	}
	if _, ok := c.Hovered(); ok {
		t.Error("nothing should be hovered")
	}
}

func TestResetDropsRemovedElement(t *testing.T) {
	c := NewController(testElements())
	c.Enter(declined, geom.Point{})

	got := c.Reset(testElements()[:1])
	want := []Transition{{declined, Hovered, Idle}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reset = %v, want %v", got, want)
	}

	c.Enter(accepted, geom.Point{})
	next := testElements()[:1]
	next[0].Value = 3
	if got := c.Reset(next); got != nil {
		t.Errorf("reset keeping hovered = %v, want nil", got)
	}
	if !strings.HasPrefix(c.Tooltip().Text, "3 offers accepted") {
		t.Errorf("tooltip not refreshed: %q", c.Tooltip().Text)
	}
}

func TestWeight(t *testing.T) {
	c := NewController(testElements(), WithWeights(0.5, 1))
	c.Enter(applied, geom.Point{})
	if got := c.Weight(applied); got != 1 {
		t.Errorf("hovered weight = %v", got)
	}
	if got := c.Weight(accepted); got != 0.5 {
		t.Errorf("idle weight = %v", got)
	}
}

func TestObserver(t *testing.T) {
	var seen []Transition
	c := NewController(testElements(), WithObserver(func(tr Transition) { seen = append(seen, tr) }))
	c.Enter(accepted, geom.Point{})
	c.Enter(declined, geom.Point{})
	c.Leave(declined)
	if len(seen) != 4 {
		t.Errorf("observer saw %d transitions, want 4: %v", len(seen), seen)
	}
}

func TestTooltipText(t *testing.T) {
	tests := []struct {
		name string
		in   Element
		want string
	}{
		{"known link", Element{ID: accepted, Value: 2, Percent: 40, Link: flow.LinkOffersAccepted}, "2 offers accepted (40.0%)"},
		{"unknown link", Element{ID: LinkID("a", "b"), Value: 7, Percent: 12.345}, "7 items (12.3%)"},
		{"wedge", Element{ID: applied, Label: "Applied", Value: 40, Percent: 40}, "Applied: 40 items (40.0%)"},
		{"node", Element{ID: NodeID("offers"), Label: "Offers", Value: 5}, "Offers: 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TooltipText(tt.in); got != tt.want {
				t.Errorf("TooltipText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEveryLinkKindHasTemplate(t *testing.T) {
	for _, k := range flow.Kinds() {
		if _, ok := linkTemplates[k]; !ok {
			t.Errorf("no tooltip template for %s", k)
		}
	}
}

func TestParseElementID(t *testing.T) {
	for _, id := range []ElementID{applied, accepted, NodeID("offers"), LegendID("Offer Received")} {
		got, err := ParseElementID(id.String())
		if err != nil || got != id {
			t.Errorf("ParseElementID(%q) = %v, %v", id.String(), got, err)
		}
	}
	if _, err := ParseElementID("bogus"); err == nil {
		t.Error("expected error")
	}
}
