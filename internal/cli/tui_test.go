package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/stats"
)

func inspectModel(t *testing.T) InspectModel {
	t.Helper()
	agg, err := stats.Parse([]byte(sampleStats), stats.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	cfg := chart.DefaultConfig()
	cfg.View = chart.ViewBoth
	m := NewInspectModel(chart.Build(agg, cfg), agg.MonthTotals())
	clock := time.Unix(0, 0)
	m.now = func() time.Time { return clock }
	return m
}

func press(m InspectModel, keys ...string) InspectModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(InspectModel)
	}
	return m
}

func TestInspectHoverFollowsCursor(t *testing.T) {
	m := inspectModel(t)
	if len(m.Elements) < 3 {
		t.Fatalf("elements = %d", len(m.Elements))
	}

	m = press(m, "down")
	id, ok := m.ctrl.Hovered()
	if !ok || id != m.Elements[1].ID {
		t.Fatalf("hovered = %v %v, want %v", id, ok, m.Elements[1].ID)
	}

	m = press(m, "down")
	if m.ctrl.State(m.Elements[1].ID) != interact.Idle {
		t.Error("moving on should release the previous element")
	}
	if m.ctrl.State(m.Elements[2].ID) != interact.Hovered {
		t.Error("element under the cursor should be hovered")
	}
	if !m.ctrl.Tooltip().Visible {
		t.Error("tooltip should be visible while hovering")
	}

	m = press(m, "esc")
	if _, ok := m.ctrl.Hovered(); ok {
		t.Error("esc should leave the hovered element")
	}
	if m.ctrl.Tooltip().Visible {
		t.Error("tooltip should hide after leave")
	}
}

func TestInspectHistory(t *testing.T) {
	m := inspectModel(t)
	m = press(m, "down", "down", "down", "k", "j")
	if len(m.History) != historySize {
		t.Fatalf("history = %d entries, want %d", len(m.History), historySize)
	}
	last := m.History[len(m.History)-1]
	if !strings.HasSuffix(last, "idle->hovered") {
		t.Errorf("last transition = %q", last)
	}
}

func TestInspectCursorBounds(t *testing.T) {
	m := inspectModel(t)
	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	for range m.Elements {
		m = press(m, "j")
	}
	if m.Cursor != len(m.Elements)-1 {
		t.Errorf("cursor = %d, want %d", m.Cursor, len(m.Elements)-1)
	}
	if m.Cursor >= m.Offset+m.Height || m.Cursor < m.Offset {
		t.Errorf("cursor %d outside window [%d, %d)", m.Cursor, m.Offset, m.Offset+m.Height)
	}
}

func TestInspectAnimation(t *testing.T) {
	m := inspectModel(t)
	if m.Init() == nil {
		t.Fatal("entrance animation should schedule a tick")
	}
	if !m.timeline.Active() {
		t.Fatal("timeline should be running")
	}

	end := time.Unix(0, 0).Add(time.Minute)
	next, cmd := m.Update(tickMsg(end))
	m = next.(InspectModel)
	if cmd != nil || m.timeline.Active() {
		t.Error("all entrance tasks should finish by the final tick")
	}
	for _, key := range m.Layout.ElementKeys() {
		if m.progress[key] != 1 {
			t.Errorf("progress[%s] = %v, want 1", key, m.progress[key])
		}
	}
}

func TestInspectWeightEases(t *testing.T) {
	m := inspectModel(t)
	m = press(m, "j")
	id := m.Elements[1].ID

	if got := m.weight(id); got != interact.DefaultIdleWeight {
		t.Errorf("weight at start = %v, want %v", got, interact.DefaultIdleWeight)
	}
	next, _ := m.Update(tickMsg(time.Unix(0, 0).Add(time.Second)))
	m = next.(InspectModel)
	if got := m.weight(id); got != interact.DefaultHoverWeight {
		t.Errorf("weight after animation = %v, want %v", got, interact.DefaultHoverWeight)
	}
}

func TestInspectView(t *testing.T) {
	m := press(inspectModel(t), "j")
	view := m.View()
	for _, want := range []string{"Inspect Layout", "Status distribution", "Monthly applications", "Element", "[2/"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInspectTickChainIsShared(t *testing.T) {
	m := inspectModel(t)

	next, first := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(InspectModel)
	if first == nil {
		t.Fatal("first hover should schedule a tick")
	}
	next, second := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(InspectModel)
	if second != nil {
		t.Error("a second tick chain was started while one is pending")
	}
	if m.Init() != nil {
		t.Error("replay should reuse the pending tick chain")
	}

	next, cmd := m.Update(tickMsg(time.Unix(0, 0).Add(time.Minute)))
	m = next.(InspectModel)
	if cmd != nil {
		t.Fatal("finished animations should end the chain")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown}); cmd == nil {
		t.Error("a new hover after the chain ended should tick again")
	}
}

func TestInspectReloadDropsRemovedElements(t *testing.T) {
	m := inspectModel(t)
	removed := interact.WedgeID("Rejected")
	idx := -1
	for i, e := range m.Elements {
		if e.ID == removed {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("no %s element", removed)
	}
	for range idx {
		m = press(m, "j")
	}
	if id, ok := m.ctrl.Hovered(); !ok || id != removed {
		t.Fatalf("hovered = %v %v, want %v", id, ok, removed)
	}
	if _, ok := m.timeline.Current(removed.String()); !ok {
		t.Fatal("hover animation should be running before reload")
	}

	agg, err := stats.Parse([]byte(`{
  "total": 23,
  "statusDistribution": {"Applied": 10, "Interviewing": 8, "Offered": 5},
  "offers": {"received": 5, "accepted": 2, "declined": 1}
}`), stats.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	cfg := chart.DefaultConfig()
	cfg.View = chart.ViewBoth
	m.Reload = func() (chart.LayoutResult, []donut.Datum, error) {
		return chart.Build(agg, cfg), nil, nil
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	if cmd == nil {
		t.Fatal("reload should return a command")
	}
	next, _ = next.(InspectModel).Update(cmd())
	m = next.(InspectModel)

	if _, ok := m.ctrl.Hovered(); ok {
		t.Error("hover on a removed element should go idle")
	}
	want := interact.Transition{ID: removed, From: interact.Hovered, To: interact.Idle}.String()
	idle := 0
	for _, h := range m.History {
		if h == want {
			idle++
		}
	}
	if idle != 1 || m.History[len(m.History)-1] != want {
		t.Errorf("history = %v, want one %q", m.History, want)
	}
	if _, ok := m.timeline.Current(removed.String()); ok {
		t.Error("animation for a removed element survived the reload")
	}
	if _, ok := m.progress[removed.String()]; ok {
		t.Error("progress for a removed element survived the reload")
	}
	for _, e := range m.Elements {
		if e.ID == removed {
			t.Error("removed element still listed")
		}
	}
	if m.Cursor >= len(m.Elements) {
		t.Errorf("cursor %d outside %d elements", m.Cursor, len(m.Elements))
	}
}

func TestInspectReloadError(t *testing.T) {
	m := inspectModel(t)
	next, _ := m.Update(reloadMsg{err: errors.New("stats.json: no such file")})
	m = next.(InspectModel)
	if !strings.Contains(m.View(), "reload failed") {
		t.Error("view should report the reload error")
	}
}
