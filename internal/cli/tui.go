package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/interact"
	"github.com/matzehuels/applyviz/pkg/geom"
	"github.com/matzehuels/applyviz/pkg/render/anim"
	"github.com/matzehuels/applyviz/pkg/render/term"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	frameInterval = 40 * time.Millisecond
	entranceStep  = 30 * time.Millisecond
	historySize   = 4
)

// hoverSpec eases an element between its idle and hovered weight.
var hoverSpec = anim.Spec{Duration: 150 * time.Millisecond, Easing: anim.EaseOut}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ticker tracks whether a tick chain is in flight. It is shared between
// model copies so Init and Update agree.
type ticker struct{ pending bool }

// Reloader recomputes the layout from the current input data.
type Reloader func() (chart.LayoutResult, []donut.Datum, error)

type reloadMsg struct {
	layout chart.LayoutResult
	months []donut.Datum
	err    error
}

// =============================================================================
// InspectModel - Interactive chart inspection
// =============================================================================

// InspectModel is the bubbletea model for keyboard-driven hovering over a
// computed layout. The cursor plays the pointer: moving it enters the
// element under the cursor and leaves the previous one.
type InspectModel struct {
	Layout   chart.LayoutResult
	Months   []donut.Datum
	Elements []interact.Element
	Cursor   int
	Height   int
	Offset   int
	Width    int
	History  []string
	Reload   Reloader
	Err      error

	ctrl     *interact.Controller
	timeline *anim.Timeline
	ticker   *ticker
	progress map[string]float64
	now      func() time.Time
}

// NewInspectModel creates an inspect model over res.
func NewInspectModel(res chart.LayoutResult, months []donut.Datum) InspectModel {
	elems := res.Elements()
	return InspectModel{
		Layout:   res,
		Months:   months,
		Elements: elems,
		Height:   10,
		Width:    80,
		ctrl:     interact.NewController(elems, interact.WithBounds(res.Width, res.Height)),
		timeline: anim.NewTimeline(),
		ticker:   &ticker{},
		progress: map[string]float64{},
		now:      time.Now,
	}
}

// Init starts the staggered entrance animation.
func (m InspectModel) Init() tea.Cmd {
	now := m.now()
	for i, key := range m.Layout.ElementKeys() {
		m.timeline.Start(key, m.Layout.Animation.Stagger(i, entranceStep), now)
	}
	return m.schedule()
}

// schedule starts a tick chain unless one is already pending.
func (m InspectModel) schedule() tea.Cmd {
	if m.ticker.pending || !m.timeline.Active() {
		return nil
	}
	m.ticker.pending = true
	return tick()
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
			return m.hover()
		case "down", "j":
			if m.Cursor < len(m.Elements)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
			return m.hover()
		case "enter", " ":
			return m.hover()
		case "esc":
			if id, ok := m.ctrl.Hovered(); ok {
				return m.record(m.ctrl.Leave(id))
			}
		case "r":
			return m, m.Init()
		case "R":
			if m.Reload == nil {
				return m, nil
			}
			reload := m.Reload
			return m, func() tea.Msg {
				res, months, err := reload()
				return reloadMsg{layout: res, months: months, err: err}
			}
		}
	case reloadMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		return m.replace(msg.layout, msg.months)
	case tickMsg:
		for id, p := range m.timeline.Frame(time.Time(msg)) {
			m.progress[id] = p
		}
		if m.timeline.Active() {
			return m, tick()
		}
		m.ticker.pending = false
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height / 3
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// hover enters the element under the cursor.
func (m InspectModel) hover() (tea.Model, tea.Cmd) {
	if len(m.Elements) == 0 {
		return m, nil
	}
	center := geom.Point{X: m.Layout.Width / 2, Y: m.Layout.Height / 2}
	return m.record(m.ctrl.Enter(m.Elements[m.Cursor].ID, center))
}

// replace swaps in a freshly computed layout. Animations of elements that
// no longer exist stop at once and a hover on a removed element goes idle.
func (m InspectModel) replace(res chart.LayoutResult, months []donut.Datum) (tea.Model, tea.Cmd) {
	m.Layout, m.Months, m.Err = res, months, nil
	m.Elements = res.Elements()
	for _, id := range m.timeline.Retain(res.ElementKeys()) {
		delete(m.progress, id)
	}
	m.note(m.ctrl.Reset(m.Elements))

	m.Cursor = max(0, min(m.Cursor, len(m.Elements)-1))
	m.Offset = max(0, min(m.Offset, m.Cursor))
	return m, m.schedule()
}

// record restarts the hover animation of every element that changed state.
func (m InspectModel) record(ts []interact.Transition) (tea.Model, tea.Cmd) {
	if len(ts) == 0 {
		return m, nil
	}
	now := m.now()
	for _, t := range ts {
		m.timeline.Start(t.ID.String(), hoverSpec, now)
		m.progress[t.ID.String()] = 0
	}
	m.note(ts)
	return m, m.schedule()
}

// note appends transitions to the bounded history.
func (m *InspectModel) note(ts []interact.Transition) {
	for _, t := range ts {
		m.History = append(m.History, t.String())
	}
	if n := len(m.History); n > historySize {
		m.History = m.History[n-historySize:]
	}
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Layout"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.Layout.Summary()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ hover  esc leave  r replay  R reload  q quit"))
	b.WriteString("\n\n")
	if m.Err != nil {
		b.WriteString(StyleWarning.Render("reload failed: " + m.Err.Error()))
		b.WriteString("\n\n")
	}

	opts := term.Options{Width: m.Width}
	if id, ok := m.ctrl.Hovered(); ok {
		opts.Highlight = &id
	}
	b.WriteString(term.Render(m.Layout, opts))
	if len(m.Months) > 0 {
		b.WriteString("\n")
		b.WriteString(term.Bars("Monthly applications", m.Months, term.Options{Width: m.Width}))
	}
	b.WriteString("\n")

	if len(m.Elements) == 0 {
		b.WriteString(listDimStyle.Render("No interactive elements"))
		return b.String()
	}
	b.WriteString(m.table())
	b.WriteString("\n")

	if tip := m.ctrl.Tooltip(); tip.Visible {
		b.WriteString(StyleHighlight.Render(tip.Text))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  @ %.0f,%.0f", tip.X, tip.Y)))
		b.WriteString("\n")
	}
	for _, h := range m.History {
		b.WriteString(listDimStyle.Render("  " + h))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Elements))))

	return b.String()
}

func (m InspectModel) table() string {
	end := m.Offset + m.Height
	if end > len(m.Elements) {
		end = len(m.Elements)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Elements[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		key := e.ID.String()
		rows = append(rows, []string{
			cursor,
			key,
			formatNumber(e.Value),
			fmt.Sprintf("%.1f%%", e.Percent),
			m.ctrl.State(e.ID).String(),
			fmt.Sprintf("%.2f", m.weight(e.ID)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Element", "Value", "Share", "State", "Weight").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Elements) {
				return lipgloss.NewStyle()
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if m.ctrl.State(m.Elements[idx].ID) == interact.Hovered {
				return listNormalStyle.Bold(true)
			}
			if col >= 4 {
				return listDimStyle
			}
			return listNormalStyle
		})
	return t.Render()
}

// weight eases the displayed weight toward the controller's target
// while the element's hover animation runs.
func (m InspectModel) weight(id interact.ElementID) float64 {
	target := m.ctrl.Weight(id)
	p, ok := m.progress[id.String()]
	if !ok || p >= 1 {
		return target
	}
	from := interact.DefaultHoverWeight
	if m.ctrl.State(id) == interact.Hovered {
		from = interact.DefaultIdleWeight
	}
	return from + (target-from)*p
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
