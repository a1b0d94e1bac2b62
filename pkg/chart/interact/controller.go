package interact

import "github.com/matzehuels/applyviz/pkg/geom"

const (
	DefaultIdleWeight  = 0.8
	DefaultHoverWeight = 1.0
)

// Option configures a [Controller].
type Option func(*Controller)

// WithTooltipOffset shifts the tooltip relative to the pointer.
func WithTooltipOffset(dx, dy float64) Option {
	return func(c *Controller) { c.offset = geom.Point{X: dx, Y: dy} }
}

// WithBounds keeps the tooltip anchor inside a width×height frame.
func WithBounds(width, height float64) Option {
	return func(c *Controller) { c.bounds = geom.Point{X: width, Y: height} }
}

// WithWeights sets the visual weight of idle and hovered elements.
func WithWeights(idle, hovered float64) Option {
	return func(c *Controller) { c.idleWeight, c.hoverWeight = idle, hovered }
}

// WithObserver registers fn to receive every transition as it happens.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller is the hover state machine of one chart. It is not safe for
// concurrent use; each chart instance owns its own controller.
type Controller struct {
	elements map[ElementID]Element

	hovered ElementID
	active  bool
	tooltip Tooltip

	offset      geom.Point
	bounds      geom.Point
	idleWeight  float64
	hoverWeight float64
	observer    func(Transition)
}

// NewController returns a controller over the given elements.
func NewController(elements []Element, opts ...Option) *Controller {
	c := &Controller{
		offset:      geom.Point{X: 12, Y: 12},
		idleWeight:  DefaultIdleWeight,
		hoverWeight: DefaultHoverWeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.load(elements)
	return c
}

func (c *Controller) load(elements []Element) {
	c.elements = make(map[ElementID]Element, len(elements))
	for _, e := range elements {
		c.elements[e.ID.Target()] = e
	}
}

// Element looks up an element by id. Legend ids resolve to their wedge.
func (c *Controller) Element(id ElementID) (Element, bool) {
	e, ok := c.elements[id.Target()]
	return e, ok
}

// Enter handles the pointer entering id at p. Any other hovered element
// is released first. Unknown ids release the current hover and do nothing
// else.
func (c *Controller) Enter(id ElementID, p geom.Point) []Transition {
	id = id.Target()
	if c.active && c.hovered == id {
		c.place(p)
		return nil
	}
	var out []Transition
	if c.active {
		out = append(out, c.release())
	}
	e, ok := c.elements[id]
	if !ok {
		return c.emit(out)
	}
	c.hovered, c.active = id, true
	c.tooltip = Tooltip{Visible: true, Text: TooltipText(e), For: id}
	c.place(p)
	out = append(out, Transition{ID: id, From: Idle, To: Hovered})
	return c.emit(out)
}

// Move repositions the tooltip while an element is hovered. It reports
// whether the tooltip is visible.
func (c *Controller) Move(p geom.Point) (Tooltip, bool) {
	if !c.active {
		return Tooltip{}, false
	}
	c.place(p)
	return c.tooltip, true
}

// Leave handles the pointer leaving id. Leaves for an element that is not
// hovered are stale and ignored.
func (c *Controller) Leave(id ElementID) []Transition {
	id = id.Target()
	if !c.active || c.hovered != id {
		return nil
	}
	return c.emit([]Transition{c.release()})
}

// Reset replaces the element set after a relayout. If the hovered element
// no longer exists its Idle transition is returned. A surviving hovered
// element keeps its hover with refreshed tooltip text.
func (c *Controller) Reset(elements []Element) []Transition {
	c.load(elements)
	if !c.active {
		return nil
	}
	e, ok := c.elements[c.hovered]
	if !ok {
		return c.emit([]Transition{c.release()})
	}
	c.tooltip.Text = TooltipText(e)
	return nil
}

// Hovered returns the hovered element, if any.
func (c *Controller) Hovered() (ElementID, bool) { return c.hovered, c.active }

// State returns the current state of id.
func (c *Controller) State(id ElementID) State {
	if c.active && c.hovered == id.Target() {
		return Hovered
	}
	return Idle
}

// Weight returns the visual weight (opacity multiplier) for id.
func (c *Controller) Weight(id ElementID) float64 {
	if c.State(id) == Hovered {
		return c.hoverWeight
	}
	return c.idleWeight
}

// Tooltip returns the current tooltip.
func (c *Controller) Tooltip() Tooltip { return c.tooltip }

func (c *Controller) release() Transition {
	t := Transition{ID: c.hovered, From: Hovered, To: Idle}
	c.hovered, c.active = ElementID{}, false
	c.tooltip = Tooltip{}
	return t
}

func (c *Controller) place(p geom.Point) {
	pos := p.Add(c.offset)
	if c.bounds.X > 0 {
		pos.X = geom.Clamp(pos.X, 0, c.bounds.X)
	}
	if c.bounds.Y > 0 {
		pos.Y = geom.Clamp(pos.Y, 0, c.bounds.Y)
	}
	c.tooltip.X, c.tooltip.Y = pos.X, pos.Y
}

func (c *Controller) emit(ts []Transition) []Transition {
	if c.observer != nil {
		for _, t := range ts {
			c.observer(t)
		}
	}
	return ts
}
