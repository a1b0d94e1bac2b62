// Package interact tracks pointer hover over chart elements.
//
// A [Controller] holds one chart's hover state. Each element is either Idle
// or Hovered and at most one element is hovered at a time. Pointer events are
// fed in with [Controller.Enter], [Controller.Move], and [Controller.Leave];
// every call returns the state [Transition] values it caused, in order, so a
// render adapter can restyle exactly the elements that changed.
//
// Entering an element while another is hovered first returns the Idle
// transition for the old element, then the Hovered transition for the new
// one. A leave for an element that is not hovered is ignored.
//
// The controller knows nothing about layout math. It consumes element
// identities and the values needed for tooltip text, and computes tooltip
// text from a table keyed by [flow.LinkKind] with a generic fallback.
package interact
