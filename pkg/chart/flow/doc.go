// Package flow lays out the application-journey flow diagram.
//
// The diagram has a fixed, small topology: every application ends up rejected,
// pending, interviewing, or holding an offer, and offers are accepted,
// declined, or still awaiting a decision. Because the topology is known,
// stages are instances of the [Stage] enum with predetermined positions
// expressed as fractions of the chart frame, and links are instances of the
// [LinkKind] enum. There is no automatic packing.
//
// # Derivation
//
// Stage values come from a [Funnel] summary. Most stages copy a count
// directly. Rejected is a residual:
//
//	rejected = max(1, total − applied − interviewing − offered)
//
// The floor of 1 avoids a zero or negative link. The residual assumes the
// three named statuses plus rejections cover every application. Other
// statuses would be counted as rejections.
//
// # Invariants
//
//   - A node exists only for a stage with a positive value.
//   - A link exists only when both endpoint nodes exist and its value is positive.
//     Links whose endpoints were filtered away are dropped, never drawn dangling.
//   - Link stroke widths come from a clamped linear [StrokeScale] and are
//     monotonically non-decreasing in value.
package flow
