// Package geom provides the pure geometry used by the chart layout engines.
//
// Angles follow the chart convention: 0 points to 12 o'clock and angles grow
// clockwise. Coordinates follow SVG, so y grows downward. Under that
// convention a point at angle a and radius r sits at (r·sin a, −r·cos a).
//
// # Primitives
//
//   - [Point]: a 2D coordinate with small vector helpers.
//   - [ArcPath]: SVG path data for an annular wedge.
//   - [Bezier]: a cubic Bézier segment.
//   - [CurvePath]: a closed ribbon between two anchors, used for flow links.
//   - [LinearScale]: a linear domain→range mapping with optional clamping.
//
// Nothing in this package holds state; every function is safe for concurrent use.
package geom
