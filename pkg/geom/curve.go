package geom

import (
	"fmt"
	"strings"
)

// Bezier is a cubic Bézier segment.
type Bezier struct {
	P0, P1, P2, P3 Point
}

// At evaluates the curve at t in [0, 1].
func (b Bezier) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	c1 := 3 * u * u * t
	c2 := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*b.P0.X + c1*b.P1.X + c2*b.P2.X + d*b.P3.X,
		Y: a*b.P0.Y + c1*b.P1.Y + c2*b.P2.Y + d*b.P3.Y,
	}
}

// Reverse returns the same curve traversed from P3 to P0.
func (b Bezier) Reverse() Bezier { return Bezier{b.P3, b.P2, b.P1, b.P0} }

// HorizontalLink returns a cubic curve from src to dst whose control points
// share the horizontal midpoint, so the curve leaves and enters horizontally.
func HorizontalLink(src, dst Point) Bezier {
	mx := (src.X + dst.X) / 2
	return Bezier{
		P0: src,
		P1: Point{mx, src.Y},
		P2: Point{mx, dst.Y},
		P3: dst,
	}
}

// Ribbon is a closed band of constant vertical thickness between two anchors.
// Top runs from source to target; Bottom runs back from target to source.
type Ribbon struct {
	Top    Bezier
	Bottom Bezier
}

// CurvePath builds the ribbon connecting source to target with the given
// stroke width. The two bounding curves are offset by half the width above
// and below the centerline and use horizontally biased control points so
// flows read left to right. Negative widths are treated as zero.
func CurvePath(source, target Point, strokeWidth float64) Ribbon {
	h := max(0, strokeWidth) / 2
	up := Point{0, -h}
	down := Point{0, h}
	top := HorizontalLink(source.Add(up), target.Add(up))
	bottom := HorizontalLink(target.Add(down), source.Add(down))
	return Ribbon{Top: top, Bottom: bottom}
}

// Start returns the centerline anchor on the source side.
func (r Ribbon) Start() Point { return LerpPoint(r.Top.P0, r.Bottom.P3, 0.5) }

// End returns the centerline anchor on the target side.
func (r Ribbon) End() Point { return LerpPoint(r.Top.P3, r.Bottom.P0, 0.5) }

// Width returns the ribbon thickness measured at the source anchor.
func (r Ribbon) Width() float64 { return r.Bottom.P3.Y - r.Top.P0.Y }

// Path returns closed SVG path data for the ribbon.
func (r Ribbon) Path() string {
	var b strings.Builder
	t, bt := r.Top, r.Bottom
	fmt.Fprintf(&b, "M%s C%s %s %s", fp(t.P0), fp(t.P1), fp(t.P2), fp(t.P3))
	fmt.Fprintf(&b, " L%s C%s %s %s Z", fp(bt.P0), fp(bt.P1), fp(bt.P2), fp(bt.P3))
	return b.String()
}

// Polyline returns SVG points attribute data for a sequence of points.
func Polyline(pts ...Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fp(p)
	}
	return strings.Join(parts, " ")
}
