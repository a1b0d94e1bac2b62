package geom

import (
	"fmt"
	"math"
	"strings"
)

// ArcPath returns SVG path data for an annular wedge centered on the origin
// spanning [start, end]. An inner radius of 0 produces a pie slice. Spans of a
// full turn are drawn as two half arcs because a single SVG arc cannot close
// on itself.
func ArcPath(inner, outer, start, end float64) string {
	if end < start {
		start, end = end, start
	}
	span := end - start
	if span <= Epsilon || outer <= 0 {
		return ""
	}
	if span >= FullTurn-1e-6 {
		return ringPath(inner, outer, start)
	}

	large := 0
	if span > math.Pi {
		large = 1
	}

	o0, o1 := Polar(start, outer), Polar(end, outer)
	var b strings.Builder
	fmt.Fprintf(&b, "M%s A%s,%s 0 %d 1 %s", fp(o0), f(outer), f(outer), large, fp(o1))
	if inner > 0 {
		i1, i0 := Polar(end, inner), Polar(start, inner)
		fmt.Fprintf(&b, " L%s A%s,%s 0 %d 0 %s", fp(i1), f(inner), f(inner), large, fp(i0))
	} else {
		b.WriteString(" L0,0")
	}
	b.WriteString(" Z")
	return b.String()
}

func ringPath(inner, outer, start float64) string {
	mid := start + math.Pi
	o0, om := Polar(start, outer), Polar(mid, outer)
	var b strings.Builder
	fmt.Fprintf(&b, "M%s A%s,%s 0 1 1 %s A%s,%s 0 1 1 %s Z",
		fp(o0), f(outer), f(outer), fp(om), f(outer), f(outer), fp(o0))
	if inner > 0 {
		i0, im := Polar(start, inner), Polar(mid, inner)
		fmt.Fprintf(&b, " M%s A%s,%s 0 1 0 %s A%s,%s 0 1 0 %s Z",
			fp(i0), f(inner), f(inner), fp(im), f(inner), f(inner), fp(i0))
	}
	return b.String()
}

// Centroid returns the midpoint of an annular wedge, halfway between both
// radii at the wedge's middle angle.
func Centroid(inner, outer, start, end float64) Point {
	return Polar((start+end)/2, (inner+outer)/2)
}

func f(v float64) string {
	if math.Abs(v) < 5e-4 {
		v = 0
	}
	return fmt.Sprintf("%.3f", v)
}

func fp(p Point) string { return f(p.X) + "," + f(p.Y) }
