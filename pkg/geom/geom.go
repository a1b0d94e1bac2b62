package geom

import "math"

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// Epsilon is the tolerance used for angle and coordinate comparisons.
const Epsilon = 1e-9

// Point is a 2D coordinate in user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale multiplies both components by k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Polar returns the point at angle (radians, clockwise from 12 o'clock) and
// radius around the origin.
func Polar(angle, radius float64) Point {
	return Point{X: radius * math.Sin(angle), Y: -radius * math.Cos(angle)}
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// LerpPoint interpolates between two points.
func LerpPoint(a, b Point, t float64) Point {
	return Point{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Clamp restricts v to [lo, hi]. NaN is mapped to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle maps a to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	return a
}

// LinearScale maps a numeric domain onto a numeric range.
type LinearScale struct {
	D0, D1 float64 // domain
	R0, R1 float64 // range
	Clamp  bool    // restrict output to the range
}

// At maps v from the domain onto the range. A degenerate domain maps every
// input to R0.
func (s LinearScale) At(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	out := s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
	if s.Clamp {
		lo, hi := min(s.R0, s.R1), max(s.R0, s.R1)
		out = Clamp(out, lo, hi)
	}
	return out
}
