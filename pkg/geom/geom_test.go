package geom

import (
	"math"
	"strings"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPolar(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Point
	}{
		{"twelve o'clock", 0, Point{0, -10}},
		{"three o'clock", math.Pi / 2, Point{10, 0}},
		{"six o'clock", math.Pi, Point{0, 10}},
		{"nine o'clock", 3 * math.Pi / 2, Point{-10, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polar(tt.angle, 10)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Polar(%v, 10) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{math.NaN(), 2, 10, 2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(-math.Pi / 2); !near(got, 3*math.Pi/2) {
		t.Errorf("NormalizeAngle(-π/2) = %v", got)
	}
	if got := NormalizeAngle(FullTurn + 1); !near(got, 1) {
		t.Errorf("NormalizeAngle(2π+1) = %v", got)
	}
}

func TestLinearScale(t *testing.T) {
	s := LinearScale{D0: 0, D1: 100, R0: 2, R1: 30, Clamp: true}
	if got := s.At(50); !near(got, 16) {
		t.Errorf("At(50) = %v, want 16", got)
	}
	if got := s.At(500); got != 30 {
		t.Errorf("At(500) = %v, want 30 (clamped)", got)
	}
	if got := s.At(-5); got != 2 {
		t.Errorf("At(-5) = %v, want 2 (clamped)", got)
	}
	degenerate := LinearScale{D0: 1, D1: 1, R0: 7, R1: 9}
	if got := degenerate.At(3); got != 7 {
		t.Errorf("degenerate At(3) = %v, want 7", got)
	}
}

func TestArcPath(t *testing.T) {
	t.Run("empty span", func(t *testing.T) {
		if got := ArcPath(10, 20, 1, 1); got != "" {
			t.Errorf("ArcPath() = %q, want empty", got)
		}
	})
	t.Run("donut wedge", func(t *testing.T) {
		got := ArcPath(50, 100, 0, math.Pi/2)
		if !strings.HasPrefix(got, "M0.000,-100.000 A100.000,100.000 0 0 1 100.000,0.000") {
			t.Errorf("unexpected outer arc: %q", got)
		}
		if !strings.Contains(got, "L50.000,0.000 A50.000,50.000 0 0 0 0.000,-50.000") {
			t.Errorf("unexpected inner arc: %q", got)
		}
		if !strings.HasSuffix(got, "Z") {
			t.Errorf("path not closed: %q", got)
		}
	})
	t.Run("large arc flag", func(t *testing.T) {
		got := ArcPath(0, 100, 0, 3*math.Pi/2)
		if !strings.Contains(got, " 0 1 1 ") {
			t.Errorf("expected large-arc flag: %q", got)
		}
		if !strings.Contains(got, "L0,0") {
			t.Errorf("pie slice should return to center: %q", got)
		}
	})
	t.Run("full ring", func(t *testing.T) {
		got := ArcPath(50, 100, 0, FullTurn)
		if strings.Count(got, "Z") != 2 {
			t.Errorf("full ring should have two closed subpaths: %q", got)
		}
	})
}

func TestCentroid(t *testing.T) {
	c := Centroid(50, 100, 0, math.Pi)
	if !near(c.X, 75) || !near(c.Y, 0) {
		t.Errorf("Centroid() = %v, want {75 0}", c)
	}
}

func TestCurvePath(t *testing.T) {
	src, dst := Point{10, 100}, Point{210, 40}
	r := CurvePath(src, dst, 20)

	if got := r.Width(); !near(got, 20) {
		t.Errorf("Width() = %v, want 20", got)
	}
	if s := r.Start(); !near(s.X, src.X) || !near(s.Y, src.Y) {
		t.Errorf("Start() = %v, want %v", s, src)
	}
	if e := r.End(); !near(e.X, dst.X) || !near(e.Y, dst.Y) {
		t.Errorf("End() = %v, want %v", e, dst)
	}
	if r.Top.P0.Y != 90 || r.Bottom.P3.Y != 110 {
		t.Errorf("source edges = %v/%v, want 90/110", r.Top.P0.Y, r.Bottom.P3.Y)
	}
	if r.Top.P3.Y != 30 || r.Bottom.P0.Y != 50 {
		t.Errorf("target edges = %v/%v, want 30/50", r.Top.P3.Y, r.Bottom.P0.Y)
	}
	for _, c := range []Point{r.Top.P1, r.Top.P2, r.Bottom.P1, r.Bottom.P2} {
		if c.X != 110 {
			t.Errorf("control point x = %v, want horizontal midpoint 110", c.X)
		}
	}
	if p := r.Path(); !strings.HasPrefix(p, "M10.000,90.000 C") || !strings.HasSuffix(p, "Z") {
		t.Errorf("Path() = %q", p)
	}
}

func TestCurvePathNegativeWidth(t *testing.T) {
	r := CurvePath(Point{0, 0}, Point{100, 0}, -4)
	if r.Width() != 0 {
		t.Errorf("Width() = %v, want 0", r.Width())
	}
}

func TestBezierEndpoints(t *testing.T) {
	b := HorizontalLink(Point{0, 0}, Point{100, 50})
	if got := b.At(0); got != b.P0 {
		t.Errorf("At(0) = %v, want %v", got, b.P0)
	}
	if got := b.At(1); got != b.P3 {
		t.Errorf("At(1) = %v, want %v", got, b.P3)
	}
	mid := b.At(0.5)
	if !near(mid.X, 50) || !near(mid.Y, 25) {
		t.Errorf("At(0.5) = %v, want {50 25}", mid)
	}
	if r := b.Reverse(); r.P0 != b.P3 || r.P3 != b.P0 {
		t.Error("Reverse() did not swap endpoints")
	}
}

func TestPolyline(t *testing.T) {
	got := Polyline(Point{1, 2}, Point{3.5, -4})
	if got != "1.000,2.000 3.500,-4.000" {
		t.Errorf("Polyline() = %q", got)
	}
}
