package flow

import (
	"math"

	"github.com/matzehuels/applyviz/pkg/geom"
)

// Funnel is the aggregate summary the flow diagram is derived from.
type Funnel struct {
	Total        float64 `json:"total"`
	Applied      float64 `json:"applied"`
	Interviewing float64 `json:"interviewing"`
	Offered      float64 `json:"offered"`
	Accepted     float64 `json:"accepted"`
	Declined     float64 `json:"declined"`
}

// Values holds one derived value per stage.
type Values [numStages]float64

// Of returns the value of stage s.
func (v Values) Of(s Stage) float64 { return v[s] }

// Derive applies the stage derivation rules to a funnel summary.
func Derive(f Funnel) Values {
	var v Values
	v[StageApplications] = f.Total
	v[StageRejected] = math.Max(1, f.Total-f.Applied-f.Interviewing-f.Offered)
	v[StagePending] = f.Applied
	v[StageInterviewing] = f.Interviewing
	v[StageOffers] = f.Offered
	v[StageAccepted] = f.Accepted
	v[StageDeclined] = f.Declined
	v[StageAwaiting] = math.Max(0, f.Offered-f.Accepted-f.Declined)
	return v
}

// StrokeScale maps link values onto stroke widths.
type StrokeScale struct {
	MinWidth float64 `json:"min_width" toml:"min_width"`
	MaxWidth float64 `json:"max_width" toml:"max_width"`
	// CapValue is the value at and beyond which the width stops growing.
	CapValue float64 `json:"cap_value" toml:"cap_value"`
}

// DefaultStrokeScale returns the standard link width scale.
func DefaultStrokeScale() StrokeScale {
	return StrokeScale{MinWidth: 2, MaxWidth: 30, CapValue: 100}
}

// Width returns clamp(min + value/cap·(max−min), min, max).
func (s StrokeScale) Width(value float64) float64 {
	lo, hi := s.MinWidth, max(s.MinWidth, s.MaxWidth)
	if s.CapValue <= 0 {
		if value > 0 {
			return hi
		}
		return lo
	}
	return geom.Clamp(lo+(value/s.CapValue)*(hi-lo), lo, hi)
}

// Node is a laid-out stage box. X, Y is the top-left corner.
type Node struct {
	ID     string  `json:"id"`
	Stage  Stage   `json:"stage"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

// CenterY returns the vertical middle of the box.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// Right returns the x coordinate of the right edge.
func (n Node) Right() float64 { return n.X + n.Width }

// Link is a laid-out flow between two nodes.
type Link struct {
	Kind          LinkKind    `json:"kind"`
	SourceID      string      `json:"source_id"`
	TargetID      string      `json:"target_id"`
	Value         float64     `json:"value"`
	Percent       float64     `json:"percent"` // share of the source node value
	StrokeWidth   float64     `json:"stroke_width"`
	SourceX       float64     `json:"source_x"`
	SourceAnchorY float64     `json:"source_anchor_y"`
	TargetX       float64     `json:"target_x"`
	TargetAnchorY float64     `json:"target_anchor_y"`
	Ribbon        geom.Ribbon `json:"ribbon"`
}

// Key returns the "source-target" identity of the link.
func (l Link) Key() string { return l.SourceID + "-" + l.TargetID }

// Layout is the flow diagram output. It holds no references to drawing APIs.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Nodes  []Node  `json:"nodes"`
	Links  []Link  `json:"links"`
}

// Node returns the node with the given id.
func (l Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Link returns the link of the given kind.
func (l Layout) Link(kind LinkKind) (Link, bool) {
	for _, k := range l.Links {
		if k.Kind == kind {
			return k, true
		}
	}
	return Link{}, false
}

// Empty reports whether there is nothing to draw.
func (l Layout) Empty() bool { return len(l.Nodes) == 0 }

// Options controls [Compute].
type Options struct {
	Width, Height float64
	NodeWidth     float64
	MinNodeHeight float64
	// MaxNodeHeight is a fraction of the frame height given to the largest node.
	MaxNodeHeight float64
	Stroke        StrokeScale
	// Colors overrides the default color of a stage.
	Colors map[Stage]string
}

// DefaultOptions returns standard options for a frame of the given size.
func DefaultOptions(width, height float64) Options {
	return Options{
		Width:         width,
		Height:        height,
		NodeWidth:     18,
		MinNodeHeight: 12,
		MaxNodeHeight: 0.3,
		Stroke:        DefaultStrokeScale(),
	}
}

// DefaultColors assigns each stage its standard color.
var DefaultColors = [numStages]string{
	StageApplications: "#4f46e5",
	StageRejected:     "#ef4444",
	StagePending:      "#f59e0b",
	StageInterviewing: "#3b82f6",
	StageOffers:       "#10b981",
	StageAccepted:     "#059669",
	StageDeclined:     "#9ca3af",
	StageAwaiting:     "#a78bfa",
}

// Compute derives stage values from f and lays out nodes and links.
func Compute(f Funnel, opts Options) Layout {
	return LayoutValues(Derive(f), opts)
}

// LayoutValues lays out nodes and links for already derived stage values.
func LayoutValues(v Values, opts Options) Layout {
	out := Layout{Width: opts.Width, Height: opts.Height}

	peak := 0.0
	for _, val := range v {
		peak = max(peak, val)
	}
	heightScale := geom.LinearScale{
		D0: 0, D1: peak,
		R0: opts.MinNodeHeight, R1: max(opts.MinNodeHeight, opts.MaxNodeHeight*opts.Height),
		Clamp: true,
	}

	index := make(map[Stage]int, numStages)
	for _, s := range Stages() {
		val := v[s]
		if !(val > 0) {
			continue
		}
		index[s] = len(out.Nodes)
		out.Nodes = append(out.Nodes, placeNode(s, val, heightScale.At(val), opts))
	}

	type present struct {
		e   edge
		val float64
	}
	var edges []present
	outDeg := map[Stage]int{}
	inDeg := map[Stage]int{}
	for _, e := range topology {
		_, okS := index[e.from]
		_, okT := index[e.to]
		val := v[e.to]
		if !okS || !okT || !(val > 0) {
			continue
		}
		edges = append(edges, present{e, val})
		outDeg[e.from]++
		inDeg[e.to]++
	}

	outSeen := map[Stage]int{}
	inSeen := map[Stage]int{}
	for _, p := range edges {
		src := out.Nodes[index[p.e.from]]
		dst := out.Nodes[index[p.e.to]]
		sy := anchorY(src, outSeen[p.e.from], outDeg[p.e.from])
		ty := anchorY(dst, inSeen[p.e.to], inDeg[p.e.to])
		outSeen[p.e.from]++
		inSeen[p.e.to]++

		w := opts.Stroke.Width(p.val)
		link := Link{
			Kind:          p.e.kind,
			SourceID:      src.ID,
			TargetID:      dst.ID,
			Value:         p.val,
			Percent:       p.val / src.Value * 100,
			StrokeWidth:   w,
			SourceX:       src.Right(),
			SourceAnchorY: sy,
			TargetX:       dst.X,
			TargetAnchorY: ty,
		}
		link.Ribbon = geom.CurvePath(geom.Point{X: link.SourceX, Y: sy}, geom.Point{X: link.TargetX, Y: ty}, w)
		out.Links = append(out.Links, link)
	}
	return out
}

func placeNode(s Stage, val, h float64, opts Options) Node {
	pos := stagePositions[s]
	w := opts.NodeWidth
	h = min(h, opts.Height)
	x := geom.Clamp(pos.fx*opts.Width, 0, max(0, opts.Width-w))
	y := geom.Clamp(pos.fy*opts.Height-h/2, 0, max(0, opts.Height-h))

	color := DefaultColors[s]
	if c, ok := opts.Colors[s]; ok && c != "" {
		color = c
	}
	return Node{
		ID:     s.String(),
		Stage:  s,
		Label:  s.Label(),
		Value:  val,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Color:  color,
	}
}

// anchorY spreads k link anchors evenly over the node height.
func anchorY(n Node, i, k int) float64 {
	if k <= 0 {
		return n.CenterY()
	}
	return n.Y + n.Height*(float64(i)+0.5)/float64(k)
}

// Dangling returns links whose endpoints are missing from the node set.
// A correct layout always returns none.
func (l Layout) Dangling() []Link {
	ids := make(map[string]struct{}, len(l.Nodes))
	for _, n := range l.Nodes {
		ids[n.ID] = struct{}{}
	}
	var out []Link
	for _, k := range l.Links {
		_, okS := ids[k.SourceID]
		_, okT := ids[k.TargetID]
		if !okS || !okT {
			out = append(out, k)
		}
	}
	return out
}
