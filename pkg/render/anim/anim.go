// Package anim describes chart animations as declarative per-element
// parameters and tracks restartable timed tasks.
//
// A [Spec] is plain data handed to a render adapter. The SVG adapter turns it
// into element-local animate tags; interactive adapters drive a [Timeline]
// from their own clock. Nothing here is global: each chart owns its
// timeline.
package anim

import (
	"math"
	"sort"
	"time"
)

// Easing names a timing function.
type Easing string

const (
	Linear    Easing = "linear"
	EaseIn    Easing = "ease-in"
	EaseOut   Easing = "ease-out"
	EaseInOut Easing = "ease-in-out"
)

// Apply maps linear progress t in [0, 1] through the easing curve.
func (e Easing) Apply(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	switch e {
	case EaseIn:
		return t * t * t
	case EaseOut:
		u := 1 - t
		return 1 - u*u*u
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}

// KeySplines returns the SMIL cubic-bezier control points for the easing,
// or "" for linear.
func (e Easing) KeySplines() string {
	switch e {
	case EaseIn:
		return "0.42 0 1 1"
	case EaseOut:
		return "0 0 0.58 1"
	case EaseInOut:
		return "0.42 0 0.58 1"
	default:
		return ""
	}
}

// Spec is one element's animation parameters. A zero Duration disables it.
type Spec struct {
	Duration time.Duration `json:"duration"`
	Delay    time.Duration `json:"delay"`
	Easing   Easing        `json:"easing"`
	Loop     bool          `json:"loop"`
}

// Enabled reports whether the spec animates anything.
func (s Spec) Enabled() bool { return s.Duration > 0 }

// Progress returns the eased progress elapsed after the task started.
// Looping specs wrap; others saturate at 1.
func (s Spec) Progress(elapsed time.Duration) float64 {
	if !s.Enabled() {
		return 1
	}
	elapsed -= s.Delay
	if elapsed <= 0 {
		return 0
	}
	if s.Loop {
		elapsed %= s.Duration
	} else if elapsed >= s.Duration {
		return 1
	}
	return s.Easing.Apply(float64(elapsed) / float64(s.Duration))
}

// Done reports whether a non-looping spec has finished.
func (s Spec) Done(elapsed time.Duration) bool {
	if !s.Enabled() {
		return true
	}
	return !s.Loop && elapsed >= s.Delay+s.Duration
}

// Stagger returns a copy of s delayed by i steps of step.
func (s Spec) Stagger(i int, step time.Duration) Spec {
	s.Delay += time.Duration(i) * step
	return s
}

type task struct {
	spec    Spec
	started time.Time
	gen     uint64
}

// Timeline tracks one running task per element id. Starting a task for an
// id supersedes the previous one. It is not safe for concurrent use.
type Timeline struct {
	tasks map[string]task
	gen   uint64
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{tasks: make(map[string]task)}
}

// Start begins spec for id at now, replacing any in-flight task for id.
// It returns a handle generation that changes on every start.
func (t *Timeline) Start(id string, spec Spec, now time.Time) uint64 {
	t.gen++
	if !spec.Enabled() {
		delete(t.tasks, id)
		return t.gen
	}
	t.tasks[id] = task{spec: spec, started: now, gen: t.gen}
	return t.gen
}

// Current returns the generation of the running task for id.
func (t *Timeline) Current(id string) (uint64, bool) {
	tk, ok := t.tasks[id]
	return tk.gen, ok
}

// Cancel stops the task for id.
func (t *Timeline) Cancel(id string) { delete(t.tasks, id) }

// Retain discards tasks for every id not in keep and returns the discarded
// ids in sorted order.
func (t *Timeline) Retain(keep []string) []string {
	set := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		set[id] = struct{}{}
	}
	var dropped []string
	for id := range t.tasks {
		if _, ok := set[id]; !ok {
			dropped = append(dropped, id)
			delete(t.tasks, id)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// Len returns the number of running tasks.
func (t *Timeline) Len() int { return len(t.tasks) }

// Frame returns the progress of every running task at now. Finished
// non-looping tasks report 1 once and are removed.
func (t *Timeline) Frame(now time.Time) map[string]float64 {
	out := make(map[string]float64, len(t.tasks))
	for id, tk := range t.tasks {
		elapsed := now.Sub(tk.started)
		out[id] = tk.spec.Progress(elapsed)
		if tk.spec.Done(elapsed) {
			delete(t.tasks, id)
		}
	}
	return out
}

// Active reports whether any task is still running.
func (t *Timeline) Active() bool { return len(t.tasks) > 0 }
