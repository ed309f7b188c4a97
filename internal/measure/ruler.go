// Package measure implements the ruler tool: converting two pointer
// positions in percent-of-frame coordinates into a physical distance.
package measure

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"medview/pkg/geometry"
)

const (
	// pxPerPercent converts percent coordinates to pixels of the fixed
	// 512-pixel reference frame.
	pxPerPercent = 5.12

	// mmPerPixel is the assumed physical pixel spacing of the reference
	// frame. Both constants are mock-viewer simplifications with no
	// clinical meaning; real imagery would use metadata-derived spacing.
	mmPerPixel = 0.5

	// noiseThresholdMm rejects sub-threshold drags as accidental clicks.
	noiseThresholdMm = 2.0
)

// Measurement is one committed line measurement.
type Measurement struct {
	ID         string
	Start      geometry.Point2D // percent coordinates
	End        geometry.Point2D
	DistanceMm float64
}

// Label formats the measurement for display.
func (m Measurement) Label() string {
	return fmt.Sprintf("%.1f mm", m.DistanceMm)
}

// Distance converts a start/end pair of percent coordinates to millimetres
// against the fixed reference frame.
func Distance(start, end geometry.Point2D) float64 {
	dx := (end.X - start.X) * pxPerPercent
	dy := (end.Y - start.Y) * pxPerPercent
	return math.Sqrt(dx*dx+dy*dy) * mmPerPixel
}

// Area converts a polygon in percent coordinates to square millimetres
// against the same reference frame.
func Area(points []geometry.Point2D) float64 {
	mmPerPercent := pxPerPercent * mmPerPixel
	return geometry.PolygonArea(points) * mmPerPercent * mmPerPercent
}

// Ruler captures pointer interactions into a list of measurements. A draft
// begins on pointer-down, tracks pointer-move, and commits on pointer-up if
// the distance clears the noise threshold.
type Ruler struct {
	mu sync.Mutex

	measurements []Measurement

	drafting bool
	draft    Measurement

	// onChange fires after every commit, delete, or clear.
	onChange func()
}

// NewRuler creates an empty ruler.
func NewRuler() *Ruler {
	return &Ruler{}
}

// OnChange registers the listener notified when the measurement list changes.
func (r *Ruler) OnChange(fn func()) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Begin anchors a draft measurement at the given percent position.
func (r *Ruler) Begin(p geometry.Point2D) {
	r.mu.Lock()
	r.drafting = true
	r.draft = Measurement{Start: p, End: p}
	r.mu.Unlock()
}

// Update moves the draft's end point and recomputes the live distance.
// A no-op when no draft is in progress.
func (r *Ruler) Update(p geometry.Point2D) {
	r.mu.Lock()
	if r.drafting {
		r.draft.End = p
		r.draft.DistanceMm = Distance(r.draft.Start, p)
	}
	r.mu.Unlock()
}

// Commit finishes the draft. Drafts under the noise threshold are discarded
// and Commit returns false; otherwise the measurement is appended and
// returned.
func (r *Ruler) Commit() (Measurement, bool) {
	r.mu.Lock()
	if !r.drafting {
		r.mu.Unlock()
		return Measurement{}, false
	}
	r.drafting = false
	m := r.draft
	m.DistanceMm = Distance(m.Start, m.End)
	if m.DistanceMm < noiseThresholdMm {
		r.mu.Unlock()
		return Measurement{}, false
	}
	m.ID = uuid.NewString()
	r.measurements = append(r.measurements, m)
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
	return m, true
}

// Cancel discards an in-progress draft.
func (r *Ruler) Cancel() {
	r.mu.Lock()
	r.drafting = false
	r.mu.Unlock()
}

// Draft returns the in-progress measurement, if any.
func (r *Ruler) Draft() (Measurement, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft, r.drafting
}

// Measurements returns a copy of the committed measurements in order.
func (r *Ruler) Measurements() []Measurement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Measurement, len(r.measurements))
	copy(out, r.measurements)
	return out
}

// Remove deletes the measurement with the given ID. Returns false if absent.
func (r *Ruler) Remove(id string) bool {
	r.mu.Lock()
	removed := false
	for i, m := range r.measurements {
		if m.ID == id {
			r.measurements = append(r.measurements[:i], r.measurements[i+1:]...)
			removed = true
			break
		}
	}
	fn := r.onChange
	r.mu.Unlock()

	if removed && fn != nil {
		fn()
	}
	return removed
}

// RemoveLast deletes the most recent measurement, if any.
func (r *Ruler) RemoveLast() bool {
	r.mu.Lock()
	removed := false
	if n := len(r.measurements); n > 0 {
		r.measurements = r.measurements[:n-1]
		removed = true
	}
	fn := r.onChange
	r.mu.Unlock()

	if removed && fn != nil {
		fn()
	}
	return removed
}

// Clear removes all measurements.
func (r *Ruler) Clear() {
	r.mu.Lock()
	r.measurements = nil
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
}
