// Package viewport owns the viewer's navigation state: slice index, zoom,
// pan, active tool, and cine playback.
package viewport

import "sync"

const (
	// MinZoom and MaxZoom bound the zoom factor.
	MinZoom = 0.25
	MaxZoom = 4.0

	// ZoomStep is the multiplicative factor applied by zoom controls.
	ZoomStep = 1.25
)

// Tool represents the current pointer interaction tool.
type Tool int

const (
	ToolPan Tool = iota
	ToolZoom
	ToolRuler
)

func (t Tool) String() string {
	switch t {
	case ToolPan:
		return "pan"
	case ToolZoom:
		return "zoom"
	case ToolRuler:
		return "ruler"
	default:
		return "unknown"
	}
}

// Controller holds the viewport state. All methods are safe for concurrent
// use; UI handlers and the playback timer both mutate the slice index, and
// the last write wins.
type Controller struct {
	mu sync.Mutex

	slice       int
	totalSlices int

	zoom       float64
	panX, panY float64

	tool       Tool
	fullscreen bool

	// onSliceChange is invoked for internally-originated slice changes only.
	// Changes applied through SyncSlice (parent-driven) stay silent to avoid
	// a feedback loop with the hosting page.
	onSliceChange func(slice int)
}

// NewController creates a controller for a stack of totalSlices slices,
// positioned at slice 1 with zoom 1 and no pan.
func NewController(totalSlices int) *Controller {
	if totalSlices < 1 {
		totalSlices = 1
	}
	return &Controller{
		slice:       1,
		totalSlices: totalSlices,
		zoom:        1.0,
		tool:        ToolPan,
	}
}

// OnSliceChange registers the listener notified of internal slice changes.
func (c *Controller) OnSliceChange(fn func(slice int)) {
	c.mu.Lock()
	c.onSliceChange = fn
	c.mu.Unlock()
}

// Slice returns the current slice index.
func (c *Controller) Slice() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slice
}

// TotalSlices returns the stack size.
func (c *Controller) TotalSlices() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSlices
}

// SetTotalSlices resizes the stack, re-clamping the current slice.
func (c *Controller) SetTotalSlices(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	c.totalSlices = n
	if c.slice > n {
		c.slice = n
	}
	c.mu.Unlock()
}

// SetSlice moves to slice n, clamped to [1, totalSlices], and notifies the
// slice-change listener when the value actually changed.
func (c *Controller) SetSlice(n int) {
	c.mu.Lock()
	n = c.clampSlice(n)
	changed := n != c.slice
	c.slice = n
	fn := c.onSliceChange
	c.mu.Unlock()

	if changed && fn != nil {
		fn(n)
	}
}

// StepSlice moves by delta slices (negative for backward).
func (c *Controller) StepSlice(delta int) {
	c.SetSlice(c.Slice() + delta)
}

// SyncSlice applies an externally-driven slice value without notifying the
// listener.
func (c *Controller) SyncSlice(n int) {
	c.mu.Lock()
	c.slice = c.clampSlice(n)
	c.mu.Unlock()
}

func (c *Controller) clampSlice(n int) int {
	if n < 1 {
		return 1
	}
	if n > c.totalSlices {
		return c.totalSlices
	}
	return n
}

// NormalizedSlice returns the slice position as a fraction of the stack.
func (c *Controller) NormalizedSlice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.slice) / float64(c.totalSlices)
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (c *Controller) SetZoom(z float64) {
	c.mu.Lock()
	c.zoom = clampZoom(z)
	c.mu.Unlock()
}

// ZoomBy multiplies the current zoom by factor, clamped to the valid range.
func (c *Controller) ZoomBy(factor float64) {
	c.mu.Lock()
	c.zoom = clampZoom(c.zoom * factor)
	c.mu.Unlock()
}

// ZoomIn applies one zoom step.
func (c *Controller) ZoomIn() { c.ZoomBy(ZoomStep) }

// ZoomOut applies one inverse zoom step.
func (c *Controller) ZoomOut() { c.ZoomBy(1 / ZoomStep) }

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// Pan offsets the view by (dx, dy) pixels.
func (c *Controller) Pan(dx, dy float64) {
	c.mu.Lock()
	c.panX += dx
	c.panY += dy
	c.mu.Unlock()
}

// PanOffset returns the accumulated pan offset.
func (c *Controller) PanOffset() (x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panX, c.panY
}

// Reset restores zoom 1 and zero pan. The slice index is untouched.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.zoom = 1.0
	c.panX = 0
	c.panY = 0
	c.mu.Unlock()
}

// Tool returns the active interaction tool.
func (c *Controller) Tool() Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tool
}

// SetTool sets the active interaction tool.
func (c *Controller) SetTool(t Tool) {
	c.mu.Lock()
	c.tool = t
	c.mu.Unlock()
}

// ToggleRuler switches between the ruler and pan tools and returns true when
// the ruler is now active.
func (c *Controller) ToggleRuler() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tool == ToolRuler {
		c.tool = ToolPan
		return false
	}
	c.tool = ToolRuler
	return true
}

// Fullscreen reports the fullscreen flag.
func (c *Controller) Fullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullscreen
}

// SetFullscreen records the fullscreen flag.
func (c *Controller) SetFullscreen(v bool) {
	c.mu.Lock()
	c.fullscreen = v
	c.mu.Unlock()
}
