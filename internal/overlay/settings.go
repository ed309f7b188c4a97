package overlay

import "sync"

// Settings holds the runtime display state of the three overlay layers.
// Visibility and opacity are independent: a hidden layer keeps its opacity.
type Settings struct {
	mu sync.RWMutex

	visible map[Layer]bool
	opacity map[Layer]float64
	mode    RenderMode

	// hovered identifies the highlighted entity, "" when none.
	hovered string
}

// NewSettings returns settings with all layers visible at their default
// opacities and filled segmentation rendering.
func NewSettings() *Settings {
	return &Settings{
		visible: map[Layer]bool{
			LayerHeatmap:      true,
			LayerSegmentation: true,
			LayerAnnotation:   true,
		},
		opacity: map[Layer]float64{
			LayerHeatmap:      0.45,
			LayerSegmentation: 0.35,
			LayerAnnotation:   1.0,
		},
		mode: RenderFilled,
	}
}

// Visible reports whether a layer is shown.
func (s *Settings) Visible(l Layer) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible[l]
}

// SetVisible shows or hides a layer.
func (s *Settings) SetVisible(l Layer, v bool) {
	s.mu.Lock()
	s.visible[l] = v
	s.mu.Unlock()
}

// Toggle flips a layer's visibility and returns the new state.
func (s *Settings) Toggle(l Layer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[l] = !s.visible[l]
	return s.visible[l]
}

// Opacity returns a layer's fill opacity.
func (s *Settings) Opacity(l Layer) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opacity[l]
}

// SetOpacity sets a layer's fill opacity, clamped to [0,1].
func (s *Settings) SetOpacity(l Layer, o float64) {
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	s.mu.Lock()
	s.opacity[l] = o
	s.mu.Unlock()
}

// Mode returns the segmentation render mode.
func (s *Settings) Mode() RenderMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode sets the segmentation render mode.
func (s *Settings) SetMode(m RenderMode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// Hovered returns the label of the highlighted entity, or "".
func (s *Settings) Hovered() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hovered
}

// SetHovered records the highlighted entity label ("" clears it).
func (s *Settings) SetHovered(label string) {
	s.mu.Lock()
	s.hovered = label
	s.mu.Unlock()
}
