// Package app provides application state, events, and theming.
package app

import (
	"sync"

	"medview/internal/measure"
	"medview/internal/overlay"
	"medview/internal/study"
	"medview/internal/viewport"
	"medview/internal/window"
)

// EventType identifies different application events.
type EventType int

const (
	EventStudyLoaded EventType = iota
	EventSliceChanged
	EventOverlayChanged
	EventMeasurementsChanged
	EventToolChanged
	EventWindowPresetChanged
	EventPlaybackChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the per-window application state: the loaded study, the
// viewport, overlays, measurements, and the active window preset. Nothing
// here is persisted; the state is discarded when the window closes.
type State struct {
	mu sync.RWMutex

	repo study.Repository

	current *study.Study
	report  *study.Report
	dataset overlay.Dataset

	Viewport *viewport.Controller
	Player   *viewport.Player
	Overlays *overlay.Settings
	Ruler    *measure.Ruler

	preset window.Preset

	listeners map[EventType][]EventListener
}

// NewState creates application state backed by the given repository.
func NewState(repo study.Repository, playbackSpeed float64) *State {
	s := &State{
		repo:      repo,
		Viewport:  viewport.NewController(1),
		Overlays:  overlay.NewSettings(),
		Ruler:     measure.NewRuler(),
		preset:    window.SoftTissue,
		listeners: make(map[EventType][]EventListener),
	}
	s.Player = viewport.NewPlayer(s.Viewport, playbackSpeed)

	s.Viewport.OnSliceChange(func(slice int) {
		s.Emit(EventSliceChanged, slice)
	})
	s.Player.OnStateChange(func(playing bool) {
		s.Emit(EventPlaybackChanged, playing)
	})
	s.Ruler.OnChange(func() {
		s.Emit(EventMeasurementsChanged, nil)
	})

	return s
}

// Repository returns the backing study repository.
func (s *State) Repository() study.Repository {
	return s.repo
}

// LoadStudy makes the given study current: resets the viewport to slice 1,
// binds the modality's overlay dataset, clears measurements, and loads the
// report if one exists.
func (s *State) LoadStudy(id string) error {
	st, err := s.repo.StudyByID(id)
	if err != nil {
		return err
	}
	rep, err := s.repo.ReportForStudy(id)
	if err != nil {
		rep = nil // studies without reports are fine
	}

	s.mu.Lock()
	s.current = st
	s.report = rep
	s.dataset = overlay.ByModality(st.Modality)
	s.mu.Unlock()

	total := st.TotalSlices
	if total < 1 {
		total = 1
	}
	s.Viewport.SetTotalSlices(total)
	s.Viewport.SyncSlice(1)
	s.Viewport.Reset()
	s.Ruler.Clear()

	s.Emit(EventStudyLoaded, st)
	return nil
}

// Current returns the loaded study, or nil.
func (s *State) Current() *study.Study {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Report returns the loaded study's report, or nil.
func (s *State) Report() *study.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Dataset returns the overlay dataset for the loaded study's modality.
func (s *State) Dataset() overlay.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Preset returns the active window preset.
func (s *State) Preset() window.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preset
}

// SetPreset activates a window preset.
func (s *State) SetPreset(p window.Preset) {
	s.mu.Lock()
	s.preset = p
	s.mu.Unlock()
	s.Emit(EventWindowPresetChanged, p)
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Close stops background activity owned by the state.
func (s *State) Close() {
	s.Player.Stop()
}
