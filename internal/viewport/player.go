package viewport

import (
	"sync"
	"time"
)

// baseInterval is the tick period at speed 1.
const baseInterval = 100 * time.Millisecond

// Player advances a controller's slice index on a timer. It advances one
// slice every baseInterval/speed and stops itself on the last slice without
// wrapping.
type Player struct {
	mu      sync.Mutex
	ctrl    *Controller
	speed   float64
	playing bool
	stop    chan struct{}

	// onStateChange fires when playback starts or stops, including the
	// automatic stop at the end of the stack.
	onStateChange func(playing bool)
}

// NewPlayer creates a player for the controller at the given speed.
// Speeds at or below zero fall back to 1.
func NewPlayer(ctrl *Controller, speed float64) *Player {
	if speed <= 0 {
		speed = 1
	}
	return &Player{ctrl: ctrl, speed: speed}
}

// OnStateChange registers the playback state listener.
func (p *Player) OnStateChange(fn func(playing bool)) {
	p.mu.Lock()
	p.onStateChange = fn
	p.mu.Unlock()
}

// Playing reports whether playback is active.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Speed returns the playback speed multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// SetSpeed changes the playback speed. A running player restarts its timer
// at the new cadence.
func (p *Player) SetSpeed(speed float64) {
	if speed <= 0 {
		speed = 1
	}
	p.mu.Lock()
	p.speed = speed
	restart := p.playing
	p.mu.Unlock()

	if restart {
		p.Stop()
		p.Start()
	}
}

// Interval returns the current tick period.
func (p *Player) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval()
}

func (p *Player) interval() time.Duration {
	return time.Duration(float64(baseInterval) / p.speed)
}

// Start begins playback. Starting an already-playing player, or a player
// already at the last slice, is a no-op.
func (p *Player) Start() {
	p.mu.Lock()
	if p.playing || p.ctrl.Slice() >= p.ctrl.TotalSlices() {
		p.mu.Unlock()
		return
	}
	p.playing = true
	p.stop = make(chan struct{})
	stop := p.stop
	interval := p.interval()
	fn := p.onStateChange
	p.mu.Unlock()

	if fn != nil {
		fn(true)
	}

	go p.run(stop, interval)
}

func (p *Player) run(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			next := p.ctrl.Slice() + 1
			p.ctrl.SetSlice(next)
			if next >= p.ctrl.TotalSlices() {
				p.Stop()
				return
			}
		}
	}
}

// Stop halts playback. Safe to call from any goroutine, including the
// player's own tick goroutine.
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	close(p.stop)
	fn := p.onStateChange
	p.mu.Unlock()

	if fn != nil {
		fn(false)
	}
}

// Toggle starts playback when stopped and stops it when playing. It returns
// the resulting playing state.
func (p *Player) Toggle() bool {
	if p.Playing() {
		p.Stop()
		return false
	}
	p.Start()
	return p.Playing()
}
