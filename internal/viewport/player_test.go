package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerInterval(t *testing.T) {
	c := NewController(10)

	assert.Equal(t, 100*time.Millisecond, NewPlayer(c, 1).Interval())
	assert.Equal(t, 50*time.Millisecond, NewPlayer(c, 2).Interval())
	assert.Equal(t, 200*time.Millisecond, NewPlayer(c, 0.5).Interval())
	assert.Equal(t, 25*time.Millisecond, NewPlayer(c, 4).Interval())

	// Non-positive speeds fall back to 1x.
	assert.Equal(t, 100*time.Millisecond, NewPlayer(c, 0).Interval())
	assert.Equal(t, 100*time.Millisecond, NewPlayer(c, -2).Interval())
}

func TestPlayerStartAtLastSliceIsNoop(t *testing.T) {
	c := NewController(5)
	c.SetSlice(5)

	p := NewPlayer(c, 1)
	p.Start()
	assert.False(t, p.Playing())
}

func TestPlayerStopsAtEndWithoutWrapping(t *testing.T) {
	c := NewController(3)
	p := NewPlayer(c, 4)

	stopped := make(chan bool, 4)
	p.OnStateChange(func(playing bool) {
		if !playing {
			stopped <- true
		}
	})

	p.Start()
	require.True(t, p.Playing())

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not stop at the last slice")
	}

	assert.Equal(t, 3, c.Slice())
	assert.False(t, p.Playing())

	// Stays at the last slice; no wrap to 1.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 3, c.Slice())
}

func TestPlayerToggle(t *testing.T) {
	c := NewController(100)
	p := NewPlayer(c, 1)

	assert.True(t, p.Toggle())
	assert.True(t, p.Playing())

	assert.False(t, p.Toggle())
	assert.False(t, p.Playing())
}

func TestPlayerDoubleStopIsSafe(t *testing.T) {
	c := NewController(100)
	p := NewPlayer(c, 1)

	p.Start()
	p.Stop()
	p.Stop() // must not panic or close the channel twice
	assert.False(t, p.Playing())
}
