package measure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medview/pkg/geometry"
)

func TestDistance(t *testing.T) {
	// A horizontal drag across 10 percent of the frame: 10 * 5.12 px * 0.5 mm.
	d := Distance(geometry.Point2D{X: 10, Y: 50}, geometry.Point2D{X: 20, Y: 50})
	assert.InDelta(t, 25.6, d, 1e-9)

	// Diagonal drags follow the euclidean distance.
	d = Distance(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 3, Y: 4})
	want := math.Sqrt(math.Pow(3*5.12, 2)+math.Pow(4*5.12, 2)) * 0.5
	assert.InDelta(t, want, d, 1e-9)

	// Order does not matter.
	a := geometry.Point2D{X: 12.5, Y: 80.1}
	b := geometry.Point2D{X: 44.0, Y: 3.7}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestArea(t *testing.T) {
	// A 10x10 percent square: (10 * 5.12 px * 0.5 mm)^2.
	square := []geometry.Point2D{
		{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 30}, {X: 20, Y: 30},
	}
	assert.InDelta(t, 25.6*25.6, Area(square), 1e-9)

	// Winding order does not matter.
	reversed := []geometry.Point2D{
		{X: 20, Y: 30}, {X: 30, Y: 30}, {X: 30, Y: 20}, {X: 20, Y: 20},
	}
	assert.InDelta(t, Area(square), Area(reversed), 1e-9)

	assert.Zero(t, Area(square[:2]))
}

func TestCommitRejectsNoiseDrags(t *testing.T) {
	r := NewRuler()

	// 0.5 percent is 1.28 mm, under the 2 mm threshold.
	r.Begin(geometry.Point2D{X: 50, Y: 50})
	r.Update(geometry.Point2D{X: 50.5, Y: 50})
	_, ok := r.Commit()

	assert.False(t, ok)
	assert.Empty(t, r.Measurements())
}

func TestCommitAppendsMeasurement(t *testing.T) {
	r := NewRuler()

	r.Begin(geometry.Point2D{X: 10, Y: 10})
	r.Update(geometry.Point2D{X: 30, Y: 10})
	m, ok := r.Commit()

	require.True(t, ok)
	assert.NotEmpty(t, m.ID)
	assert.InDelta(t, 51.2, m.DistanceMm, 1e-9)
	assert.Equal(t, "51.2 mm", m.Label())

	got := r.Measurements()
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)
}

func TestCommitWithoutDraft(t *testing.T) {
	r := NewRuler()
	_, ok := r.Commit()
	assert.False(t, ok)
}

func TestCancelDiscardsDraft(t *testing.T) {
	r := NewRuler()

	r.Begin(geometry.Point2D{X: 10, Y: 10})
	r.Update(geometry.Point2D{X: 90, Y: 90})
	r.Cancel()

	_, drafting := r.Draft()
	assert.False(t, drafting)

	_, ok := r.Commit()
	assert.False(t, ok)
	assert.Empty(t, r.Measurements())
}

func TestRemoveAndRemoveLast(t *testing.T) {
	r := NewRuler()

	commit := func(x float64) Measurement {
		r.Begin(geometry.Point2D{X: 0, Y: 0})
		r.Update(geometry.Point2D{X: x, Y: 0})
		m, ok := r.Commit()
		require.True(t, ok)
		return m
	}

	first := commit(10)
	commit(20)
	third := commit(30)

	assert.True(t, r.Remove(first.ID))
	assert.False(t, r.Remove("missing-id"))

	assert.True(t, r.RemoveLast())
	got := r.Measurements()
	require.Len(t, got, 1)
	assert.NotEqual(t, third.ID, got[0].ID)

	assert.True(t, r.RemoveLast())
	assert.False(t, r.RemoveLast())
}

func TestOnChangeFires(t *testing.T) {
	r := NewRuler()

	changes := 0
	r.OnChange(func() { changes++ })

	r.Begin(geometry.Point2D{X: 0, Y: 0})
	r.Update(geometry.Point2D{X: 50, Y: 0})
	r.Commit() // 1

	r.RemoveLast() // 2
	r.Clear()      // 3

	// Rejected commits do not fire.
	r.Begin(geometry.Point2D{X: 0, Y: 0})
	r.Commit()

	assert.Equal(t, 3, changes)
}
