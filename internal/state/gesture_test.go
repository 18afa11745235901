package state

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair returns two touches on the x axis, d apart and centered on c.
func pair(c Point, d float64) (Point, Point) {
	return Pt(c.X-d/2, c.Y), Pt(c.X+d/2, c.Y)
}

func TestPinchFirstFrameOnlySetsBaseline(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := Pt(rng.Float64()*1000, rng.Float64()*1000)
		b := Pt(rng.Float64()*1000, rng.Float64()*1000)
		tr := Transform{Scale: 1.3, TranslateX: 4, TranslateY: -9}

		gs, got := Pinch(GestureState{}, tr, a, b, DefaultLimits())
		assert.Equal(t, tr, got)
		assert.Equal(t, Distance(a, b), gs.LastPinchDistance)
		assert.True(t, gs.HasPanCenter)
	}
}

func TestPinchScenario(t *testing.T) {
	l := DefaultLimits()
	c := Pt(300, 300)
	tr := Identity()
	var gs GestureState

	a, b := pair(c, 150)
	gs, tr = Pinch(gs, tr, a, b, l)
	assert.Equal(t, 1.0, tr.Scale)
	assert.Equal(t, 150.0, gs.LastPinchDistance)

	a, b = pair(c, 180)
	gs, tr = Pinch(gs, tr, a, b, l)
	assert.InDelta(t, 1.15, tr.Scale, 1e-12)
	assert.Equal(t, 180.0, gs.LastPinchDistance)
}

func TestPinchScaleStaysInBounds(t *testing.T) {
	l := DefaultLimits()
	rng := rand.New(rand.NewSource(42))
	tr := Identity()
	var gs GestureState
	for i := 0; i < 5000; i++ {
		if rng.Intn(50) == 0 {
			gs = EndPinch(gs)
		}
		a := Pt(rng.Float64()*3000-1000, rng.Float64()*3000-1000)
		b := Pt(rng.Float64()*3000-1000, rng.Float64()*3000-1000)
		gs, tr = Pinch(gs, tr, a, b, l)
		require.GreaterOrEqual(t, tr.Scale, l.MinScale)
		require.LessOrEqual(t, tr.Scale, l.MaxScale)
	}
}

func TestPinchPansWithCentroid(t *testing.T) {
	l := DefaultLimits()
	tr := Identity()
	var gs GestureState

	a, b := pair(Pt(100, 100), 50)
	gs, tr = Pinch(gs, tr, a, b, l)
	assert.Equal(t, 0.0, tr.TranslateX)
	assert.Equal(t, 0.0, tr.TranslateY)

	a, b = pair(Pt(130, 90), 50)
	_, tr = Pinch(gs, tr, a, b, l)
	assert.Equal(t, 30.0, tr.TranslateX)
	assert.Equal(t, -10.0, tr.TranslateY)
	assert.Equal(t, 1.0, tr.Scale)
}

func TestPinchPansFromCentroidOnAxis(t *testing.T) {
	l := DefaultLimits()
	tr := Identity()
	var gs GestureState

	// Centroid at exactly (0, 40): a zero coordinate is still a baseline.
	gs, tr = Pinch(gs, tr, Pt(-10, 40), Pt(10, 40), l)
	_, tr = Pinch(gs, tr, Pt(-5, 50), Pt(15, 50), l)
	assert.Equal(t, 5.0, tr.TranslateX)
	assert.Equal(t, 10.0, tr.TranslateY)
}

func TestEndPinchClearsBaseline(t *testing.T) {
	l := DefaultLimits()
	tr := Identity()
	a, b := pair(Pt(0, 0), 100)
	gs, tr := Pinch(GestureState{}, tr, a, b, l)
	require.True(t, gs.HasBaseline())

	gs = EndPinch(gs)
	assert.False(t, gs.HasBaseline())
	assert.False(t, gs.HasPanCenter)

	// A wider pinch after the reset must not jump the scale.
	a, b = pair(Pt(500, 500), 400)
	_, next := Pinch(gs, tr, a, b, l)
	assert.Equal(t, tr, next)
}
