package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickRoundTrip(t *testing.T) {
	for _, ppt := range []float64{0.1, 0.5, 1, 2.5} {
		ct := coordTransform{pixelsPerTick: ppt, pixelsPerKey: 10}
		for _, tick := range []int64{0, 1, 7, 100, 959, 960, 123456} {
			assert.Equal(t, tick, ct.tickFromX(ct.xFromTick(tick)))
		}
	}
}

func TestTickFromXClamp(t *testing.T) {
	ct := coordTransform{pixelsPerTick: 1, pixelsPerKey: 10}
	assert.Equal(t, int64(0), ct.tickFromX(-100))
	assert.Equal(t, int64(0), ct.tickFromX(0))
}

func TestClampNoteNum(t *testing.T) {
	ct := coordTransform{pixelsPerTick: 1, pixelsPerKey: 10}
	for _, y := range []float64{-1e6, -10, 0, 5, 50, 1269, 1270, 1e6} {
		n := clampNoteNum(ct.noteNumFromY(y))
		assert.LessOrEqual(t, n, uint8(127))
	}
	assert.Equal(t, uint8(121), clampNoteNum(ct.noteNumFromY(50)))
	assert.Equal(t, uint8(126), clampNoteNum(ct.noteNumFromY(0)))
	assert.Equal(t, uint8(0), clampNoteNum(ct.noteNumFromY(1e6)))
	assert.Equal(t, uint8(127), clampNoteNum(ct.noteNumFromY(-1e6)))
}

func TestRectFromNote(t *testing.T) {
	ct := coordTransform{pixelsPerTick: 0.1, pixelsPerKey: 10}
	n := &noteEvent{id: 1, tick: 960, duration: 480, noteNum: 60}
	r := ct.rectFromNote(n)
	assert.Equal(t, pixelRect{x: 96, y: 660, w: 48, h: 10}, r)

	// higher pitch, smaller y
	n2 := &noteEvent{id: 2, tick: 960, duration: 480, noteNum: 72}
	assert.Less(t, ct.rectFromNote(n2).y, r.y)

	// zero-length notes keep a 1-pixel floor
	n3 := &noteEvent{id: 3, tick: 0, duration: 1}
	assert.Equal(t, 1.0, ct.rectFromNote(n3).w)
}

func TestContentHeight(t *testing.T) {
	ct := coordTransform{pixelsPerTick: 1, pixelsPerKey: 10}
	assert.Equal(t, 1270.0, ct.contentHeight())
}

func TestPixelRect(t *testing.T) {
	a := pixelRect{0, 0, 10, 10}
	assert.True(t, a.intersects(pixelRect{5, 5, 10, 10}))
	assert.False(t, a.intersects(pixelRect{10, 0, 10, 10})) // edges exclusive
	assert.True(t, a.contains(0, 0))
	assert.False(t, a.contains(10, 10))
}
