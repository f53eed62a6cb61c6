package main

import "math"

const (
	ticksPerBeat = 960
	numKeys      = 127
	maxNoteNum   = 127
)

// rectangle in pixel space
type pixelRect struct {
	x, y, w, h float64
}

// report whether two rects overlap, treating edges as exclusive
func (r pixelRect) intersects(r2 pixelRect) bool {
	return r.x < r2.x+r2.w && r2.x < r.x+r.w &&
		r.y < r2.y+r2.h && r2.y < r.y+r.h
}

// report whether a point lies inside the rect
func (r pixelRect) contains(x, y float64) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// mapping between pixel space and (tick, note number) space. all other
// geometry is derived from this, so rounding and clamping rules here are the
// single source of truth for hit-testing.
type coordTransform struct {
	pixelsPerTick float64
	pixelsPerKey  float64
}

// convert an x coordinate to a tick count, clamped to >= 0
func (ct coordTransform) tickFromX(x float64) int64 {
	if x < 0 {
		return 0
	}
	return int64(math.Round(x / ct.pixelsPerTick))
}

// convert a tick count to an x coordinate
func (ct coordTransform) xFromTick(tick int64) float64 {
	return float64(tick) * ct.pixelsPerTick
}

// convert a y coordinate to a real-valued note number. the pitch axis is
// inverted; higher pitches have smaller y. callers round up and clamp via
// clampNoteNum.
func (ct coordTransform) noteNumFromY(y float64) float64 {
	return float64(numKeys-1) - y/ct.pixelsPerKey
}

// convert a note number to the y coordinate of the top of its row
func (ct coordTransform) yFromNoteNum(noteNum uint8) float64 {
	return float64(numKeys-1-int(noteNum)) * ct.pixelsPerKey
}

// return the pixel rect covered by a note. width has a 1-pixel floor so that
// zero-width notes stay visible and clickable.
func (ct coordTransform) rectFromNote(n *noteEvent) pixelRect {
	w := float64(n.duration) * ct.pixelsPerTick
	if w < 1 {
		w = 1
	}
	return pixelRect{
		x: ct.xFromTick(n.tick),
		y: ct.yFromNoteNum(n.noteNum),
		w: w,
		h: ct.pixelsPerKey,
	}
}

// total pixel height of the key range
func (ct coordTransform) contentHeight() float64 {
	return numKeys * ct.pixelsPerKey
}

// round a real-valued note number up to an integer key index in [0, 127]
func clampNoteNum(f float64) uint8 {
	n := math.Ceil(f)
	if n < 0 {
		return 0
	} else if n > maxNoteNum {
		return maxNoteNum
	}
	return uint8(n)
}

// clamp a tick to >= 0
func clampTick(t int64) int64 {
	if t < 0 {
		return 0
	}
	return t
}
