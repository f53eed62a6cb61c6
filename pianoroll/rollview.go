package main

import (
	"strconv"

	"github.com/veandco/go-sdl2/sdl"
)

type rollMode uint8

const (
	drawMode rollMode = iota
	selectMode
)

const (
	scrollRows  = 3 // key rows per wheel step
	minZoom     = 0.02
	maxZoom     = 2.0
	cursorWidth = 2 // pixels, play position line
)

// user interface structure for note editing
type rollEditor struct {
	ctx      editContext
	printer  *printer
	measures []measure

	scrollX, scrollY float64
	viewport         *sdl.Rect
	rulerHeight      int32 // pixels (beat number strip)

	mode        rollMode
	pendingMode rollMode
	modePending bool
	draw_       *drawTool
	select_     *selectTool
	tool        pointerTool

	recycler *recycler
	sprites  []noteSprite
}

// a reusable drawable slot, updated in place for whichever note currently
// holds its recycle key
type noteSprite struct {
	rect     sdl.Rect
	selected bool
	alpha    uint8
	inUse    bool
}

func newRollEditor(sng *song, pl *player, pr *printer, s *settings) *rollEditor {
	re := &rollEditor{
		ctx: editContext{
			song:   sng,
			player: pl,
			xform: coordTransform{
				pixelsPerTick: float64(s.PixelsPerBeat) / ticksPerBeat,
				pixelsPerKey:  float64(s.KeyHeight),
			},
			division: s.DefaultDivision,
			velocity: uint8(s.DefaultVelocity),
			noteDur:  ticksPerBeat / int64(s.DefaultNoteDiv),
		},
		printer:  pr,
		measures: []measure{{beats: 4, denom: 4}},
		recycler: newRecycler(),
	}
	re.draw_ = &drawTool{ctx: &re.ctx}
	re.select_ = &selectTool{ctx: &re.ctx}
	re.tool = re.draw_
	return re
}

// request an interaction mode. switches take effect only between gestures; a
// request mid-gesture is deferred to the next pointer-up.
func (re *rollEditor) setMode(m rollMode) {
	if !re.tool.idle() {
		re.pendingMode, re.modePending = m, true
		return
	}
	re.applyMode(m)
}

func (re *rollEditor) applyMode(m rollMode) {
	if m == re.mode {
		return
	}
	re.mode = m
	re.ctx.song.selection.enabled = m == selectMode
	if m == selectMode {
		re.tool = re.select_
	} else {
		re.ctx.song.selection.clear()
		re.tool = re.draw_
	}
}

func (re *rollEditor) modeString() string {
	if re.mode == selectMode {
		return "Select"
	}
	return "Draw"
}

// draw all components of the roll editor interface
func (re *rollEditor) draw(r *sdl.Renderer, dst *sdl.Rect, playPos int64) {
	re.viewport = &sdl.Rect{X: dst.X, Y: dst.Y, W: dst.W, H: dst.H}
	re.rulerHeight = re.printer.h + padding*2
	ct := re.ctx.xform

	content := &sdl.Rect{X: dst.X, Y: dst.Y + re.rulerHeight,
		W: dst.W, H: dst.H - re.rulerHeight}

	// shade black-key rows
	r.SetDrawColorArray(colorKeyRowArray...)
	for n := 0; n <= maxNoteNum; n++ {
		if !blackKey(uint8(n)) {
			continue
		}
		y := content.Y + int32(ct.yFromNoteNum(uint8(n))-re.scrollY)
		if y+int32(ct.pixelsPerKey) > content.Y && y < content.Y+content.H {
			r.FillRect(&sdl.Rect{X: content.X, Y: y,
				W: content.W, H: int32(ct.pixelsPerKey)})
		}
	}

	// draw beat and measure lines
	startTick := ct.tickFromX(re.scrollX)
	endTick := ct.tickFromX(re.scrollX+float64(content.W)) + 1
	it := newBeatIter(re.measures, ticksPerBeat, startTick, endTick)
	for m, ok := it.next(); ok; m, ok = it.next() {
		x := content.X + int32(ct.xFromTick(m.tick)-re.scrollX)
		if m.measureStart {
			r.SetDrawColorArray(colorMeasureArray...)
		} else {
			r.SetDrawColorArray(colorBeatArray...)
		}
		r.DrawLine(x, content.Y, x, content.Y+content.H)
	}

	// draw play position
	x := content.X + int32(ct.xFromTick(playPos)-re.scrollX)
	if x >= content.X && x < content.X+content.W {
		r.SetDrawColorArray(colorPlayPosArray...)
		r.FillRect(&sdl.Rect{X: x, Y: content.Y, W: cursorWidth, H: content.H})
	}

	// draw notes through the recycled sprite pool
	items := visibleNotes(re.ctx.song.track(), ct, &re.ctx.song.selection,
		re.scrollX, float64(content.W))
	re.recycler.assign(items)
	for len(re.sprites) < re.recycler.slotCount() {
		re.sprites = append(re.sprites, noteSprite{})
	}
	for i := range re.sprites {
		re.sprites[i].inUse = false
	}
	for _, item := range items {
		sp := &re.sprites[item.slot]
		sp.rect = sdl.Rect{
			X: content.X + int32(item.rect.x-re.scrollX),
			Y: content.Y + int32(item.rect.y-re.scrollY),
			W: int32(item.rect.w),
			H: int32(item.rect.h),
		}
		sp.selected = item.selected
		sp.alpha = 128 + item.velocity
		sp.inUse = true
		c := colorNoteArray
		if sp.selected {
			c = colorSelectArray
		}
		r.SetDrawColor(c[0], c[1], c[2], sp.alpha)
		r.FillRect(&sp.rect)
	}

	// draw selection bounds
	if bounds, ok := selectionBounds(re.ctx.song.track(), ct,
		&re.ctx.song.selection); ok {
		r.SetDrawColorArray(colorSelectArray...)
		r.DrawRect(&sdl.Rect{
			X: content.X + int32(bounds.x-re.scrollX),
			Y: content.Y + int32(bounds.y-re.scrollY),
			W: int32(bounds.w), H: int32(bounds.h),
		})
	}

	// draw marquee
	if re.select_.state == stateMarquee {
		mr := re.select_.marqueeRect()
		r.SetDrawColorArray(colorSelectArray...)
		r.DrawRect(&sdl.Rect{
			X: content.X + int32(mr.x-re.scrollX),
			Y: content.Y + int32(mr.y-re.scrollY),
			W: int32(mr.w), H: int32(mr.h),
		})
	}

	// draw ruler with measure numbers
	r.SetDrawColorArray(colorRulerArray...)
	r.FillRect(&sdl.Rect{X: dst.X, Y: dst.Y, W: dst.W, H: re.rulerHeight})
	it.reset()
	for m, ok := it.next(); ok; m, ok = it.next() {
		if !m.measureStart {
			continue
		}
		x := dst.X + int32(ct.xFromTick(m.tick)-re.scrollX)
		re.printer.draw(r, strconv.FormatInt(m.tick/ticksPerBeat+1, 10),
			x+padding/2, dst.Y+padding)
	}
}

// report whether a note number is a black key
func blackKey(n uint8) bool {
	switch n % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// convert a window position to a pointer event in musical coordinates
func (re *rollEditor) pointerEventAt(kind pointerKind, winX, winY int32,
	button, clicks uint8) pointerEvent {
	x := float64(winX-re.viewport.X) + re.scrollX
	y := float64(winY-re.viewport.Y-re.rulerHeight) + re.scrollY
	return pointerEvent{
		kind:    kind,
		button:  button,
		clicks:  clicks,
		mod:     sdl.GetModState(),
		x:       x,
		y:       y,
		tick:    re.ctx.xform.tickFromX(x),
		noteNum: clampNoteNum(re.ctx.xform.noteNumFromY(y)),
	}
}

// respond to mouse button events
func (re *rollEditor) mouseButton(e *sdl.MouseButtonEvent) {
	if re.viewport == nil {
		return
	}
	p := sdl.Point{X: e.X, Y: e.Y}
	if e.Type == sdl.MOUSEBUTTONDOWN {
		if !p.InRect(re.viewport) {
			return
		}
		// clicks on the ruler reposition the playhead
		if e.Y < re.viewport.Y+re.rulerHeight {
			x := float64(e.X-re.viewport.X) + re.scrollX
			re.ctx.player.setPosition(re.ctx.snapTick(re.ctx.xform.tickFromX(x)))
			return
		}
		re.tool.pointerDown(re.pointerEventAt(pointerDown, e.X, e.Y, e.Button, e.Clicks))
		return
	}
	// ups are delivered even outside the viewport so gestures always end
	re.tool.pointerUp(re.pointerEventAt(pointerUp, e.X, e.Y, e.Button, e.Clicks))
	if re.modePending && re.tool.idle() {
		re.applyMode(re.pendingMode)
		re.modePending = false
	}
}

// respond to mouse motion events
func (re *rollEditor) mouseMotion(e *sdl.MouseMotionEvent) {
	// only respond to drag
	if e.State == 0 {
		return
	}
	if re.viewport == nil {
		return
	}
	re.tool.pointerMove(re.pointerEventAt(pointerMove, e.X, e.Y, 0, 0))
}

// respond to mouse wheel events. plain wheel scrolls vertically, shift
// horizontally, ctrl zooms the time axis.
func (re *rollEditor) mouseWheel(e *sdl.MouseWheelEvent) {
	mod := sdl.GetModState()
	step := float64(e.Y) * scrollRows * re.ctx.xform.pixelsPerKey
	switch {
	case mod&sdl.KMOD_CTRL != 0:
		factor := 1.25
		if e.Y < 0 {
			factor = 1 / 1.25
		}
		re.zoom(factor)
	case mod&sdl.KMOD_SHIFT != 0:
		re.scrollX -= step
		if re.scrollX < 0 {
			re.scrollX = 0
		}
	default:
		re.scrollY -= step
		max := re.ctx.xform.contentHeight()
		if re.viewport != nil {
			max -= float64(re.viewport.H - re.rulerHeight)
		}
		if re.scrollY > max {
			re.scrollY = max
		}
		if re.scrollY < 0 {
			re.scrollY = 0
		}
	}
}

// scale the time axis, rebuilding the transform and keeping the left edge
// stationary
func (re *rollEditor) zoom(factor float64) {
	ppt := re.ctx.xform.pixelsPerTick * factor
	if ppt < minZoom {
		ppt = minZoom
	} else if ppt > maxZoom {
		ppt = maxZoom
	}
	leftTick := re.ctx.xform.tickFromX(re.scrollX)
	re.ctx.xform = coordTransform{pixelsPerTick: ppt,
		pixelsPerKey: re.ctx.xform.pixelsPerKey}
	re.scrollX = re.ctx.xform.xFromTick(leftTick)
}

// select every note in the active track
func (re *rollEditor) selectAll() {
	if re.mode != selectMode {
		return
	}
	ids := []int{}
	for _, n := range re.ctx.song.track().events {
		ids = append(ids, n.id)
	}
	re.ctx.song.setSelection(ids)
}

// change snap division via addition
func (re *rollEditor) addDivision(delta int) {
	re.ctx.division += delta
	if re.ctx.division < 0 {
		re.ctx.division = 0
	} else if re.ctx.division > 32 {
		re.ctx.division = 32
	}
}

// change default velocity via addition
func (re *rollEditor) addVelocity(delta int) {
	v := int(re.ctx.velocity) + delta
	if v < 1 {
		v = 1
	} else if v > 127 {
		v = 127
	}
	re.ctx.velocity = uint8(v)
}

// tick at the left edge of the viewport
func (re *rollEditor) firstTickOnScreen() int64 {
	return re.ctx.xform.tickFromX(re.scrollX)
}

// reset scroll and interaction state
func (re *rollEditor) reset() {
	re.scrollX, re.scrollY = 0, 0
	re.draw_.reset()
	re.select_.reset()
	re.ctx.song.selection.clear()
}
