package main

import "github.com/veandco/go-sdl2/sdl"

type pointerKind uint8

const (
	pointerDown pointerKind = iota
	pointerMove
	pointerUp
)

// a pointer event with its pixel position already converted to musical
// coordinates. x and y are content-space pixels (scroll applied).
type pointerEvent struct {
	kind    pointerKind
	button  uint8
	clicks  uint8
	mod     sdl.Keymod
	x, y    float64
	tick    int64
	noteNum uint8
}

// state shared by the two pointer tools: the document, preview output,
// geometry, and editing defaults
type editContext struct {
	song     *song
	player   *player
	xform    coordTransform
	division int   // snap divisions per beat; 0 places notes freely
	velocity uint8
	noteDur  int64 // duration for newly drawn notes
	openMenu func(x, y int32)
}

// quantize a tick to the current snap division
func (c *editContext) snapTick(t int64) int64 {
	if c.division <= 0 {
		return t
	}
	step := ticksPerBeat / int64(c.division)
	return (t + step/2) / step * step
}

// return the topmost note under a content-space pixel position. later events
// draw later, so the scan runs in reverse.
func (c *editContext) noteAt(x, y float64) *noteEvent {
	events := c.song.track().events
	for i := len(events) - 1; i >= 0; i-- {
		if c.xform.rectFromNote(events[i]).contains(x, y) {
			return events[i]
		}
	}
	return nil
}

// one of the two interchangeable pointer interaction strategies. exactly one
// is active at a time; the roll editor swaps them only while idle.
type pointerTool interface {
	pointerDown(ev pointerEvent)
	pointerMove(ev pointerEvent)
	pointerUp(ev pointerEvent)
	idle() bool
}

type toolState uint8

const (
	stateIdle toolState = iota
	stateCreating
	stateResizing
	statePressing
	stateMarquee
	stateMoving
)

// tool that creates notes by click-dragging on empty canvas. right-click or
// double-click on a note deletes it; a plain click on a note previews its
// pitch without touching the document.
type drawTool struct {
	ctx       *editContext
	state     toolState
	targetID  int   // note being created/resized; 0 once the store rejects it
	startTick int64 // create position, resize anchor
	pressID   int   // existing note under a pending click
	dragged   bool
}

func (dt *drawTool) idle() bool {
	return dt.state == stateIdle
}

func (dt *drawTool) reset() {
	dt.state, dt.targetID, dt.pressID, dt.dragged = stateIdle, 0, 0, false
}

func (dt *drawTool) pointerDown(ev pointerEvent) {
	if ev.button == sdl.BUTTON_RIGHT {
		// erase does not apply mid-gesture
		if dt.state == stateIdle {
			if hit := dt.ctx.noteAt(ev.x, ev.y); hit != nil {
				dt.ctx.song.deleteNote(hit.id)
			}
		}
		return
	}
	if ev.button != sdl.BUTTON_LEFT {
		return
	}
	if dt.state != stateIdle {
		// pointer-up was lost; treat this down as a fresh gesture
		dt.reset()
	}
	hit := dt.ctx.noteAt(ev.x, ev.y)
	if hit != nil {
		if ev.clicks >= 2 {
			dt.ctx.song.deleteNote(hit.id)
			return
		}
		dt.state, dt.pressID = statePressing, hit.id
		return
	}
	tick := dt.ctx.snapTick(ev.tick)
	id, ok := dt.ctx.song.createNote(tick, ev.noteNum, dt.ctx.noteDur, dt.ctx.velocity)
	if !ok {
		return
	}
	dt.state, dt.targetID, dt.startTick = stateCreating, id, tick
}

func (dt *drawTool) pointerMove(ev pointerEvent) {
	switch dt.state {
	case stateCreating, stateResizing:
		dt.state = stateResizing
		if dt.targetID == 0 {
			return
		}
		dur := ev.tick - dt.startTick
		if dur < 1 {
			dur = 1
		}
		if !dt.ctx.song.resizeNote(dt.targetID, dur) {
			// stale id; stop tracking for the rest of the gesture
			dt.targetID = 0
		}
	case statePressing:
		dt.dragged = true
	}
}

func (dt *drawTool) pointerUp(ev pointerEvent) {
	if dt.state == statePressing && !dt.dragged {
		if n := dt.ctx.song.noteByID(dt.pressID); n != nil {
			dt.ctx.player.previewNote(n.noteNum, n.velocity, n.channel)
		}
	}
	dt.reset()
}

// tool that selects notes with a marquee rectangle and drags selections to
// new positions. right-click opens the context menu instead of transitioning
// state; mid-gesture right-clicks are ignored.
type selectTool struct {
	ctx              *editContext
	state            toolState
	anchorX, anchorY float64
	curX, curY       float64
	anchorTick       int64
	anchorNote       int
	origins          map[int]notePos // selected note positions at drag start
}

type notePos struct {
	tick    int64
	noteNum uint8
}

func (st *selectTool) idle() bool {
	return st.state == stateIdle
}

func (st *selectTool) reset() {
	st.state, st.origins = stateIdle, nil
}

func (st *selectTool) pointerDown(ev pointerEvent) {
	if ev.button == sdl.BUTTON_RIGHT {
		// no context menu mid-gesture
		if st.state == stateIdle && st.ctx.openMenu != nil {
			st.ctx.openMenu(int32(ev.x), int32(ev.y))
		}
		return
	}
	if ev.button != sdl.BUTTON_LEFT {
		return
	}
	if st.state != stateIdle {
		st.reset()
	}
	sng := st.ctx.song
	if hit := st.ctx.noteAt(ev.x, ev.y); hit != nil {
		if !sng.selection.has(hit.id) {
			sng.setSelection([]int{hit.id})
		}
		st.origins = make(map[int]notePos)
		for _, n := range sng.track().events {
			if sng.selection.has(n.id) {
				st.origins[n.id] = notePos{n.tick, n.noteNum}
			}
		}
		st.state = stateMoving
		st.anchorTick, st.anchorNote = ev.tick, int(ev.noteNum)
		return
	}
	st.state = stateMarquee
	st.anchorX, st.anchorY = ev.x, ev.y
	st.curX, st.curY = ev.x, ev.y
}

func (st *selectTool) pointerMove(ev pointerEvent) {
	switch st.state {
	case stateMarquee:
		st.curX, st.curY = ev.x, ev.y
	case stateMoving:
		dt := ev.tick - st.anchorTick
		dk := int(ev.noteNum) - st.anchorNote
		for id, pos := range st.origins {
			nn := int(pos.noteNum) + dk
			if nn < 0 {
				nn = 0
			} else if nn > maxNoteNum {
				nn = maxNoteNum
			}
			if !st.ctx.song.moveNote(id, clampTick(pos.tick+dt), uint8(nn)) {
				delete(st.origins, id)
			}
		}
	}
}

func (st *selectTool) pointerUp(ev pointerEvent) {
	if st.state == stateMarquee {
		r := st.marqueeRect()
		var ids []int
		if ev.mod&sdl.KMOD_SHIFT != 0 {
			for id := range st.ctx.song.selection.ids {
				ids = append(ids, id)
			}
		}
		for _, n := range st.ctx.song.track().events {
			if st.ctx.xform.rectFromNote(n).intersects(r) {
				ids = append(ids, n.id)
			}
		}
		st.ctx.song.setSelection(ids)
	}
	st.reset()
}

// current marquee rectangle in content-space pixels
func (st *selectTool) marqueeRect() pixelRect {
	x0, x1 := st.anchorX, st.curX
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := st.anchorY, st.curY
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return pixelRect{x0, y0, x1 - x0, y1 - y0}
}

// union of the selected notes' pixel rects, for the selection outline
func selectionBounds(t *track, ct coordTransform, sel *selection) (pixelRect, bool) {
	var bounds pixelRect
	found := false
	for _, n := range t.events {
		if !sel.has(n.id) {
			continue
		}
		r := ct.rectFromNote(n)
		if !found {
			bounds, found = r, true
			continue
		}
		x1 := bounds.x + bounds.w
		if r.x+r.w > x1 {
			x1 = r.x + r.w
		}
		y1 := bounds.y + bounds.h
		if r.y+r.h > y1 {
			y1 = r.y + r.h
		}
		if r.x < bounds.x {
			bounds.x = r.x
		}
		if r.y < bounds.y {
			bounds.y = r.y
		}
		bounds.w, bounds.h = x1-bounds.x, y1-bounds.y
	}
	return bounds, found
}
