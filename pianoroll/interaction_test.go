package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
	"gitlab.com/gomidi/midi/writer"
)

// build an editContext over a fresh song and a player with a dummy output
func testContext() *editContext {
	sng := newSong()
	pl := newPlayer(sng, writer.New(io.Discard), false)
	go pl.run()
	return &editContext{
		song:     sng,
		player:   pl,
		xform:    coordTransform{pixelsPerTick: 1, pixelsPerKey: 10},
		velocity: 100,
		noteDur:  ticksPerBeat,
	}
}

// build a pointer event the way the roll editor would for a content-space
// pixel position
func pointerAt(ctx *editContext, kind pointerKind, button, clicks uint8, x, y float64) pointerEvent {
	return pointerEvent{
		kind:    kind,
		button:  button,
		clicks:  clicks,
		x:       x,
		y:       y,
		tick:    ctx.xform.tickFromX(x),
		noteNum: clampNoteNum(ctx.xform.noteNumFromY(y)),
	}
}

func TestDrawToolCreateResizeCommit(t *testing.T) {
	ctx := testContext()
	dt := &drawTool{ctx: ctx}

	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 100, 50))
	assert.Len(t, ctx.song.track().events, 1)
	n := ctx.song.track().events[0]
	assert.Equal(t, int64(100), n.tick)
	assert.Equal(t, uint8(121), n.noteNum)

	// dragging extends the duration to follow the pointer
	dt.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 140, 50))
	assert.Equal(t, int64(40), n.duration)

	// dragging left of the start clamps to one tick
	dt.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 90, 50))
	assert.Equal(t, int64(1), n.duration)

	dt.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 140, 50))
	dt.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 140, 50))
	assert.Equal(t, int64(40), n.duration)
	assert.True(t, dt.idle())
}

func TestDrawToolSnapsToDivision(t *testing.T) {
	ctx := testContext()
	ctx.division = 4 // 240-tick steps
	dt := &drawTool{ctx: ctx}
	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 250, 50))
	assert.Equal(t, int64(240), ctx.song.track().events[0].tick)
}

func TestDrawToolRightClickErasesTopmost(t *testing.T) {
	ctx := testContext()
	bottom, _ := ctx.song.createNote(0, 100, 100, 100)
	top, _ := ctx.song.createNote(50, 100, 100, 100)
	dt := &drawTool{ctx: ctx}

	// click where both notes overlap; only the topmost goes
	y := ctx.xform.yFromNoteNum(100) + 5
	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_RIGHT, 1, 60, y))
	assert.Nil(t, ctx.song.noteByID(top))
	assert.NotNil(t, ctx.song.noteByID(bottom))
	assert.True(t, dt.idle())
}

func TestDrawToolRightClickMidGesture(t *testing.T) {
	ctx := testContext()
	other, _ := ctx.song.createNote(0, 121, 50, 100)
	dt := &drawTool{ctx: ctx}

	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 100, 50))
	dt.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 120, 50))
	assert.False(t, dt.idle())

	// right-click over an existing note mid-gesture erases nothing
	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_RIGHT, 1, 25, 50))
	assert.NotNil(t, ctx.song.noteByID(other))
	assert.False(t, dt.idle())
	assert.Len(t, ctx.song.track().events, 2)

	// the gesture continues undisturbed
	dt.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 140, 50))
	dt.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 140, 50))
	assert.True(t, dt.idle())
	n := ctx.song.track().events[1]
	assert.Equal(t, int64(100), n.tick)
	assert.Equal(t, int64(40), n.duration)
}

func TestDrawToolDoubleClickDeletes(t *testing.T) {
	ctx := testContext()
	id, _ := ctx.song.createNote(0, 60, 100, 100)
	dt := &drawTool{ctx: ctx}
	y := ctx.xform.yFromNoteNum(60) + 5
	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 2, 50, y))
	assert.Nil(t, ctx.song.noteByID(id))
}

func TestDrawToolClickPreviewsWithoutMutation(t *testing.T) {
	ctx := testContext()
	id, _ := ctx.song.createNote(0, 60, 100, 100)
	dt := &drawTool{ctx: ctx}
	y := ctx.xform.yFromNoteNum(60) + 5

	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 50, y))
	dt.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 50, y))

	n := ctx.song.noteByID(id)
	assert.NotNil(t, n)
	assert.Equal(t, int64(0), n.tick)
	assert.Equal(t, int64(100), n.duration)
	assert.Len(t, ctx.song.track().events, 1)
	assert.True(t, dt.idle())
}

func TestDrawToolLostPointerUp(t *testing.T) {
	ctx := testContext()
	dt := &drawTool{ctx: ctx}
	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 100, 50))
	assert.False(t, dt.idle())

	// the up never arrives; the next down starts a fresh gesture
	dt.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 3000, 50))
	assert.Len(t, ctx.song.track().events, 2)
	dt.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 3050, 50))
	dt.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 3050, 50))
	assert.True(t, dt.idle())
	// only the second note was resized
	assert.Equal(t, int64(50), ctx.song.track().events[1].duration)
	assert.Equal(t, ctx.noteDur, ctx.song.track().events[0].duration)
}

func TestSelectToolMarquee(t *testing.T) {
	ctx := testContext()
	in1, _ := ctx.song.createNote(50, 120, 20, 100)  // y 60..70
	in2, _ := ctx.song.createNote(150, 118, 20, 100) // y 80..90
	out1, _ := ctx.song.createNote(300, 120, 20, 100)
	out2, _ := ctx.song.createNote(50, 90, 20, 100) // y 360..370
	st := &selectTool{ctx: ctx}

	st.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 0, 0))
	assert.False(t, st.idle())
	st.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 200, 100))
	st.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 200, 100))

	assert.True(t, st.idle())
	assert.True(t, ctx.song.selection.has(in1))
	assert.True(t, ctx.song.selection.has(in2))
	assert.False(t, ctx.song.selection.has(out1))
	assert.False(t, ctx.song.selection.has(out2))
}

func TestSelectToolMoveSelection(t *testing.T) {
	ctx := testContext()
	id1, _ := ctx.song.createNote(100, 120, 50, 100)
	id2, _ := ctx.song.createNote(200, 118, 50, 100)
	ctx.song.setSelection([]int{id1, id2})
	st := &selectTool{ctx: ctx}

	// drag id1 20 pixels right and one key row down
	y := ctx.xform.yFromNoteNum(120) + 5
	st.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 110, y))
	st.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 130, y+10))
	st.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 130, y+10))

	assert.Equal(t, int64(120), ctx.song.noteByID(id1).tick)
	assert.Equal(t, uint8(119), ctx.song.noteByID(id1).noteNum)
	assert.Equal(t, int64(220), ctx.song.noteByID(id2).tick)
	assert.Equal(t, uint8(117), ctx.song.noteByID(id2).noteNum)
	// both stay selected
	assert.True(t, ctx.song.selection.has(id1))
	assert.True(t, ctx.song.selection.has(id2))
}

func TestSelectToolClickUnselectedNote(t *testing.T) {
	ctx := testContext()
	id1, _ := ctx.song.createNote(100, 120, 50, 100)
	id2, _ := ctx.song.createNote(200, 118, 50, 100)
	ctx.song.setSelection([]int{id2})
	st := &selectTool{ctx: ctx}

	// clicking an unselected note replaces the selection before the drag
	y := ctx.xform.yFromNoteNum(120) + 5
	st.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 110, y))
	st.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 140, y))
	st.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 140, y))

	assert.Equal(t, int64(130), ctx.song.noteByID(id1).tick)
	assert.Equal(t, int64(200), ctx.song.noteByID(id2).tick)
	assert.True(t, ctx.song.selection.has(id1))
	assert.False(t, ctx.song.selection.has(id2))
}

func TestSelectToolDropsStaleIDsMidGesture(t *testing.T) {
	ctx := testContext()
	id1, _ := ctx.song.createNote(100, 120, 50, 100)
	id2, _ := ctx.song.createNote(200, 118, 50, 100)
	ctx.song.setSelection([]int{id1, id2})
	st := &selectTool{ctx: ctx}

	y := ctx.xform.yFromNoteNum(120) + 5
	st.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 110, y))
	// another part of the application deletes id2 mid-gesture
	ctx.song.deleteNote(id2)
	st.pointerMove(pointerAt(ctx, pointerMove, 0, 0, 130, y))
	st.pointerUp(pointerAt(ctx, pointerUp, sdl.BUTTON_LEFT, 1, 130, y))

	assert.Equal(t, int64(120), ctx.song.noteByID(id1).tick)
	assert.True(t, st.idle())
}

func TestSelectToolRightClick(t *testing.T) {
	ctx := testContext()
	opened := 0
	ctx.openMenu = func(x, y int32) { opened++ }
	id, _ := ctx.song.createNote(100, 120, 50, 100)
	st := &selectTool{ctx: ctx}

	// at rest, right-click opens the context menu without a state change
	st.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_RIGHT, 1, 50, 50))
	assert.Equal(t, 1, opened)
	assert.True(t, st.idle())
	assert.NotNil(t, ctx.song.noteByID(id))

	// mid-gesture, right-click is a no-op
	y := ctx.xform.yFromNoteNum(120) + 5
	st.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_LEFT, 1, 110, y))
	st.pointerDown(pointerAt(ctx, pointerDown, sdl.BUTTON_RIGHT, 1, 50, 50))
	assert.Equal(t, 1, opened)
	assert.False(t, st.idle())
}

func TestModeSwitchDeferredDuringGesture(t *testing.T) {
	sng := newSong()
	pl := newPlayer(sng, writer.New(io.Discard), false)
	go pl.run()
	roll := newRollEditor(sng, pl, nil, defaultSettings())
	roll.ctx.division = 0
	roll.viewport = &sdl.Rect{X: 0, Y: 0, W: 800, H: 600}
	roll.rulerHeight = 20

	down := &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN,
		Button: sdl.BUTTON_LEFT, Clicks: 1, X: 100, Y: 100}
	up := &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP,
		Button: sdl.BUTTON_LEFT, Clicks: 1, X: 100, Y: 100}

	roll.mouseButton(down)
	assert.False(t, roll.tool.idle())
	roll.setMode(selectMode)
	// still in draw mode until the gesture ends
	assert.Equal(t, drawMode, roll.mode)
	roll.mouseButton(up)
	assert.Equal(t, selectMode, roll.mode)

	// at rest, switches apply immediately
	roll.setMode(drawMode)
	assert.Equal(t, drawMode, roll.mode)
}

func TestSelectionBounds(t *testing.T) {
	ctx := testContext()
	id1, _ := ctx.song.createNote(100, 120, 50, 100) // (100,60)-(150,70)
	id2, _ := ctx.song.createNote(200, 118, 50, 100) // (200,80)-(250,90)
	ctx.song.createNote(500, 60, 50, 100)

	_, ok := selectionBounds(ctx.song.track(), ctx.xform, &ctx.song.selection)
	assert.False(t, ok)

	ctx.song.setSelection([]int{id1, id2})
	bounds, ok := selectionBounds(ctx.song.track(), ctx.xform, &ctx.song.selection)
	assert.True(t, ok)
	assert.Equal(t, pixelRect{x: 100, y: 60, w: 150, h: 30}, bounds)
}
