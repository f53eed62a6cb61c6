package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"gitlab.com/gomidi/midi/writer"
	driver "gitlab.com/gomidi/rtmididrv"
)

const (
	appName    = "Pianoroll"
	defaultFps = 60
	configPath = "config"
	assetsPath = "assets"
)

var (
	colorBgArray      = make([]uint8, 4)
	colorBeatArray    = make([]uint8, 4)
	colorMeasureArray = make([]uint8, 4)
	colorKeyRowArray  = make([]uint8, 4)
	colorNoteArray    = make([]uint8, 4)
	colorSelectArray  = make([]uint8, 4)
	colorPlayPosArray = make([]uint8, 4)
	colorRulerArray   = make([]uint8, 4)
	colorFg           = sdl.Color{}
	padding           = int32(0)
)

func must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func main() {
	settings := loadSettings(func(s string) { println(s) })
	setColorArray(colorBgArray, settings.ColorBg)
	setColorArray(colorBeatArray, settings.ColorBeat)
	setColorArray(colorMeasureArray, settings.ColorMeasure)
	setColorArray(colorKeyRowArray, settings.ColorKeyRow)
	setColorArray(colorNoteArray, settings.ColorNote)
	setColorArray(colorSelectArray, settings.ColorSelect)
	setColorArray(colorPlayPosArray, settings.ColorPlayPos)
	setColorArray(colorRulerArray, settings.ColorRuler)
	setColorSDL(&colorFg, settings.ColorFg)
	padding = int32(settings.FontSize) / 2

	drv, err := driver.New()
	must(err)
	defer drv.Close()

	var wr writer.ChannelWriter
	if n := settings.MidiOutPortNumber; n >= 0 {
		outs, err := drv.Outs()
		must(err)
		if n < len(outs) {
			out := outs[n]
			must(out.Open())
			defer out.Close()
			wr = writer.New(out)
		} else {
			println(fmt.Sprintf("MIDI output port index %d out of range [%d, %d].",
				n, 0, len(outs)))
		}
	}
	if wr == nil {
		wr = writer.New(io.Discard) // dummy output
	}

	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	must(err)
	defer sdl.Quit()
	window, err := sdl.CreateWindow(appName, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(settings.WindowWidth), int32(settings.WindowHeight),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI)
	must(err)
	defer window.Destroy()
	renderer, err := sdl.CreateRenderer(window, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	must(err)
	defer renderer.Destroy()
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	err = ttf.Init()
	must(err)
	defer ttf.Quit()
	font, err := ttf.OpenFont(filepath.Join(assetsPath, settings.Font), settings.FontSize)
	must(err)
	defer font.Close()
	pr, err := newPrinter(font)
	must(err)
	defer pr.destroy()

	redraw := false
	redrawChan := make(chan bool)
	go func() {
		for v := range redrawChan {
			redraw = v
		}
	}()
	fps := getRefreshRate()

	sng := newSong()
	pl := newPlayer(sng, wr, true)
	pl.redrawChan = redrawChan
	go pl.run()
	defer pl.cleanup()
	roll := newRollEditor(sng, pl, pr, settings)

	running := true

	sb := newStatusBar(settings.MessageDuration,
		func() string { return fmt.Sprintf("Mode: %s", roll.modeString()) },
		func() string { return fmt.Sprintf("Velocity: %d", roll.ctx.velocity) },
		func() string { return fmt.Sprintf("Division: %d", roll.ctx.division) },
		func() string {
			if n := sng.selection.count(); n > 0 {
				return fmt.Sprintf("Selected: %d", n)
			}
			return ""
		},
	)

	mb := &menuBar{
		menus: []*menu{
			{
				label: "File",
				items: []*menuItem{
					{label: "New", action: func() {
						pl.stop()
						*sng = *newSong()
						roll.reset()
						sb.showMessage("Cleared song.", redrawChan)
					}},
					{label: "Quit", action: func() { running = false }},
				},
			},
			{
				label: "Play",
				items: []*menuItem{
					{label: "From start", action: func() { pl.play(0) }},
					{label: "From top of screen", action: func() {
						pl.play(roll.firstTickOnScreen())
					}},
					{label: "Stop", action: func() { pl.stop() }},
				},
			},
			{
				label: "Mode",
				items: []*menuItem{
					{label: "Draw", action: func() { roll.setMode(drawMode) }},
					{label: "Select", action: func() { roll.setMode(selectMode) }},
				},
			},
			{
				label: "Edit",
				items: []*menuItem{
					{label: "Select all", action: func() { roll.selectAll() }},
					{label: "Delete notes", action: func() { sng.deleteSelection() }},
				},
			},
			{
				label: "View",
				items: []*menuItem{
					{label: "Zoom in", action: func() { roll.zoom(1.25) },
						repeat: true},
					{label: "Zoom out", action: func() { roll.zoom(1 / 1.25) },
						repeat: true},
				},
			},
			{
				label: "Status",
				items: []*menuItem{
					{label: "Decrease velocity", action: func() { roll.addVelocity(-8) },
						repeat: true},
					{label: "Increase velocity", action: func() { roll.addVelocity(8) },
						repeat: true},
					{label: "Decrease division", action: func() { roll.addDivision(-1) },
						repeat: true},
					{label: "Increase division", action: func() { roll.addDivision(1) },
						repeat: true},
				},
			},
		},
		context: &menu{
			items: []*menuItem{
				{label: "Delete notes", action: func() { sng.deleteSelection() }},
				{label: "Select all", action: func() { roll.selectAll() }},
				{label: "Deselect", action: func() { sng.setSelection(nil) }},
			},
		},
	}
	mb.init(pr)

	// the select tool opens the context menu at the pointer
	roll.ctx.openMenu = func(x, y int32) {
		winX := x - int32(roll.scrollX) + roll.viewport.X
		winY := y - int32(roll.scrollY) + roll.viewport.Y + roll.rulerHeight
		mb.openContext(pr, winX, winY)
	}

	for running {
		// process SDL events
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			// if we got any event, assume redraw is needed
			redrawChan <- true

			switch event := event.(type) {
			case *sdl.MouseMotionEvent:
				mb.mouseMotion(event)
				roll.mouseMotion(event)
			case *sdl.MouseButtonEvent:
				wasShown := mb.shown()
				if !wasShown {
					roll.mouseButton(event)
				}
				// don't forward the click that just opened the context menu
				if wasShown || !mb.shown() {
					mb.mouseButton(event)
				}
			case *sdl.KeyboardEvent:
				mb.keyboardEvent(event)
			case *sdl.MouseWheelEvent:
				roll.mouseWheel(event)
			case *sdl.QuitEvent:
				running = false
			}
		}

		if redraw {
			redrawChan <- false
			renderer.SetDrawColorArray(colorBgArray...)
			renderer.Clear()
			viewport := renderer.GetViewport()
			y := mb.height()
			roll.draw(renderer, &sdl.Rect{X: 0, Y: y, W: viewport.W,
				H: viewport.H - y - sb.rect.H}, pl.lastTick)
			sb.draw(pr, renderer)
			mb.draw(pr, renderer)
			renderer.Present()
		}
		sdl.Delay(uint32(1000 / fps))
	}
}

// read records from a CSV file
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'
	return r.ReadAll()
}

// read records from a TSV file
func readTSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.Comment = '#'
	return r.ReadAll()
}

// return the refresh rate of the display, according to SDL, or default FPS if
// it's not available
func getRefreshRate() int {
	if dm, err := sdl.GetCurrentDisplayMode(0); err == nil && dm.RefreshRate > 0 {
		return int(dm.RefreshRate)
	}
	return defaultFps
}

// set an array to the bytes of an int, MSB to LSB
func setColorArray(a []uint8, v uint32) {
	for i := range a {
		a[i] = uint8(v >> ((len(a) - i - 1) * 8))
	}
}

// same idea as setColorArray
func setColorSDL(c *sdl.Color, v uint32) {
	a := make([]uint8, 4)
	setColorArray(a, v)
	*c = sdl.Color{R: a[0], G: a[1], B: a[2], A: a[3]}
}
