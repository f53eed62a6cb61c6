package main

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// type that draws a series of string function results in a line
type statusBar struct {
	rect        *sdl.Rect
	funcs       []func() string
	msg         string
	msgTime     time.Time
	msgChan     chan string
	msgDuration time.Duration
}

// initialize a new status bar
func newStatusBar(msgSeconds int, funcs ...func() string) *statusBar {
	return &statusBar{
		rect:        &sdl.Rect{},
		funcs:       funcs,
		msgChan:     make(chan string),
		msgDuration: time.Second * time.Duration(msgSeconds),
	}
}

// draw the status bar
func (sb *statusBar) draw(pr *printer, r *sdl.Renderer) {
	x := padding
	y := r.GetViewport().H - pr.h - padding
	r.SetDrawColorArray(colorRulerArray...)
	*sb.rect = sdl.Rect{X: 0, Y: y - padding, W: r.GetViewport().W, H: pr.h + padding*2}
	r.FillRect(sb.rect)
	for _, f := range sb.funcs {
		s := f()
		if s != "" {
			pr.draw(r, s, x, y)
			x += padding*2 + pr.w*int32(len(s))
		}
	}

	// update message
	select {
	case sb.msg = <-sb.msgChan:
		sb.msgTime = time.Now()
	default:
	}
	if time.Since(sb.msgTime) < sb.msgDuration {
		pr.draw(r, sb.msg, r.GetViewport().W-padding-pr.w*int32(len(sb.msg)), y)
	}
}

// update the status bar message, sending redraw flag updates as necessary
func (sb *statusBar) showMessage(s string, redraw chan bool) {
	go func() {
		sb.msgChan <- s
		if redraw != nil {
			redraw <- true
		}
		time.Sleep(sb.msgDuration)
		if redraw != nil {
			redraw <- true
		}
	}()
}
