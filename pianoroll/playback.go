package main

import (
	"math"
	"time"

	"gitlab.com/gomidi/midi/writer"
)

// type used to signal player behavior
type playerSignal struct {
	typ      playerSignalType
	tick     int64
	noteNum  uint8
	velocity uint8
	channel  uint8
	world    int
}

type playerSignalType uint8

const (
	signalContinue playerSignalType = iota
	signalStart
	signalStop
	signalSeek
	signalPreview
	signalPreviewOff
	signalSongChanged
)

const (
	defaultBPM = 120
	byteNil    = 0xff

	previewDuration = time.Millisecond * 300
)

// type that writes midi events over time according to the song, and plays
// one-off preview notes on request
type player struct {
	song         *song
	wr           writer.ChannelWriter
	realtime     bool
	playing      bool
	lastTick     int64
	bpm          float64
	signal       chan playerSignal
	stopping     chan struct{} // player sends on this channel when stopping
	sendStopping bool          // but only if this is true
	redrawChan   chan bool     // send true on this when a signal is received
	active       map[int]*noteEvent

	previewNum, previewChan uint8

	// ignore signalContinue messages with world < this.
	// incremented when playback starts, stops, or seeks.
	world int
}

// create a new player
func newPlayer(s *song, wr writer.ChannelWriter, realtime bool) *player {
	return &player{
		song:       s,
		wr:         wr,
		realtime:   realtime,
		bpm:        defaultBPM,
		signal:     make(chan playerSignal),
		stopping:   make(chan struct{}),
		active:     make(map[int]*noteEvent),
		previewNum: byteNil,
	}
}

// start signal-handling loop
func (p *player) run() {
	for sig := range p.signal {
		switch sig.typ {
		case signalStart:
			p.world++
			p.allNotesOff()
			p.playing = true
			p.lastTick = sig.tick
			p.scheduleContinue(sig.tick)
		case signalContinue:
			if sig.world < p.world {
				break
			}
			p.advanceTo(sig.tick)
			if tick, ok := p.horizon(); ok {
				p.scheduleContinueAfter(tick)
			} else if len(p.active) == 0 {
				go func() {
					p.signal <- playerSignal{typ: signalStop}
				}()
			}
		case signalStop:
			p.world++
			p.allNotesOff()
			p.playing = false
			if p.sendStopping {
				p.stopping <- struct{}{}
			}
		case signalSeek:
			p.world++
			p.allNotesOff()
			p.lastTick = sig.tick
			if p.playing {
				p.scheduleContinue(sig.tick)
			}
		case signalPreview:
			p.previewOff()
			p.wr.SetChannel(sig.channel)
			writer.NoteOn(p.wr, sig.noteNum, sig.velocity)
			p.previewNum, p.previewChan = sig.noteNum, sig.channel
			time.AfterFunc(previewDuration, func() {
				p.signal <- playerSignal{typ: signalPreviewOff}
			})
		case signalPreviewOff:
			p.previewOff()
		case signalSongChanged:
			// next continue signal picks up the new horizon
		}

		// if we got any signal, assume redraw is needed
		if p.redrawChan != nil {
			p.redrawChan <- true
		}
	}
}

// play note ons and offs due in (lastTick, tick]
func (p *player) advanceTo(tick int64) {
	for id, n := range p.active {
		if n.tick+n.duration <= tick {
			p.wr.SetChannel(n.channel)
			writer.NoteOff(p.wr, n.noteNum)
			delete(p.active, id)
		}
	}
	for _, n := range p.song.track().events {
		if n.tick > p.lastTick && n.tick <= tick {
			p.wr.SetChannel(n.channel)
			writer.NoteOn(p.wr, n.noteNum, n.velocity)
			p.active[n.id] = n
		} else if n.tick > tick {
			break
		}
	}
	p.lastTick = tick
}

// return the next tick at which a note starts or ends, if any
func (p *player) horizon() (int64, bool) {
	horizon, ok := int64(math.MaxInt64), false
	for _, n := range p.active {
		if off := n.tick + n.duration; off > p.lastTick && off < horizon {
			horizon, ok = off, true
		}
	}
	for _, n := range p.song.track().events {
		if n.tick > p.lastTick {
			if n.tick < horizon {
				horizon, ok = n.tick, true
			}
			break
		}
	}
	return horizon, ok
}

// send a continue signal for a tick without delay, including notes at the
// tick itself
func (p *player) scheduleContinue(tick int64) {
	world := p.world
	p.lastTick = tick - 1
	go func() {
		p.signal <- playerSignal{typ: signalContinue, tick: tick, world: world}
	}()
}

// send a continue signal for a tick after the real-time delay to reach it
func (p *player) scheduleContinueAfter(tick int64) {
	world := p.world
	wait := p.durationFromTicks(tick - p.lastTick)
	go func() {
		if p.realtime {
			time.Sleep(wait)
		}
		p.signal <- playerSignal{typ: signalContinue, tick: tick, world: world}
	}()
}

// convert a tick count to a time.Duration
func (p *player) durationFromTicks(t int64) time.Duration {
	return time.Duration(float64(int64(time.Minute)*t/ticksPerBeat) / p.bpm)
}

// silence every sounding note, preview included
func (p *player) allNotesOff() {
	for id, n := range p.active {
		p.wr.SetChannel(n.channel)
		writer.NoteOff(p.wr, n.noteNum)
		delete(p.active, id)
	}
	p.previewOff()
}

func (p *player) previewOff() {
	if p.previewNum != byteNil {
		p.wr.SetChannel(p.previewChan)
		writer.NoteOff(p.wr, p.previewNum)
		p.previewNum = byteNil
	}
}

// audibly preview a pitch without touching the document
func (p *player) previewNote(noteNum, velocity, channel uint8) {
	p.signal <- playerSignal{
		typ:      signalPreview,
		noteNum:  noteNum,
		velocity: velocity,
		channel:  channel,
	}
}

// move the playback position, restarting mid-playback if needed
func (p *player) setPosition(tick int64) {
	p.signal <- playerSignal{typ: signalSeek, tick: clampTick(tick)}
}

// start playback from a tick
func (p *player) play(tick int64) {
	p.signal <- playerSignal{typ: signalStart, tick: clampTick(tick)}
}

// send a stop signal to the player and wait for it to process
func (p *player) stop() {
	p.sendStopping = true
	p.signal <- playerSignal{typ: signalStop}
	<-p.stopping
	p.sendStopping = false
}

// clean up active notes
func (p *player) cleanup() {
	for id, n := range p.active {
		p.wr.SetChannel(n.channel)
		writer.NoteOff(p.wr, n.noteNum)
		delete(p.active, id)
	}
}
