package main

import "sort"

// a single note in a track. owned by the song; other components read notes
// and request changes through the song's mutation methods.
type noteEvent struct {
	id       int
	tick     int64
	duration int64
	noteNum  uint8
	velocity uint8
	channel  uint8
}

type track struct {
	channel uint8
	events  []*noteEvent // kept ordered by tick

	// high-water mark of event durations, used by visibleNotes to bound its
	// backward search. never shrinks; an overestimate only costs extra scan.
	maxDuration int64
}

type song struct {
	tracks      []*track
	activeTrack int
	selection   selection
	nextID      int
}

func newSong() *song {
	return &song{
		tracks: []*track{{channel: 0}},
		nextID: 1,
	}
}

// return the track being edited
func (s *song) track() *track {
	return s.tracks[s.activeTrack]
}

// create a note and return its id. tick is clamped to >= 0 and duration to
// >= 1; out-of-range note numbers are refused.
func (s *song) createNote(tick int64, noteNum uint8, duration int64, velocity uint8) (int, bool) {
	if noteNum > maxNoteNum {
		return 0, false
	}
	if duration < 1 {
		duration = 1
	}
	t := s.track()
	n := &noteEvent{
		id:       s.nextID,
		tick:     clampTick(tick),
		duration: duration,
		noteNum:  noteNum,
		velocity: velocity,
		channel:  t.channel,
	}
	s.nextID++
	i := sort.Search(len(t.events), func(i int) bool {
		return t.events[i].tick > n.tick
	})
	t.events = append(t.events, nil)
	copy(t.events[i+1:], t.events[i:])
	t.events[i] = n
	if duration > t.maxDuration {
		t.maxDuration = duration
	}
	return n.id, true
}

// move a note to a new tick and note number, returning false for stale ids
func (s *song) moveNote(id int, tick int64, noteNum uint8) bool {
	n := s.noteByID(id)
	if n == nil || noteNum > maxNoteNum {
		return false
	}
	n.tick = clampTick(tick)
	n.noteNum = noteNum
	s.sortEvents()
	return true
}

// change a note's duration, returning false for stale ids
func (s *song) resizeNote(id int, duration int64) bool {
	n := s.noteByID(id)
	if n == nil {
		return false
	}
	if duration < 1 {
		duration = 1
	}
	n.duration = duration
	t := s.track()
	if duration > t.maxDuration {
		t.maxDuration = duration
	}
	return true
}

// remove a note, returning false for stale ids
func (s *song) deleteNote(id int) bool {
	t := s.track()
	for i, n := range t.events {
		if n.id == id {
			t.events = append(t.events[:i], t.events[i+1:]...)
			s.selection.remove(id)
			return true
		}
	}
	return false
}

// return the note with the given id, or nil
func (s *song) noteByID(id int) *noteEvent {
	for _, n := range s.track().events {
		if n.id == id {
			return n
		}
	}
	return nil
}

// restore tick ordering after a mutation
func (s *song) sortEvents() {
	t := s.track()
	sort.SliceStable(t.events, func(i, j int) bool {
		return t.events[i].tick < t.events[j].tick
	})
}

// replace the selection, dropping ids that no longer exist
func (s *song) setSelection(ids []int) {
	s.selection.clear()
	for _, id := range ids {
		if s.noteByID(id) != nil {
			s.selection.add(id)
		}
	}
}

// delete every selected note
func (s *song) deleteSelection() {
	t := s.track()
	for i := len(t.events) - 1; i >= 0; i-- {
		if s.selection.has(t.events[i].id) {
			t.events = append(t.events[:i], t.events[i+1:]...)
		}
	}
	s.selection.clear()
}

// set of selected note ids. grown or replaced during a gesture, cleared on
// mode exit or explicit deselect; bounds are derived per frame, not stored.
type selection struct {
	enabled bool
	ids     map[int]bool
}

func (sel *selection) has(id int) bool {
	return sel.ids[id]
}

func (sel *selection) add(id int) {
	if sel.ids == nil {
		sel.ids = make(map[int]bool)
	}
	sel.ids[id] = true
}

func (sel *selection) remove(id int) {
	delete(sel.ids, id)
}

func (sel *selection) clear() {
	sel.ids = nil
}

func (sel *selection) count() int {
	return len(sel.ids)
}
