package main

// time signature of a run of measures
type measure struct {
	beats int // signature numerator
	denom int // signature denominator (note value of one beat)
}

// a gridline position for the renderer
type beatMarker struct {
	tick         int64
	measureStart bool
}

// finite, restartable walk over the beat positions inside a tick range.
// measures are subdivided into their declared beat counts, so signatures may
// vary; the last declared measure's signature repeats for the rest of the
// range.
type beatIter struct {
	measures   []measure
	tpb        int64 // time base, ticks per quarter note
	start, end int64

	measureTick int64 // tick of the current measure's first beat
	mi          int
	beat        int
}

func newBeatIter(measures []measure, tpb, startTick, endTick int64) *beatIter {
	it := &beatIter{
		measures: measures,
		tpb:      tpb,
		start:    clampTick(startTick),
		end:      endTick,
	}
	it.reset()
	return it
}

// restart the walk at the first beat inside the range
func (it *beatIter) reset() {
	it.measureTick, it.mi, it.beat = 0, 0, 0
	// skip whole measures that end at or before the left edge
	for {
		m := it.measure()
		end := it.measureTick + int64(m.beats)*it.beatLen(m)
		if end > it.start {
			break
		}
		it.measureTick = end
		it.mi++
	}
}

// return the next beat marker, or false when the range is exhausted
func (it *beatIter) next() (beatMarker, bool) {
	for {
		m := it.measure()
		tick := it.measureTick + int64(it.beat)*it.beatLen(m)
		if tick >= it.end {
			return beatMarker{}, false
		}
		first := it.beat == 0
		it.beat++
		if it.beat >= m.beats {
			it.measureTick = tick + it.beatLen(m)
			it.mi++
			it.beat = 0
		}
		if tick >= it.start {
			return beatMarker{tick: tick, measureStart: first}, true
		}
	}
}

// signature in effect for the current measure. degenerate signatures are
// normalized so the walk always advances.
func (it *beatIter) measure() measure {
	m := measure{beats: 4, denom: 4}
	if it.mi < len(it.measures) {
		m = it.measures[it.mi]
	} else if len(it.measures) > 0 {
		m = it.measures[len(it.measures)-1]
	}
	if m.beats < 1 {
		m.beats = 1
	}
	if m.denom < 1 {
		m.denom = 4
	}
	return m
}

// tick length of one beat under a signature
func (it *beatIter) beatLen(m measure) int64 {
	return it.tpb * 4 / int64(m.denom)
}
