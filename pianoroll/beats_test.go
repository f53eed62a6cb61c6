package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectBeats(it *beatIter) []beatMarker {
	var ms []beatMarker
	for m, ok := it.next(); ok; m, ok = it.next() {
		ms = append(ms, m)
	}
	return ms
}

func TestBeatIterCommonTime(t *testing.T) {
	it := newBeatIter([]measure{{beats: 4, denom: 4}}, 960, 0, 3840)
	assert.Equal(t, []beatMarker{
		{0, true}, {960, false}, {1920, false}, {2880, false},
	}, collectBeats(it))
}

func TestBeatIterVariableSignatures(t *testing.T) {
	measures := []measure{{beats: 3, denom: 4}, {beats: 4, denom: 4}}
	it := newBeatIter(measures, 960, 0, 7000)
	assert.Equal(t, []beatMarker{
		{0, true}, {960, false}, {1920, false},
		{2880, true}, {3840, false}, {4800, false}, {5760, false},
		// the last declared signature repeats
		{6720, true},
	}, collectBeats(it))
}

func TestBeatIterDenominator(t *testing.T) {
	it := newBeatIter([]measure{{beats: 6, denom: 8}}, 960, 0, 2880)
	ms := collectBeats(it)
	assert.Len(t, ms, 6)
	assert.Equal(t, beatMarker{0, true}, ms[0])
	assert.Equal(t, beatMarker{480, false}, ms[1])
}

func TestBeatIterClipsToRange(t *testing.T) {
	it := newBeatIter([]measure{{beats: 4, denom: 4}}, 960, 1000, 3841)
	assert.Equal(t, []beatMarker{
		{1920, false}, {2880, false}, {3840, true},
	}, collectBeats(it))
}

func TestBeatIterRestartable(t *testing.T) {
	it := newBeatIter([]measure{{beats: 3, denom: 4}, {beats: 4, denom: 4}}, 960, 500, 6000)
	first := collectBeats(it)
	it.reset()
	assert.Equal(t, first, collectBeats(it))
	assert.NotEmpty(t, first)
}

func TestBeatIterDegenerateSignature(t *testing.T) {
	// zero beats still advances one beat per measure instead of looping
	it := newBeatIter([]measure{{beats: 0, denom: 4}}, 960, 1000, 3000)
	assert.Equal(t, []beatMarker{{1920, true}, {2880, true}}, collectBeats(it))

	// zero denominator falls back to quarter-note beats
	it = newBeatIter([]measure{{beats: 4, denom: 0}}, 960, 0, 1920)
	assert.Equal(t, []beatMarker{{0, true}, {960, false}}, collectBeats(it))
}

func TestBeatIterEmptyMeasureList(t *testing.T) {
	it := newBeatIter(nil, 960, 0, 1920)
	assert.Equal(t, []beatMarker{{0, true}, {960, false}}, collectBeats(it))
}
