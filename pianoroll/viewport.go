package main

import "sort"

// per-frame geometry for one note, recomputed from the song each frame
type visibleItem struct {
	id       int
	rect     pixelRect
	selected bool
	velocity uint8
	slot     int // stable drawable index, assigned by the recycler
}

// return the notes whose pixel rects overlap the half-open window
// [scrollLeft, scrollLeft+width). events exactly touching either boundary are
// excluded. cost is proportional to the visible count: tick ordering lets us
// binary-search the first candidate and stop scanning at the right edge.
func visibleNotes(t *track, ct coordTransform, sel *selection, scrollLeft, width float64) []visibleItem {
	// the earliest event that could still reach into the window starts at
	// most maxDuration ticks before the left edge, less the 1-pixel width
	// floor rectFromNote applies to sub-pixel notes
	minTick := ct.tickFromX(scrollLeft-1) - t.maxDuration
	first := sort.Search(len(t.events), func(i int) bool {
		return t.events[i].tick >= minTick
	})
	right := scrollLeft + width
	var items []visibleItem
	for _, n := range t.events[first:] {
		x := ct.xFromTick(n.tick)
		if x >= right {
			break
		}
		r := ct.rectFromNote(n)
		if r.x+r.w <= scrollLeft {
			continue
		}
		items = append(items, visibleItem{
			id:       n.id,
			rect:     r,
			selected: sel.has(n.id),
			velocity: n.velocity,
		})
	}
	return items
}
