package main

import "container/heap"

// assigns stable, reusable slot indices to the changing set of visible note
// ids, so the renderer can update drawable objects in place instead of
// recreating them. at most one slot per visible id; slots vacated by notes
// that scroll out of view are reused lowest-first, bounding the live slot
// count to the maximum concurrently visible note count.
type recycler struct {
	slots map[int]int // note id -> slot
	free  intHeap
	next  int // lowest slot index never handed out
}

func newRecycler() *recycler {
	return &recycler{slots: make(map[int]int)}
}

// bind a slot to each item: ids seen last frame keep their slot, new ids get
// the lowest free one. slots of ids absent this frame are released.
func (rc *recycler) assign(items []visibleItem) {
	seen := make(map[int]bool, len(items))
	for i := range items {
		seen[items[i].id] = true
	}
	for id, slot := range rc.slots {
		if !seen[id] {
			delete(rc.slots, id)
			heap.Push(&rc.free, slot)
		}
	}
	for i := range items {
		slot, ok := rc.slots[items[i].id]
		if !ok {
			if len(rc.free) > 0 {
				slot = heap.Pop(&rc.free).(int)
			} else {
				slot = rc.next
				rc.next++
			}
			rc.slots[items[i].id] = slot
		}
		items[i].slot = slot
	}
}

// number of slots ever allocated
func (rc *recycler) slotCount() int {
	return rc.next
}

type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
