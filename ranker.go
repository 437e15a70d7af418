package atlas

import (
	"container/heap"
	"sync"
)

// The ranker is a fixed-capacity best-K collector. Keeping the worst entry
// on top of a heap makes both the bound check and the eviction O(log K),
// so memory and latency stay proportional to the result cap rather than to
// the candidate count, which for a viewport scan is unbounded.

// rankHeap orders intermediate results worst-first so the heap root is the
// eviction candidate.
type rankHeap []intermediateResult

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return h[j].betterThan(h[i]) }
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x any) {
	*h = append(*h, x.(intermediateResult))
}

func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// rankHeapPool reuses heap storage across queries to reduce allocations.
var rankHeapPool = sync.Pool{
	New: func() any {
		return &rankHeap{}
	},
}

// ranker holds the best-K intermediate results seen so far.
type ranker struct {
	h *rankHeap
}

// newRanker takes heap storage from the pool.
func newRanker() *ranker {
	h := rankHeapPool.Get().(*rankHeap)
	*h = (*h)[:0]
	return &ranker{h: h}
}

// release returns the heap storage to the pool. The ranker must not be
// used afterwards.
func (r *ranker) release() {
	*r.h = (*r.h)[:0]
	rankHeapPool.Put(r.h)
	r.h = nil
}

// offer inserts res if the collection holds fewer than capacity entries,
// evicts the current worst if res ranks strictly better, and discards res
// otherwise.
func (r *ranker) offer(res intermediateResult, capacity int) {
	if capacity <= 0 {
		return
	}
	if r.h.Len() < capacity {
		heap.Push(r.h, res)
		return
	}
	if res.betterThan((*r.h)[0]) {
		heap.Pop(r.h)
		heap.Push(r.h, res)
	}
}

// drain removes and returns all collected results best-first. Draining an
// empty ranker yields nothing.
func (r *ranker) drain() []Result {
	n := r.h.Len()
	if n == 0 {
		return nil
	}
	out := make([]Result, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = heap.Pop(r.h).(intermediateResult).result
	}
	return out
}

// size returns the number of collected results.
func (r *ranker) size() int {
	return r.h.Len()
}
