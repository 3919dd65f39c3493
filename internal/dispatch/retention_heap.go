package dispatch

import (
	"container/heap"
	"time"
)

// retentionScheduler orders terminal jobs by retention deadline so
// Retain can pop exactly the jobs that have matured instead of
// rescanning the whole job table every tick. Adapted from the
// teacher's processmgr.scheduler (a min-heap of deadlined events,
// there keyed by pid for a since-removed readiness-timeout feature),
// repurposed here to key by job id and retention deadline.
type retentionScheduler struct {
	h       retentionHeap
	entries map[int]*retentionEvent
}

type retentionEvent struct {
	jobID int
	when  time.Time
	index int
}

func newRetentionScheduler() *retentionScheduler {
	h := retentionHeap{}
	heap.Init(&h)
	return &retentionScheduler{h: h, entries: make(map[int]*retentionEvent)}
}

// push schedules jobID for reclamation at when, replacing any
// previously scheduled deadline for the same id (a job only ever
// holds one pending deadline: its most recent terminal transition).
func (s *retentionScheduler) push(jobID int, when time.Time) {
	if old, ok := s.entries[jobID]; ok {
		heap.Remove(&s.h, old.index)
		delete(s.entries, jobID)
	}
	ev := &retentionEvent{jobID: jobID, when: when}
	s.entries[jobID] = ev
	heap.Push(&s.h, ev)
}

// popDue removes and returns every job id whose deadline is at or
// before now, in deadline order.
func (s *retentionScheduler) popDue(now time.Time) []int {
	var due []int
	for len(s.h) > 0 && !s.h[0].when.After(now) {
		ev := heap.Pop(&s.h).(*retentionEvent)
		delete(s.entries, ev.jobID)
		due = append(due, ev.jobID)
	}
	return due
}

// remove cancels a job's pending deadline, if any. Retain does not
// call it: Retain's own popDue already drops each matured entry.
func (s *retentionScheduler) remove(jobID int) {
	ev, ok := s.entries[jobID]
	if !ok {
		return
	}
	heap.Remove(&s.h, ev.index)
	delete(s.entries, jobID)
}

type retentionHeap []*retentionEvent

func (h retentionHeap) Len() int            { return len(h) }
func (h retentionHeap) Less(i, j int) bool  { return h[i].when.Before(h[j].when) }
func (h retentionHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *retentionHeap) Push(x any) {
	ev := x.(*retentionEvent)
	ev.index = len(*h)
	*h = append(*h, ev)
}

func (h *retentionHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	ev.index = -1
	*h = old[:n-1]
	return ev
}
