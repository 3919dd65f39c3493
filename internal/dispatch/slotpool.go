package dispatch

import "sync"

// slotPool is a fixed-capacity, ownership-tracked admission gate.
// Adapted from the teacher's processmgr.slotPool: same acquired-by-id
// bookkeeping, but trimmed to the non-blocking operations the scanner
// needs. The supervisor is single-threaded, so a blocking acquire would
// just deadlock the foreground loop; a full pipeline spawn that can't
// get a slot simply stays `created` and is retried next tick, the same
// way a failed printer-open or fork is retried (§4.3).
type slotPool struct {
	mu         sync.Mutex
	maxCap     int
	usage      int
	acquiredBy map[int]struct{}
}

func newSlotPool(max int) *slotPool {
	return &slotPool{maxCap: max, acquiredBy: make(map[int]struct{})}
}

// tryAcquire attempts a non-blocking acquire for owner id. Re-acquiring
// an id that already holds a slot is a no-op success (idempotent),
// since the scanner may see the same created job again before its
// spawn attempt resolves.
func (s *slotPool) tryAcquire(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, holds := s.acquiredBy[id]; holds {
		return true
	}
	if s.usage >= s.maxCap {
		return false
	}
	s.usage++
	s.acquiredBy[id] = struct{}{}
	return true
}

// release frees the slot owned by id, if any. Releasing a non-owner is
// a harmless no-op (the job may never have acquired a slot, or may
// already have been released).
func (s *slotPool) release(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, holds := s.acquiredBy[id]; !holds {
		return
	}
	delete(s.acquiredBy, id)
	s.usage--
}
