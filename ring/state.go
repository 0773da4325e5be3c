// Package ring implements a bounded, lock-free FIFO coordinator for any
// number of concurrent producers and consumers (MPMC). The coordinator
// hands out slot indices; it does not own the element storage itself —
// callers index their own backing array with the position a claim
// returns. See Queue for a convenience wrapper that owns the array too.
//
// Claims are reserved with a single atomic increment, giving total order
// among any number of claimants. Commits publish in strict sequence-
// number order: a commit for position p blocks until position p-1 has
// published, so a watermark read by any observer implies every slot up
// to it is fully written. There are no locks, no allocation, and no
// calls that could block on the OS scheduler — every wait is a tight
// spin on an atomic load.
package ring

import "sync/atomic"

// State is the shared coordinator for one ring. One State is created by
// whoever owns the backing element array and must outlive every Cursor
// that references it.
type State struct {
	_         [64]byte
	capacity  int32
	mask      int32
	_         [64]byte
	nextWrite atomic.Int32
	_         [64]byte
	lastWrite atomic.Int32
	_         [64]byte
	nextRead  atomic.Int32
	_         [64]byte
	lastRead  atomic.Int32
	_         [64]byte
}

// NewState creates a ring coordinator for a backing array of the given
// capacity. Capacity must be a power of two, at least 2. The caller is
// responsible for never running more than capacity/2 live cursors
// (producers + consumers combined) against this State: beyond that bound
// the signed 32-bit sequence arithmetic can alias in-flight claims, and
// the coordinator has no way to detect the violation.
func NewState(capacity int) *State {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of two and >= 2")
	}

	s := &State{
		capacity: int32(capacity),
		mask:     int32(capacity - 1),
	}
	s.nextWrite.Store(-1)
	s.lastWrite.Store(-1)
	s.nextRead.Store(-1)
	s.lastRead.Store(-1)
	return s
}

// Capacity returns the fixed ring capacity.
func (s *State) Capacity() int {
	return int(s.capacity)
}
