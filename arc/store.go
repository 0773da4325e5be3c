package arc

import "sync/atomic"

// Cell is a shared, atomically replaceable slot holding one Ref[T]. All
// mutation goes through a two-phase critical section (begin, commit)
// bracketing a transient BUSY state: no observer ever sees BUSY from a
// successful Load, and no concurrent Store/Load can increment the
// refcount of a value another goroutine's Store is in the process of
// driving to zero, because both paths can only touch the cell's current
// value by first winning the CAS out of its present state into BUSY.
type Cell[T any] struct {
	v    atomic.Pointer[Ref[T]]
	busy *Ref[T]
}

// NewCell creates a null Cell.
func NewCell[T any]() *Cell[T] {
	c := &Cell[T]{busy: new(Ref[T])}
	c.v.Store(new(Ref[T]))
	return c
}

// begin acquires exclusive access to the cell's current value: it CASes
// the cell from whatever non-BUSY value it holds to BUSY and returns a
// pointer to the displaced value. It spins while the cell currently
// reads BUSY (another goroutine's critical section is in flight) or
// while it loses the CAS race to a concurrent begin.
//
// The returned pointer is the cell's own previously-published heap
// value; commit may republish it unchanged (Load's path) without any
// new allocation, or replace it with a freshly built one (Store's path).
func (c *Cell[T]) begin() *Ref[T] {
	for {
		old := c.v.Load()
		if old == c.busy {
			continue
		}
		if c.v.CompareAndSwap(old, c.busy) {
			return old
		}
	}
}

// commit publishes value into the cell, ending the critical section
// opened by begin. Only the goroutine that won begin can ever observe
// BUSY in the cell, so this CAS is guaranteed to succeed on its first
// attempt — no other goroutine can race it away from BUSY.
func (c *Cell[T]) commit(value *Ref[T]) {
	if !c.v.CompareAndSwap(c.busy, value) {
		panic("arc: commit lost the race out of BUSY, which should be impossible")
	}
}

// Store publishes newLocal into the cell, displacing and dropping
// whatever the cell previously held.
//
//	clone(newLocal)     -- pre-bump refcount for the cell's own reference
//	begin()             -- removes the old value from visibility
//	dropReference(old)  -- discount the cell's reference to the old value
//	commit(new)         -- publish the new value
//	dropData(old, ..)   -- destroy the old value if no observer remained
//
// Because begin's CAS is the only way any goroutine (Store or Load) can
// touch the cell's current contents, no concurrent Load can be holding a
// reference to "old" without having already gone through its own begin,
// which cannot happen while this Store's critical section is open.
//
// Store allocates exactly one small, immutable Ref[T] to publish; this is
// the cost of substituting one pointer-wide CAS for a true double-word
// CAS. Load below needs no such allocation.
func (c *Cell[T]) Store(newLocal Ref[T]) {
	newPair := Clone(newLocal)
	oldPtr := c.begin()
	old := *oldPtr
	preDecrement := dropReference(old)
	c.commit(&newPair)
	dropData(old, preDecrement)
}

// Load returns a cloned local copy of whatever the cell currently holds.
// The caller is responsible for eventually calling Drop on the result.
// Load performs no heap allocation: the value taken out by begin is
// republished to the cell unchanged by commit.
func (c *Cell[T]) Load() Ref[T] {
	oldPtr := c.begin()
	out := Clone(*oldPtr)
	c.commit(oldPtr)
	return out
}
