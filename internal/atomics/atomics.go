// Package atomics is the narrow contract between the lock-free core
// (ring, arc) and the hardware atomic primitives it depends on: 32-bit
// interlocked increment/decrement, 32-bit compare-and-swap, and a full
// memory fence. Every interlocked increment, decrement, or 32-bit CAS in
// ring or arc (watermark claims and commits, ARC refcounting) goes
// through this package; the two documented exceptions are a plain
// unconditional atomic.Int32.Store used once to initialize a fresh
// refcount to 1 (arc.New), and the atomic.Pointer CAS arc.Cell uses to
// swap the (control-block, data) pair itself, which this package has no
// generic pointer-width equivalent for.
package atomics

import "sync/atomic"

// Increment32 atomically adds 1 to *addr and returns the new value, the
// Go equivalent of InterlockedIncrement.
func Increment32(addr *atomic.Int32) int32 {
	return addr.Add(1)
}

// Decrement32 atomically subtracts 1 from *addr and returns the new
// value, the Go equivalent of InterlockedDecrement.
func Decrement32(addr *atomic.Int32) int32 {
	return addr.Add(-1)
}

// CompareAndSwap32 is the 32-bit compare-and-swap host primitive: if
// *addr == old, store new and return true; otherwise leave *addr
// untouched and return false.
func CompareAndSwap32(addr *atomic.Int32, old, new int32) bool {
	return addr.CompareAndSwap(old, new)
}

// Fence issues the full memory fence every spin iteration of a blocking
// claim/commit loop is required to perform before re-reading a watermark.
//
// Go's memory model (since go1.19) gives every sync/atomic operation
// sequentially consistent semantics: an atomic load already cannot be
// reordered past a preceding atomic store on another goroutine in a way
// that would let a spinner observe a stale watermark forever. Fence is
// therefore a deliberate no-op marker, kept as a named call site (rather
// than inlined away) so each spin loop in ring has one line that
// maps directly to the "MemoryBarrier()" call in the host primitives
// this package stands in for.
func Fence() {}
