// Package arc implements a lock-free atomically-replaceable reference
// counted pointer: a (control-block, data) pair that can be cloned,
// dropped, and atomically swapped as one unit so that no observer can
// ever see a torn pair or bump the refcount of a value that has already
// been destroyed.
//
// Go exposes no portable 128-bit compare-and-swap, so the pair is folded
// behind one pointer to an immutable Ref[T] and that pointer is what
// gets compare-and-swapped — a single-word CAS that replaces the entire
// pair atomically, standing in for a true double-word CAS. The
// BUSY-sentinel critical section from the original algorithm is kept
// regardless: it is what stops a concurrent Load from incrementing a
// refcount that a concurrent Store is mid-way through driving to zero, a
// race that a bare pointer swap alone does not prevent (see the comment
// on begin/commit in store.go).
package arc

import (
	"sync/atomic"

	"github.com/sadhbhc0d3/ringarc/internal/atomics"
)

// DestroyFunc releases the data block (and anything ctx refers to)
// backing a Ref once its refcount reaches zero; the ControlBlock itself
// is allocated by New and is not passed to it. It is invoked at most once per Ref
// lineage and is passed the same ctx supplied to New.
type DestroyFunc[T any] func(ctx any, data *T)

// ControlBlock holds the shared, interlocked refcount and destructor
// contract for one logical value. It is created once by New and lives as
// long as any Ref derived from it (by Clone) has not yet been dropped to
// zero.
type ControlBlock[T any] struct {
	refcount atomic.Int32
	ctx      any
	destroy  DestroyFunc[T]
}

// Ref is the (control-block, data) pair a caller holds locally: one
// strong reference, accounted for in ctrl's refcount. The zero value is
// the null Ref (IsNull reports true); it has no control block and never
// needs dropping.
type Ref[T any] struct {
	ctrl *ControlBlock[T]
	data *T
}

// IsNull reports whether r is the null reference.
func (r Ref[T]) IsNull() bool {
	return r.data == nil
}

// Data returns the referenced value, or nil if r is null.
func (r Ref[T]) Data() *T {
	return r.data
}

// New creates a fresh Ref with refcount 1. destroy is invoked exactly
// once, with ctx and the data pointer, when the last reference derived
// from this Ref is dropped. The caller's destroy function is responsible
// for freeing both the data block and anything ctx points to; New itself
// performs no allocation beyond the one ControlBlock.
func New[T any](data *T, ctx any, destroy DestroyFunc[T]) Ref[T] {
	cb := &ControlBlock[T]{ctx: ctx, destroy: destroy}
	cb.refcount.Store(1)
	return Ref[T]{ctrl: cb, data: data}
}

// Clone produces a second strong reference to the same value as src,
// incrementing its refcount. Cloning the null Ref is a no-op and returns
// the null Ref back.
func Clone[T any](src Ref[T]) Ref[T] {
	if src.data != nil {
		atomics.Increment32(&src.ctrl.refcount)
	}
	return src
}

// IsEqual reports whether a and b refer to the same underlying value
// (identity via the control-block pointer).
func IsEqual[T any](a, b Ref[T]) bool {
	return a.ctrl == b.ctrl
}

// dropReference atomically decrements r's refcount and returns the
// pre-decrement value. Dropping the null Ref is a no-op that returns 0.
func dropReference[T any](r Ref[T]) int32 {
	if r.data == nil {
		return 0
	}
	return atomics.Decrement32(&r.ctrl.refcount) + 1
}

// dropData invokes the destructor if preDecrement (the refcount observed
// just before this drop) was 1, meaning this drop was the last reference.
func dropData[T any](r Ref[T], preDecrement int32) {
	if preDecrement == 1 {
		r.ctrl.destroy(r.ctrl.ctx, r.data)
	}
}

// Drop releases one strong reference to r. If the post-decrement refcount
// is 0, the destructor is invoked. Drop returns the pre-decrement
// refcount (0 for an already-null Ref).
func Drop[T any](r Ref[T]) int32 {
	pre := dropReference(r)
	dropData(r, pre)
	return pre
}
