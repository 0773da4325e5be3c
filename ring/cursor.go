package ring

import "github.com/sadhbhc0d3/ringarc/internal/atomics"

// Cursor is a per-thread (per-goroutine) stream position against one
// State. It is not shared: exactly one goroutine drives a given Cursor.
// A Cursor holds no resources beyond a sequence number and is simply
// discarded when its goroutine stops participating.
type Cursor struct {
	state      *State
	currentPos int32
}

// NewCursor binds a new cursor to state, positioned before the first
// claim.
func NewCursor(state *State) *Cursor {
	return &Cursor{state: state, currentPos: -1}
}

// BeginWrite claims the next producer sequence number and spins until
// the corresponding slot is writable, returning the slot index to write
// into. The caller owns that slot exclusively until CommitWrite.
func (c *Cursor) BeginWrite() int {
	c.currentPos = atomics.Increment32(&c.state.nextWrite)

	for {
		atomics.Fence()
		available := c.state.capacity + c.state.lastRead.Load() - c.currentPos + 1
		if available >= 1 {
			break
		}
	}

	return int(c.currentPos & c.state.mask)
}

// CommitWrite publishes the claim most recently returned by BeginWrite.
// It blocks until every earlier claim has published, then advances the
// write watermark by exactly one.
func (c *Cursor) CommitWrite() {
	target := c.currentPos
	predecessor := target - 1

	for {
		atomics.Fence()
		if atomics.CompareAndSwap32(&c.state.lastWrite, predecessor, target) {
			return
		}
	}
}

// BeginRead claims the next consumer sequence number and spins until an
// element is available to read, returning the slot index to read from.
// The caller owns that slot exclusively until CommitRead.
func (c *Cursor) BeginRead() int {
	c.currentPos = atomics.Increment32(&c.state.nextRead)

	for {
		atomics.Fence()
		available := c.state.lastWrite.Load() - c.currentPos + 1
		if available >= 1 {
			break
		}
	}

	return int(c.currentPos & c.state.mask)
}

// CommitRead publishes the claim most recently returned by BeginRead.
// It blocks until every earlier read claim has published, then advances
// the read watermark by exactly one.
func (c *Cursor) CommitRead() {
	target := c.currentPos
	predecessor := target - 1

	for {
		atomics.Fence()
		if atomics.CompareAndSwap32(&c.state.lastRead, predecessor, target) {
			return
		}
	}
}
