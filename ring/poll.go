package ring

import "github.com/sadhbhc0d3/ringarc/internal/atomics"

// PollBeginWrite claims the next producer sequence number and returns
// the candidate slot index immediately, without waiting for the slot to
// become writable. Callers must follow up with PollWriteReady before
// touching the slot.
//
// A polling claimant that never follows through with PollCommitWrite
// stalls every later commit on this ring forever — the coordinator has
// no mechanism to abandon a claim once reserved. Polling claimants must
// document, and honor, a commitment to complete.
func (c *Cursor) PollBeginWrite() int {
	c.currentPos = atomics.Increment32(&c.state.nextWrite)
	return int(c.currentPos & c.state.mask)
}

// PollWriteReady reports whether the slot claimed by the most recent
// PollBeginWrite is writable yet.
func (c *Cursor) PollWriteReady() bool {
	atomics.Fence()
	available := c.state.capacity + c.state.lastRead.Load() - c.currentPos + 1
	return available >= 1
}

// PollCommitWrite attempts to publish the most recent write claim with a
// single CAS. Callers that get false back must retry later; the claim is
// still outstanding.
func (c *Cursor) PollCommitWrite() bool {
	target := c.currentPos
	predecessor := target - 1
	return atomics.CompareAndSwap32(&c.state.lastWrite, predecessor, target)
}

// PollBeginRead claims the next consumer sequence number and returns the
// candidate slot index immediately, without waiting for an element to be
// available. See PollBeginWrite for the abandon-claim caveat.
func (c *Cursor) PollBeginRead() int {
	c.currentPos = atomics.Increment32(&c.state.nextRead)
	return int(c.currentPos & c.state.mask)
}

// PollReadReady reports whether the slot claimed by the most recent
// PollBeginRead has been published by its producer yet.
func (c *Cursor) PollReadReady() bool {
	atomics.Fence()
	available := c.state.lastWrite.Load() - c.currentPos + 1
	return available >= 1
}

// PollCommitRead attempts to publish the most recent read claim with a
// single CAS. Callers that get false back must retry later.
func (c *Cursor) PollCommitRead() bool {
	target := c.currentPos
	predecessor := target - 1
	return atomics.CompareAndSwap32(&c.state.lastRead, predecessor, target)
}
