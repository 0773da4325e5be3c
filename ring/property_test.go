package ring

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fastrand"
)

// Property: for any ring and any interleaving of N producers writing
// totals and M consumers, the multiset of values consumed equals the
// multiset produced, across several fixed producer/consumer/capacity
// shapes, with randomized producer jitter so repeated runs exercise
// different schedules.
func TestPropertyConservationRandomizedShapes(t *testing.T) {
	shapes := []struct{ capacity, producers, consumers, perProducer int }{
		{capacity: 4, producers: 1, consumers: 1, perProducer: 50},
		{capacity: 8, producers: 2, consumers: 2, perProducer: 75},
		{capacity: 16, producers: 3, consumers: 4, perProducer: 40},
		{capacity: 16, producers: 4, consumers: 4, perProducer: 60},
	}

	var rng fastrand.RNG
	for _, shape := range shapes {
		total := shape.producers * shape.perProducer
		if total%shape.consumers != 0 {
			continue
		}
		perConsumer := total / shape.consumers

		q := NewQueue[int](shape.capacity)
		seen := make([]int32, total)

		var pg sync.WaitGroup
		pg.Add(shape.producers)
		for p := 0; p < shape.producers; p++ {
			go func(p int) {
				defer pg.Done()
				c := q.NewProducer()
				base := p * shape.perProducer
				for i := 0; i < shape.perProducer; i++ {
					// Jittered start: a handful of goroutines racing
					// BeginWrite at slightly different moments exercises
					// more of the claim-ordering state space than a
					// lock-step launch would.
					if rng.Uint32n(8) == 0 {
						fastSpin(&rng)
					}
					q.Push(c, base+i)
				}
			}(p)
		}

		var cg sync.WaitGroup
		cg.Add(shape.consumers)
		for c := 0; c < shape.consumers; c++ {
			go func() {
				defer cg.Done()
				cur := q.NewConsumer()
				for n := 0; n < perConsumer; n++ {
					v := q.Pop(cur)
					require.True(t, v >= 0 && v < total, "value out of range: %d", v)
					require.Equal(t, int32(0), atomic.SwapInt32(&seen[v], 1), "value %d delivered twice", v)
				}
			}()
		}

		pg.Wait()
		cg.Wait()

		for v := 0; v < total; v++ {
			require.Equal(t, int32(1), atomic.LoadInt32(&seen[v]), "value %d never delivered", v)
		}
	}
}

// fastSpin burns a small, randomized number of iterations; used only to
// desynchronize goroutines in property tests, never in the core spin
// loops themselves.
func fastSpin(rng *fastrand.RNG) {
	for n := rng.Uint32n(64); n > 0; n-- {
	}
}

// Property: at all times -1 <= last_read <= next_read and
// last_read <= last_write <= next_write, sampled concurrently with
// ongoing traffic.
func TestPropertyWatermarkOrdering(t *testing.T) {
	const (
		capacity  = 16
		producers = 4
		consumers = 4
		perWorker = 2000
	)

	s := NewState(capacity)
	stop := make(chan struct{})
	var violation atomic.Bool

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			// Every counter only grows, so each lower bound is read
			// before the counters it is compared against.
			lr := s.lastRead.Load()
			nr, lw := s.nextRead.Load(), s.lastWrite.Load()
			nw := s.nextWrite.Load()
			if !(-1 <= lr && lr <= nr && lr <= lw && lw <= nw) {
				violation.Store(true)
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(producers + consumers)
	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			c := NewCursor(s)
			for n := 0; n < perWorker; n++ {
				c.BeginWrite()
				c.CommitWrite()
			}
		}()
	}
	for i := 0; i < consumers; i++ {
		go func() {
			defer wg.Done()
			c := NewCursor(s)
			for n := 0; n < perWorker; n++ {
				c.BeginRead()
				c.CommitRead()
			}
		}()
	}
	wg.Wait()
	close(stop)

	require.False(t, violation.Load(), "watermark ordering invariant violated")
}
