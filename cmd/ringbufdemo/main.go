// Command ringbufdemo drives a population of ring.Queue producers and
// consumers alongside a population of arc.Cell loaders and storers, and
// exposes their progress as Prometheus metrics. It exists to exercise
// ring and arc under realistic concurrent load; it is not part of
// either package's contract.
package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fastrand"
	"go.uber.org/zap"

	"github.com/sadhbhc0d3/ringarc/arc"
	"github.com/sadhbhc0d3/ringarc/internal/config"
	"github.com/sadhbhc0d3/ringarc/internal/telemetry"
	"github.com/sadhbhc0d3/ringarc/ring"
)

func main() {
	cfg := config.Load()

	logger, err := telemetry.NewLogger(cfg.Env)
	if err != nil {
		panic(fmt.Sprintf("ringbufdemo: failed to build logger: %v", err))
	}
	defer logger.Sync()

	telemetry.RegisterMetrics()

	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	logger.Info("starting ringbufdemo",
		zap.String("env", cfg.Env),
		zap.Int("rings", cfg.RingCount),
		zap.Int("ring_capacity", cfg.RingCapacity),
		zap.Int("producers", cfg.Producers),
		zap.Int("consumers", cfg.Consumers),
		zap.String("metrics_addr", cfg.MetricsAddr),
	)

	var wg sync.WaitGroup
	for i := 0; i < cfg.RingCount; i++ {
		wg.Add(1)
		go runRing(&wg, logger, cfg, fmt.Sprintf("ring-%d", i))
	}

	wg.Add(1)
	go runArcDemo(&wg, logger, cfg)

	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown error", zap.Error(err))
	}

	logger.Info("ringbufdemo finished")
}

// runRing spins up cfg.Producers producer goroutines and cfg.Consumers
// consumer goroutines over one ring.Queue[int] and blocks until every
// produced item has been consumed exactly once.
func runRing(outer *sync.WaitGroup, logger *zap.Logger, cfg *config.Config, name string) {
	defer outer.Done()

	q := ring.NewQueue[int](cfg.RingCapacity)
	total := cfg.Producers * cfg.ItemsPerProducer

	var produced, consumed int64
	var wg sync.WaitGroup
	wg.Add(cfg.Producers + cfg.Consumers)

	for p := 0; p < cfg.Producers; p++ {
		go func(p int) {
			defer wg.Done()
			id := uuid.New().String()
			c := q.NewProducer()
			for n := 0; n < cfg.ItemsPerProducer; n++ {
				q.Push(c, p*cfg.ItemsPerProducer+n)
				telemetry.ClaimsTotal.WithLabelValues(name, "producer").Inc()
				telemetry.CommitsTotal.WithLabelValues(name, "producer").Inc()
				atomic.AddInt64(&produced, 1)
			}
			logger.Debug("producer finished", zap.String("ring", name), zap.String("producer_id", id))
		}(p)
	}

	perConsumer := total / cfg.Consumers
	remainder := total % cfg.Consumers
	for cIdx := 0; cIdx < cfg.Consumers; cIdx++ {
		share := perConsumer
		if cIdx < remainder {
			share++
		}
		go func(cIdx, share int) {
			defer wg.Done()
			id := uuid.New().String()
			c := q.NewConsumer()
			for n := 0; n < share; n++ {
				q.Pop(c)
				telemetry.ClaimsTotal.WithLabelValues(name, "consumer").Inc()
				telemetry.CommitsTotal.WithLabelValues(name, "consumer").Inc()
				atomic.AddInt64(&consumed, 1)
			}
			logger.Debug("consumer finished", zap.String("ring", name), zap.String("consumer_id", id))
		}(cIdx, share)
	}

	wg.Wait()
	telemetry.RingDepth.WithLabelValues(name).Set(0)
	logger.Info("ring drained",
		zap.String("ring", name),
		zap.Int64("produced", atomic.LoadInt64(&produced)),
		zap.Int64("consumed", atomic.LoadInt64(&consumed)),
	)
}

type tagged struct {
	id    string
	value int
}

// runArcDemo runs cfg.ArcStorers goroutines publishing fresh values into
// a shared arc.Cell and cfg.ArcLoaders goroutines reading and dropping
// them, with fastrand-seeded jitter so repeated runs exercise different
// interleavings of Store against Load.
func runArcDemo(outer *sync.WaitGroup, logger *zap.Logger, cfg *config.Config) {
	defer outer.Done()

	cell := arc.NewCell[tagged]()
	cell.Store(arc.New(&tagged{id: uuid.New().String(), value: -1}, nil, destroyTagged))

	var wg sync.WaitGroup
	wg.Add(cfg.ArcLoaders + cfg.ArcStorers)

	for l := 0; l < cfg.ArcLoaders; l++ {
		go func(l int) {
			defer wg.Done()
			var rng fastrand.RNG
			for n := 0; n < cfg.ArcLoadIters; n++ {
				v := cell.Load()
				arc.Drop(v)
				if rng.Uint32n(32) == 0 {
					spin(&rng, rng.Uint32n(16))
				}
			}
		}(l)
	}

	for s := 0; s < cfg.ArcStorers; s++ {
		go func(s int) {
			defer wg.Done()
			var rng fastrand.RNG
			for n := 0; n < cfg.ArcStoreIters; n++ {
				v := arc.New(&tagged{id: uuid.New().String(), value: s*cfg.ArcStoreIters + n}, nil, destroyTagged)
				cell.Store(v)
				arc.Drop(v)
				spin(&rng, rng.Uint32n(32))
			}
		}(s)
	}

	wg.Wait()

	var null arc.Ref[tagged]
	cell.Store(null)

	logger.Info("arc demo finished",
		zap.Int("loaders", cfg.ArcLoaders),
		zap.Int("storers", cfg.ArcStorers),
	)
}

func destroyTagged(_ any, _ *tagged) {
	telemetry.ArcDestroysTotal.Inc()
}

func spin(rng *fastrand.RNG, n uint32) {
	for ; n > 0; n-- {
		_ = rng.Uint32()
	}
}
