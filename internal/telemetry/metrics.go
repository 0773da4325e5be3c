package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the demo driver's Prometheus collectors: one depth gauge
// per ring (the demo sets it only once, to 0, when the ring has drained;
// it is not updated while items are in flight), counters for claims and
// commits split by producer/consumer role, and a counter for ARC
// destructor firings.
var (
	RingDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ringbufdemo_ring_depth",
		Help: "Occupied slot count of a ring; set to 0 once the ring has drained.",
	}, []string{"ring"})

	ClaimsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ringbufdemo_claims_total",
		Help: "Total BeginWrite/BeginRead claims made.",
	}, []string{"ring", "role"})

	CommitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ringbufdemo_commits_total",
		Help: "Total CommitWrite/CommitRead calls made.",
	}, []string{"ring", "role"})

	ArcDestroysTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ringbufdemo_arc_destroys_total",
		Help: "Total ARC cell values destroyed (refcount reached zero).",
	})
)

// RegisterMetrics registers all demo driver collectors against the
// default Prometheus registry. Call once at startup.
func RegisterMetrics() {
	prometheus.MustRegister(RingDepth, ClaimsTotal, CommitsTotal, ArcDestroysTotal)
}
