package blockflow

import (
	"errors"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "blockflow"

type metrics struct {
	ticks    prometheus.Counter
	sorts    prometheus.Counter
	ranks    prometheus.Gauge
	members  prometheus.Gauge
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, collection string, log logr.Logger) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Number of topological ticks run by the collection.",
		}),
		sorts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rank_recomputes_total",
			Help:      "Number of times the execution ranks were recomputed.",
		}),
		ranks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "ranks",
			Help:      "Number of execution ranks of the last recompute.",
		}),
		members: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "scheduled_members",
			Help:      "Number of leaf members of the last recompute.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tick_duration_seconds",
			Help:      "Duration of topological ticks.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	reg = prometheus.WrapRegistererWith(prometheus.Labels{"collection": collection}, reg)
	m.ticks = register(reg, m.ticks, log)
	m.sorts = register(reg, m.sorts, log)
	m.ranks = register(reg, m.ranks, log)
	m.members = register(reg, m.members, log)
	m.duration = register(reg, m.duration, log)
	return m
}

// register registers c. Collections sharing a name on one registerer share
// their series: the collector registered first is returned.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, log logr.Logger) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	log.Error(err, "Failed to register collection metric")
	return c
}

func (m *metrics) observeTick(d time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.duration.Observe(d.Seconds())
}

func (m *metrics) observeSort(members, ranks int) {
	if m == nil {
		return
	}
	m.sorts.Inc()
	m.members.Set(float64(members))
	m.ranks.Set(float64(ranks))
}
