package coordinator

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "suited",
		Subsystem: "coordinator",
		Name:      "loads_total",
		Help:      "Total number of successful suite loads",
	})

	unloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suited",
		Subsystem: "coordinator",
		Name:      "unloads_total",
		Help:      "Total number of suite unloads by reason",
	}, []string{"reason"})

	cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "suited",
		Subsystem: "coordinator",
		Name:      "cache_hits_total",
		Help:      "Suite requests served from the cache",
	})

	cacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "suited",
		Subsystem: "coordinator",
		Name:      "cache_misses_total",
		Help:      "Suite requests that required a fresh load",
	})

	usedMemoryMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "suited",
		Subsystem: "coordinator",
		Name:      "used_memory_mb",
		Help:      "Aggregate estimated resident memory in MB",
	})

	activeSuites = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "suited",
		Subsystem: "coordinator",
		Name:      "active_suites",
		Help:      "Number of currently resident suites",
	})
)

func init() {
	prometheus.MustRegister(loadsTotal, unloadsTotal, cacheHitsTotal, cacheMissesTotal, usedMemoryMB, activeSuites)
}

// syncGauges refreshes the resident-state gauges. Callers hold the lock.
func (c *Coordinator) syncGauges() {
	usedMemoryMB.Set(float64(c.accountant.usedMB))
	activeSuites.Set(float64(c.cache.len()))
}
