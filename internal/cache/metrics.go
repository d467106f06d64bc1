package cache

import "github.com/prometheus/client_golang/prometheus"

var (
	cellHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Cache cell reads served from a fresh snapshot",
		},
		[]string{"cache"},
	)

	cellMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Cache cell reads that required repopulation",
		},
		[]string{"cache"},
	)

	cellRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_refreshes_total",
			Help: "Forced cache cell refreshes",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(cellHits)
	prometheus.MustRegister(cellMisses)
	prometheus.MustRegister(cellRefreshes)
}
