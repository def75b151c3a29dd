package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/chaininvestigator/internal/custompromauto"
)

var (
	cacheHits = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "cache_hits_total",
		Help:      "Number of lookups served from the TTL cache, by operation",
	}, []string{"op"})

	cacheMisses = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "cache_misses_total",
		Help:      "Number of lookups that had to be computed, by operation",
	}, []string{"op"})

	cacheEvictions = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "cache_evictions_total",
		Help:      "Number of cache entries dropped by the size cap or the expiry sweep",
	})
)
