package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/chaininvestigator/internal/custompromauto"
)

var (
	analyses = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "analyses_total",
		Help:      "Number of analyses performed, by identifier kind and resolved network",
	}, []string{"kind", "network"})

	analysisDuration = custompromauto.Auto().NewHistogramVec(prometheus.HistogramOpts{
		Namespace: custompromauto.Namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent gathering the facts of one identifier",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"kind"})
)
