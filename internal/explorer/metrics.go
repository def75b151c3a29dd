package explorer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/chaininvestigator/internal/custompromauto"
)

var lookups = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "explorer_requests_total",
	Help:      "Number of explorer API requests, by source, operation and outcome",
}, []string{"source", "op", "outcome"})

func observe(source, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	lookups.WithLabelValues(source, op, outcome).Inc()
}
