// Package custompromauto holds the process wide metrics registry. Collectors registered here are the only
// ones served on /metrics.
package custompromauto

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "chaininvestigator"

var registry *prometheus.Registry
var auto promauto.Factory

func init() {
	registry = prometheus.NewRegistry()
	auto = promauto.With(registry)
}

func Auto() promauto.Factory {
	return auto
}

func Registry() *prometheus.Registry {
	return registry
}

// RegisterRuntimeCollectors adds the go runtime and process collectors to the registry.
// It is called once from main; tests keep the registry free of them.
func RegisterRuntimeCollectors() error {
	err := registry.Register(collectors.NewGoCollector())
	if err != nil {
		return err
	}
	return registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}))
}
