package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegistryProvider defines the interface for accessing the registry that
// holds the logger's counters. Consumers expose it via their chosen method
// (e.g., a Prometheus HTTP endpoint).
type RegistryProvider interface {
	// Registry returns the Prometheus registry containing prilog metrics.
	Registry() *prometheus.Registry
}
