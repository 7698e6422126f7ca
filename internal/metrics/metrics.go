// Package metrics exposes the process-wide Prometheus collectors. They are
// registered on the default registry and served by the API's /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockbot_movements_applied_total",
		Help: "Stock movements successfully applied and persisted.",
	}, []string{"category", "direction"})

	SummariesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockbot_summaries_published_total",
		Help: "Summary messages sent or edited, by target channel kind.",
	}, []string{"target"})

	PublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockbot_publish_errors_total",
		Help: "Failed summary publish attempts.",
	})
)
