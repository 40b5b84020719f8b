package geo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_provider_fallbacks_total",
		Help: "Times the primary geo provider failed and the fallback was used",
	}, []string{"operation"})

	degradedResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_degraded_results_total",
		Help: "Times both providers failed and a synthesized result was served",
	}, []string{"operation"})
)
