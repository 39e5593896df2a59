// Package metrics exposes Prometheus instrumentation for the advisor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace        = "greencloud"
	advisorSubsystem = "advisor"
	reportSubsystem  = "report"
)

var (
	// RecommendationRequests counts recommendation runs by outcome
	RecommendationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: advisorSubsystem,
			Name:      "recommendation_total",
			Help:      "Number of recommendation runs by outcome",
		},
		[]string{"outcome"}, // "recommended", "no_viable_region", "error"
	)

	// RecommendationLatency measures end-to-end recommendation latency
	RecommendationLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: advisorSubsystem,
			Name:      "recommendation_duration_seconds",
			Help:      "Latency of recommendation runs including carbon data fetches",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// RegionCarbonIntensity tracks the latest intensity observed per region
	RegionCarbonIntensity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: advisorSubsystem,
			Name:      "carbon_intensity",
			Help:      "Latest carbon intensity (gCO2eq/kWh) observed for a region",
		},
		[]string{"region", "method"}, // method: "location_based", "market_based"
	)

	// CarbonFetches counts carbon intensity lookups by result
	CarbonFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: advisorSubsystem,
			Name:      "carbon_fetch_total",
			Help:      "Number of carbon intensity lookups by result",
		},
		[]string{"result"}, // "success", "error", "static_fallback"
	)

	// LLMRequests counts model invocations by operation and result
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: reportSubsystem,
			Name:      "llm_request_total",
			Help:      "Number of model invocations by operation and result",
		},
		[]string{"operation", "result"}, // operation: "chat", "summary", "insights"
	)

	// LLMRequestDuration measures model invocation latency by operation
	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: reportSubsystem,
			Name:      "llm_request_duration_seconds",
			Help:      "Latency of model invocations by operation",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"operation"},
	)

	// ReportUploads counts emissions report uploads by format and result
	ReportUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: reportSubsystem,
			Name:      "upload_total",
			Help:      "Number of emissions report uploads by format and result",
		},
		[]string{"format", "result"}, // format: "csv", "json"
	)
)

func init() {
	// Register all metrics with the default registry
	prometheus.MustRegister(RecommendationRequests)
	prometheus.MustRegister(RecommendationLatency)
	prometheus.MustRegister(RegionCarbonIntensity)
	prometheus.MustRegister(CarbonFetches)
	prometheus.MustRegister(LLMRequests)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(ReportUploads)
}
