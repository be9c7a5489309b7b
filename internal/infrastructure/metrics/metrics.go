package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/personfinder/person-finder/internal/domain/search"
)

// Person-finder metrics - using explicit registration
var (
	// HTTP request counters
	RequestsTotal *prometheus.CounterVec

	// Search outcomes by final view status and error kind
	SearchesTotal *prometheus.CounterVec

	// Submissions discarded because a newer one replaced them
	SupersededTotal prometheus.Counter

	// Records per source network, including the unrendered unknown bucket
	RecordsTotal *prometheus.CounterVec

	// Upstream latency per backend (webhook or fixture)
	UpstreamLatency *prometheus.HistogramVec
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "person_finder",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "person_finder",
			Name:      "searches_total",
			Help:      "Settled searches by outcome and error kind",
		},
		[]string{"outcome", "error_kind"},
	)

	SupersededTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "person_finder",
			Name:      "superseded_total",
			Help:      "Search outcomes discarded because a newer submission replaced them",
		},
	)

	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "person_finder",
			Name:      "records_total",
			Help:      "Records returned per source network",
		},
		[]string{"source"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "person_finder",
			Name:      "upstream_latency_seconds",
			Help:      "Upstream response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"backend", "status"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SupersededTotal)
	prometheus.MustRegister(RecordsTotal)
	prometheus.MustRegister(UpstreamLatency)
	log.Debug().Msg("person-finder metrics registered with Prometheus")
}

// RecordRequest records an HTTP request
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordUpstreamLatency records one upstream round trip
func RecordUpstreamLatency(backend, status string, durationSec float64) {
	if status == "" {
		status = "unknown"
	}
	UpstreamLatency.WithLabelValues(backend, status).Observe(durationSec)
}

// RecordSuperseded counts a discarded submission
func RecordSuperseded() {
	SupersededTotal.Inc()
}

// RecordViewState is a search.Observer that counts settled searches.
func RecordViewState(state search.ViewState) {
	switch state.Status {
	case search.StatusSuccess:
		SearchesTotal.WithLabelValues("success", "").Inc()
		if state.Buckets != nil {
			RecordsTotal.WithLabelValues(string(search.SourceLinkedIn)).Add(float64(len(state.Buckets.LinkedIn)))
			RecordsTotal.WithLabelValues(string(search.SourceFacebook)).Add(float64(len(state.Buckets.Facebook)))
			RecordsTotal.WithLabelValues(string(search.SourceTwitter)).Add(float64(len(state.Buckets.Twitter)))
			RecordsTotal.WithLabelValues(string(search.SourceUnknown)).Add(float64(len(state.Buckets.Unknown)))
		}
	case search.StatusFailure:
		kind := string(search.ErrorKindUnknown)
		if state.Failure != nil {
			kind = string(state.Failure.Kind)
		}
		SearchesTotal.WithLabelValues("failure", kind).Inc()
	}
}
