package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Simulation Metrics
var (
	SweepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSweepsTotal,
			Help: HelpTextSweepsTotal,
		},
		[]string{LabelStrategy},
	)

	SweepErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSweepErrors,
			Help: HelpTextSweepErrors,
		},
		[]string{LabelStrategy},
	)

	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSweepDuration,
			Help:    HelpTextSweepDuration,
			Buckets: SweepDurationBuckets,
		},
		[]string{LabelStrategy},
	)

	SweepsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSweepsInFlight,
			Help: HelpTextSweepsInFlight,
		},
	)

	PlayersSimulated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayersSimulated,
			Help: HelpTextPlayersSimulated,
		},
	)

	CachedSweeps = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCachedSweeps,
			Help: HelpTextCachedSweeps,
		},
	)

	FormCorrections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFormCorrections,
			Help: HelpTextFormCorrections,
		},
		[]string{LabelField},
	)

	ReportsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReportsRendered,
			Help: HelpTextReportsRendered,
		},
		[]string{LabelFormat},
	)

	SweepsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSweepsThrottled,
			Help: HelpTextSweepsThrottled,
		},
	)
)

// RecordSweep records a completed sweep for the given strategy
func RecordSweep(strategy string, players int, elapsed time.Duration) {
	SweepsTotal.WithLabelValues(strategy).Inc()
	SweepDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	PlayersSimulated.Add(float64(players))
}

// RecordSweepError records a failed or cancelled sweep
func RecordSweepError(strategy string) {
	SweepErrors.WithLabelValues(strategy).Inc()
}
