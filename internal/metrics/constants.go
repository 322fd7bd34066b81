package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Simulation metric names
const (
	MetricNameSweepsTotal      = "sweeps_total"
	MetricNameSweepErrors      = "sweep_errors_total"
	MetricNameSweepDuration    = "sweep_duration_seconds"
	MetricNameSweepsInFlight   = "sweeps_in_flight"
	MetricNamePlayersSimulated = "players_simulated_total"
	MetricNameCachedSweeps     = "cached_sweeps"
	MetricNameFormCorrections  = "form_corrections_total"
	MetricNameReportsRendered  = "reports_rendered_total"
	MetricNameSweepsThrottled  = "sweeps_throttled_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Simulation metric help text
const (
	HelpTextSweepsTotal      = "Total number of completed probability sweeps"
	HelpTextSweepErrors      = "Total number of sweeps that failed or were cancelled"
	HelpTextSweepDuration    = "Wall-clock duration of a full probability sweep in seconds"
	HelpTextSweepsInFlight   = "Current number of sweeps being computed"
	HelpTextPlayersSimulated = "Total number of simulated players across all sweeps"
	HelpTextCachedSweeps     = "Number of sweep results currently held in the cache"
	HelpTextFormCorrections  = "Total number of form fields replaced by a default or clamped"
	HelpTextReportsRendered  = "Total number of sweep reports rendered"
	HelpTextSweepsThrottled  = "Total number of sweeps refused because the client's step budget was spent"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelStrategy = "strategy"
	LabelField    = "field"
	LabelFormat   = "format"
)

// UnmatchedRoute labels requests that did not resolve to a router pattern
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SweepDurationBuckets spans small interactive sweeps up to multi-minute batch runs.
var SweepDurationBuckets = []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300}
