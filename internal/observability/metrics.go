package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	adminErrorsTotal    *prometheus.CounterVec
	judgeCallsTotal     *prometheus.CounterVec
	gradingSeconds      prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		judgeCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "judge_calls_total",
			Help: "Total number of remote judge invocations by operation and outcome.",
		}, []string{"operation", "outcome"})

		gradingSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grading_pass_duration_seconds",
			Help:    "Wall-clock duration of one student's finish-contest grading pass.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		})

		prometheus.MustRegister(adminRequestsTotal, adminLatencySeconds, adminErrorsTotal, judgeCallsTotal, gradingSeconds)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// JudgeCalls exposes the counter for remote judge invocations.
func JudgeCalls() *prometheus.CounterVec {
	RegisterMetrics()
	return judgeCallsTotal
}

// GradingDuration exposes the finish-contest grading histogram.
func GradingDuration() prometheus.Histogram {
	RegisterMetrics()
	return gradingSeconds
}
