package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mutctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mutctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	workerSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mutctl",
			Subsystem: "worker",
			Name:      "sessions_total",
			Help:      "Completed worker sessions by exit code.",
		},
		[]string{"node", "exit_code", "success"},
	)
	workerSessionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mutctl",
			Subsystem: "worker",
			Name:      "session_duration_seconds",
			Help:      "Worker session duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "exit_code", "success"},
	)
	resultRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mutctl",
			Subsystem: "worker",
			Name:      "result_records_total",
			Help:      "Result records received from workers.",
		},
		[]string{"node", "kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			workerSessions,
			workerSessionDuration,
			resultRecords,
		)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordWorkerSession(node, exitCode string, success bool, duration time.Duration) {
	RegisterMetrics()
	successLabel := strconv.FormatBool(success)
	workerSessions.WithLabelValues(node, exitCode, successLabel).Inc()
	workerSessionDuration.WithLabelValues(node, exitCode, successLabel).
		Observe(duration.Seconds())
}

func RecordResultRecords(node, kind string, count uint64) {
	RegisterMetrics()
	resultRecords.WithLabelValues(node, kind).Add(float64(count))
}
