package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var extractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "extraction_duration_seconds",
	Help:    "Time spent extracting text, labelled by document format.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"format"})

var credentialAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "credential_attempts_total",
	Help: "Model calls per credential outcome.",
}, []string{"outcome"})

var credentialPoolExhausted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "credential_pool_exhausted_total",
	Help: "Requests for which every configured credential failed.",
})

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent processing one document job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func CaptureExtractionMetrics(format string, timeElapsed time.Duration) {
	extractionDuration.WithLabelValues(format).Observe(timeElapsed.Seconds())
}

func CaptureCredentialAttempt(outcome string) {
	credentialAttempts.WithLabelValues(outcome).Inc()
}

func IncrementCredentialExhausted() {
	credentialPoolExhausted.Inc()
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
