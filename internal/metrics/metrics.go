package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes pipeline instrumentation. A nil *Recorder is valid and
// records nothing, so callers never need to guard.
type Recorder struct {
	runsTotal    *prometheus.CounterVec
	taskDuration *prometheus.HistogramVec
	retriesTotal *prometheus.CounterVec
	tokensTotal  *prometheus.CounterVec
}

// NewRecorder creates pipeline metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minerva_analysis_runs_total",
			Help: "Completed analysis runs by terminal status",
		}, []string{"status"}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "minerva_analysis_task_duration_seconds",
			Help:    "Wall-clock duration of one agent task execution",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"role"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minerva_model_call_retries_total",
			Help: "Model call retry attempts after transient failures",
		}, []string{"role"}),
		tokensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minerva_model_tokens_total",
			Help: "Model tokens consumed across analysis runs",
		}, []string{"kind"}),
	}

	reg.MustRegister(r.runsTotal, r.taskDuration, r.retriesTotal, r.tokensTotal)
	return r
}

// RunCompleted records one finished analysis run.
func (r *Recorder) RunCompleted(status string) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues(status).Inc()
}

// TaskExecuted records the duration of one agent task.
func (r *Recorder) TaskExecuted(role string, d time.Duration) {
	if r == nil {
		return
	}
	r.taskDuration.WithLabelValues(role).Observe(d.Seconds())
}

// ModelRetry records a retry attempt for one role's model call.
func (r *Recorder) ModelRetry(role string) {
	if r == nil {
		return
	}
	r.retriesTotal.WithLabelValues(role).Inc()
}

// TokensUsed records token consumption.
func (r *Recorder) TokensUsed(prompt, completion int) {
	if r == nil {
		return
	}
	r.tokensTotal.WithLabelValues("prompt").Add(float64(prompt))
	r.tokensTotal.WithLabelValues("completion").Add(float64(completion))
}
