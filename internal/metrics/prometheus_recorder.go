package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus counters.
type PrometheusRecorder struct {
	authAttempts    *prom.CounterVec
	authResults     *prom.CounterVec
	logouts         prom.Counter
	modeChanges     *prom.CounterVec
	persistFailures *prom.CounterVec
}

// NewPrometheusRecorder constructs the counters under namespace and registers
// them with reg (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	if namespace == "" {
		namespace = "taskflow"
	}
	pr := &PrometheusRecorder{
		authAttempts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Authentication attempts dispatched to the verifier",
		}, []string{"op"}),
		authResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "auth_results_total",
			Help:      "Authentication attempts by resolution",
		}, []string{"op", "result"}),
		logouts: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Logouts that tore down a non-anonymous session",
		}),
		modeChanges: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "display_mode_changes_total",
			Help:      "Display mode commits by resulting mode",
		}, []string{"mode"}),
		persistFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Durable storage operations that failed and were absorbed",
		}, []string{"op"}),
	}
	reg.MustRegister(pr.authAttempts, pr.authResults, pr.logouts, pr.modeChanges, pr.persistFailures)
	return pr
}

func (p *PrometheusRecorder) IncAuthAttempt(op string) { p.authAttempts.WithLabelValues(op).Inc() }

func (p *PrometheusRecorder) IncAuthResult(op, result string) {
	p.authResults.WithLabelValues(op, result).Inc()
}

func (p *PrometheusRecorder) IncLogout() { p.logouts.Inc() }

func (p *PrometheusRecorder) IncModeChange(mode string) { p.modeChanges.WithLabelValues(mode).Inc() }

func (p *PrometheusRecorder) IncPersistFailure(op string) {
	p.persistFailures.WithLabelValues(op).Inc()
}

var _ Recorder = (*PrometheusRecorder)(nil)
