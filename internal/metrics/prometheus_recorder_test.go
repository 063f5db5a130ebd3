package metrics

import (
	"os"
	"path/filepath"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_Counts(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg, "taskflow")

	pr.IncAuthAttempt("login")
	pr.IncAuthAttempt("login")
	pr.IncAuthResult("login", ResultSuccess)
	pr.IncAuthResult("login", ResultSuperseded)
	pr.IncLogout()
	pr.IncModeChange("dark")
	pr.IncPersistFailure("set")

	assert.Equal(t, 2.0, counterValue(t, reg, "taskflow_auth_attempts_total", "login"))
	assert.Equal(t, 1.0, counterValue(t, reg, "taskflow_auth_results_total", "login", ResultSuperseded))
	assert.Equal(t, 1.0, counterValue(t, reg, "taskflow_logouts_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "taskflow_display_mode_changes_total", "dark"))
	assert.Equal(t, 1.0, counterValue(t, reg, "taskflow_persist_failures_total", "set"))
}

// counterValue finds the counter sample in reg whose label values equal labels, in order.
func counterValue(t *testing.T, reg *prom.Registry, name string, labels ...string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			pairs := m.GetLabel()
			if len(pairs) != len(labels) {
				continue
			}
			for i, lp := range pairs {
				if lp.GetValue() != labels[i] {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg, "taskflow")
	pr.IncLogout()

	path := filepath.Join(t.TempDir(), "taskflow.prom")
	require.NoError(t, WriteTextfile(path, reg))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "taskflow_logouts_total 1")

	assert.NoError(t, WriteTextfile("", reg))
}

func TestOrNoop(t *testing.T) {
	assert.Equal(t, NoopRecorder{}, OrNoop(nil))
	pr := NewPrometheusRecorder(nil, "")
	assert.Same(t, pr, OrNoop(pr))
}
