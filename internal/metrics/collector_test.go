package metrics_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gxo-labs/prilog/internal/logger"
	"github.com/gxo-labs/prilog/internal/metrics"
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestCollector_CountsEmittedLines(t *testing.T) {
	provider := metrics.NewPrometheusRegistryProvider()
	collector := metrics.NewCollector("test")
	require.NoError(t, collector.Register(provider.Registry()))

	var out bytes.Buffer
	log := logger.New("WARNING", logger.WithOutput(&out), logger.WithObserver(collector))

	log.Error("disk {} failed", 0)
	log.Warning("fan {} slow", 2)
	log.Warning("fan {} slow", 3)
	log.Info("gated out")
	log.Debug("gated out")
	log.Critical("{} {}", "missing")

	count, err := testutil.GatherAndCount(provider.Registry(), "test_lines_emitted_total")
	require.NoError(t, err)
	assert.Equal(t, 5, count, "one series per loggable level, created up front")

	reg := provider.Registry()
	assert.Equal(t, 2.0, emitted(t, reg, "test_lines_emitted_total", "WARNING"))
	assert.Equal(t, 1.0, emitted(t, reg, "test_lines_emitted_total", "ERROR"))
	assert.Equal(t, 1.0, emitted(t, reg, "test_lines_emitted_total", "CRITICAL"))
	assert.Equal(t, 0.0, emitted(t, reg, "test_lines_emitted_total", "INFO"), "gated calls are not counted")
	assert.Equal(t, 0.0, emitted(t, reg, "test_lines_emitted_total", "DEBUG"))
}

func TestCollector_FailureCounters(t *testing.T) {
	collector := metrics.NewCollector("failures")
	registry := metrics.NewPrometheusRegistryProvider().Registry()
	require.NoError(t, collector.Register(registry))

	log := logger.NewWithLevel(prilog.LevelEnabled, logger.WithOutput(failingWriter{}), logger.WithObserver(collector))
	log.Error("{}")
	log.Error("ok")

	expected := `
# HELP failures_format_failures_total Log lines whose message was replaced by the format-failure text.
# TYPE failures_format_failures_total counter
failures_format_failures_total 1
# HELP failures_write_errors_total Log lines whose write or flush returned an error.
# TYPE failures_write_errors_total counter
failures_write_errors_total 2
`
	err := testutil.GatherAndCompare(registry, bytes.NewBufferString(expected),
		"failures_format_failures_total", "failures_write_errors_total")
	assert.NoError(t, err)
}

func TestCollector_DoubleRegister(t *testing.T) {
	registry := metrics.NewPrometheusRegistryProvider().Registry()
	require.NoError(t, metrics.NewCollector("dup").Register(registry))
	assert.Error(t, metrics.NewCollector("dup").Register(registry))
}

func TestCollector_IgnoresSentinels(t *testing.T) {
	collector := metrics.NewCollector("sentinel")
	assert.NotPanics(t, func() {
		collector.LineEmitted(prilog.LevelDisabled)
		collector.LineEmitted(prilog.LevelEnabled)
		collector.LineEmitted(prilog.Level(42))
	})
}

// emitted reads lines_emitted_total{level} from the gathered registry.
func emitted(t *testing.T, reg *prometheus.Registry, name, level string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "level" && lp.GetValue() == level {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("series %s{level=%q} not found", name, level)
	return 0
}
