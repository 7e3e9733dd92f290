package metrics

import (
	"github.com/gxo-labs/prilog/internal/logger"
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts what the logger writes. It implements logger.Observer.
// Calls gated out by the threshold are never reported to it, so it has no
// counter for them.
type Collector struct {
	linesEmitted   *prometheus.CounterVec
	formatFailures prometheus.Counter
	writeErrors    prometheus.Counter
	// byLevel caches the per-level children so the hot path skips the
	// label lookup in CounterVec.
	byLevel [prilog.LevelEnabled + 1]prometheus.Counter
}

// Compile-time check to ensure Collector can be installed as an Observer.
var _ logger.Observer = (*Collector)(nil)

// NewCollector creates the counters under namespace. They are not
// registered until Register is called.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		linesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_emitted_total",
			Help:      "Log lines handed to the output stream, by level.",
		}, []string{"level"}),
		formatFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "format_failures_total",
			Help:      "Log lines whose message was replaced by the format-failure text.",
		}),
		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "Log lines whose write or flush returned an error.",
		}),
	}
	for level := prilog.LevelCritical; level <= prilog.LevelDebug; level++ {
		c.byLevel[level] = c.linesEmitted.WithLabelValues(level.String())
	}
	return c
}

// Register adds the collector's metrics to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.linesEmitted, c.formatFailures, c.writeErrors} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// LineEmitted increments lines_emitted_total for level.
func (c *Collector) LineEmitted(level prilog.Level) {
	if level.Loggable() {
		c.byLevel[level].Inc()
	}
}

// FormatFailed increments format_failures_total.
func (c *Collector) FormatFailed(prilog.Level) {
	c.formatFailures.Inc()
}

// WriteFailed increments write_errors_total.
func (c *Collector) WriteFailed(prilog.Level, error) {
	c.writeErrors.Inc()
}
