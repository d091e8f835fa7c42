// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scanctl"

// Collector holds the scanctl collectors. A nil *Collector records nothing.
type Collector struct {
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	loads           *prometheus.CounterVec
	systems         prometheus.Gauge
	polls           *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "commands_total",
				Help:      "Commands issued to the scanner, by mnemonic and result.",
			},
			[]string{"mnemonic", "result"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "command_duration_seconds",
				Help:      "Command round trip time in seconds.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"mnemonic"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scan",
				Name:      "loads_total",
				Help:      "Settings loads, by kind and result.",
			},
			[]string{"kind", "result"},
		),
		systems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "scan",
				Name:      "systems",
				Help:      "Systems in the last successfully loaded snapshot.",
			},
		),
		polls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "monitor",
				Name:      "polls_total",
				Help:      "Reception status polls, by result.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(c.commands, c.commandDuration, c.loads, c.systems, c.polls)
	return c
}

// ObserveCommand records one command exchange.
func (c *Collector) ObserveCommand(mnemonic, result string, d time.Duration) {
	if c == nil {
		return
	}
	c.commands.WithLabelValues(mnemonic, result).Inc()
	c.commandDuration.WithLabelValues(mnemonic).Observe(d.Seconds())
}

// ObserveLoad records one settings load. systems is only used for the scan
// kind when err is nil.
func (c *Collector) ObserveLoad(kind string, systems int, err error) {
	if c == nil {
		return
	}
	c.loads.WithLabelValues(kind, resultLabel(err)).Inc()
	if err == nil && kind == LoadScan {
		c.systems.Set(float64(systems))
	}
}

// ObservePoll records one reception status poll.
func (c *Collector) ObservePoll(err error) {
	if c == nil {
		return
	}
	c.polls.WithLabelValues(resultLabel(err)).Inc()
}

// Load kinds.
const (
	LoadScan   = "scan"
	LoadSystem = "system"
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
