package probe

import (
	"errors"

	"github.com/SanjoDeundiak/process-probe/pkg/lib"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess      = "success"
	outcomeFailure      = "failure"
	outcomeLaunchFailed = "launch_failed"
)

// Metrics holds the probe's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	availabilityChecks *prometheus.CounterVec
	spawns             *prometheus.CounterVec
	lastExitStatus     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		availabilityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "process_probe_availability_checks_total",
			Help: "Number of command processor availability checks by result",
		}, []string{"result"}),
		spawns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "process_probe_spawns_total",
			Help: "Number of spawned commands by outcome",
		}, []string{"outcome"}),
		lastExitStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "process_probe_last_exit_status",
			Help: "Exit status of the most recently spawned command",
		}),
	}

	for _, c := range []prometheus.Collector{m.availabilityChecks, m.spawns, m.lastExitStatus} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeAvailability(available lib.Availability) {
	if m == nil {
		return
	}
	result := "unavailable"
	if available {
		result = "available"
	}
	m.availabilityChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) observeSpawn(status lib.ExitStatus, err error) {
	if m == nil {
		return
	}
	m.lastExitStatus.Set(float64(status))

	switch {
	case errors.Is(err, ErrFacilityUnavailable), errors.Is(err, ErrLaunchFailed), errors.Is(err, ErrEmptyCommand):
		m.spawns.WithLabelValues(outcomeLaunchFailed).Inc()
	case status.Success():
		m.spawns.WithLabelValues(outcomeSuccess).Inc()
	default:
		m.spawns.WithLabelValues(outcomeFailure).Inc()
	}
}
