package metrics

import "github.com/prometheus/client_golang/prometheus"

type Observer interface {
	Observe(val float64, labels ...string)

	// for now we will tightly couple to the prometheus collector type
	prometheus.Collector
}

type Metrics struct {
	// TMIMsgsCount counts PRIVMSGs received from TMI.
	TMIMsgsCount Observer
	// CommandCount counts dispatched command invocations, labeled by command name.
	CommandCount Observer
	// UnauthorizedCount counts commands dropped because the sender's role was
	// below the command's threshold.
	UnauthorizedCount Observer
	// SaveLatency observes how long persisting an aggregate takes, labeled by
	// aggregate name.
	SaveLatency Observer
}

func (m Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TMIMsgsCount,
		m.CommandCount,
		m.UnauthorizedCount,
		m.SaveLatency,
	}
}
