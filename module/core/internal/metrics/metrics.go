package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Transitions          *prometheus.CounterVec
	TransitionErrors     prometheus.Counter
	ProximityChecks      *prometheus.CounterVec
	ProximityFailures    prometheus.Counter
	RegistrationFailures prometheus.Counter
	PositionsIngested    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "transitions_total",
			Help:      "Transition events applied by the background handler, by kind.",
		}, []string{"kind"}),
		TransitionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "transition_errors_total",
			Help:      "Transition events discarded because they carried an error.",
		}),
		ProximityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "proximity_checks_total",
			Help:      "Completed on-demand proximity checks, by classification.",
		}, []string{"classification"}),
		ProximityFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "proximity_failures_total",
			Help:      "On-demand proximity checks that could not obtain a position.",
		}),
		RegistrationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "registration_failures_total",
			Help:      "Failed attempts to start geofence monitoring.",
		}),
		PositionsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geofence",
			Name:      "positions_ingested_total",
			Help:      "Position fixes stored from the device feed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.TransitionErrors, m.ProximityChecks,
			m.ProximityFailures, m.RegistrationFailures, m.PositionsIngested)
	}
	return m
}
