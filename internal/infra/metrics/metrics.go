package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

var probesTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "hamonitor_probes_total",
		Help: "Total number of reachability probes by target kind and result.",
	},
	[]string{"kind", "result"},
)

var transitionsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "hamonitor_transitions_total",
		Help: "Total number of committed state transitions by target kind and new status.",
	},
	[]string{"kind", "status"},
)

var flapsAbsorbedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "hamonitor_flaps_absorbed_total",
		Help: "Total number of failures that recovered inside the debounce window.",
	},
	[]string{"kind"},
)

var notificationFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "hamonitor_notification_failures_total",
		Help: "Total number of alerts the notifier failed to deliver.",
	},
)

var cyclePanicsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "hamonitor_cycle_panics_total",
		Help: "Total number of host check cycles aborted by a recovered panic.",
	},
	[]string{"host"},
)

var targetUp = promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "hamonitor_target_up",
		Help: "Current confirmed status of a target (1 up, 0 down).",
	},
	[]string{"kind", "target"},
)

// RecordProbe counts one probe outcome.
func RecordProbe(kind string, ok bool) {
	result := resultFailure
	if ok {
		result = resultSuccess
	}

	probesTotal.WithLabelValues(kind, result).Inc()
}

// RecordTransition counts a committed transition and updates the target gauge.
func RecordTransition(kind, target, status string, up bool) {
	transitionsTotal.WithLabelValues(kind, status).Inc()
	SetTargetUp(kind, target, up)
}

// RecordFlapAbsorbed counts a failure that recovered before the debounce window elapsed.
func RecordFlapAbsorbed(kind string) {
	flapsAbsorbedTotal.WithLabelValues(kind).Inc()
}

// RecordNotificationFailure counts an alert that could not be delivered.
func RecordNotificationFailure() {
	notificationFailuresTotal.Inc()
}

// RecordCyclePanic counts a recovered panic in a host task.
func RecordCyclePanic(host string) {
	cyclePanicsTotal.WithLabelValues(host).Inc()
}

// SetTargetUp sets the status gauge of a target.
func SetTargetUp(kind, target string, up bool) {
	value := 0.0
	if up {
		value = 1
	}

	targetUp.WithLabelValues(kind, target).Set(value)
}

var componentHealthy = promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "hamonitor_component_healthy",
		Help: "Result of the last internal health ping per component (1 ok, 0 failing).",
	},
	[]string{"component"},
)

// SetComponentHealthy records the outcome of the last internal health ping of a component.
func SetComponentHealthy(component string, ok bool) {
	value := 0.0
	if ok {
		value = 1
	}

	componentHealthy.WithLabelValues(component).Set(value)
}
