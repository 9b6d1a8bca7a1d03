package agenda

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var mutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "agenda",
		Name:      "mutations_total",
		Help:      "Agenda mutation attempts by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

func countMutation(operation string, code ResultCode) {
	mutationsTotal.WithLabelValues(operation, string(code)).Inc()
}
