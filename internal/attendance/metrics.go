package attendance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var marksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "attendance",
		Name:      "marks_total",
		Help:      "Attendance mark operations issued by the reconciler, by op and outcome.",
	},
	[]string{"op", "outcome"},
)
