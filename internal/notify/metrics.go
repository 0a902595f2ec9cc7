package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "backoffice",
	Subsystem: "notify",
	Name:      "attempts_total",
	Help:      "Notification dispatch attempts by channel and outcome.",
}, []string{"channel", "status"})
