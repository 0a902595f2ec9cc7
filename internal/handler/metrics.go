package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Orders created, by source (admin or payment).",
	}, []string{"source"})

	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Order status updates, by destination status.",
	}, []string{"status"})
)

var (
	paymentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "kafka_consumer",
		Name:      "payments_processed_total",
		Help:      "Payment-completion events turned into orders.",
	})

	paymentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "kafka_consumer",
		Name:      "payments_failed_total",
		Help:      "Payment-completion events that failed processing.",
	})

	paymentsDLQ = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "kafka_consumer",
		Name:      "payments_dlq_total",
		Help:      "Payment-completion events written to the DLQ.",
	})
)
