package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scanCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medstock_expiry_scan_cycles_total",
		Help: "Total number of completed expiry scan cycles",
	})

	scanFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medstock_expiry_scan_failures_total",
		Help: "Total number of expiry scan cycles that failed",
	})

	notificationsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medstock_notifications_enqueued_total",
		Help: "Total number of notifications handed to the send queue",
	}, []string{"band"})

	smsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medstock_sms_sent_total",
		Help: "Total number of SMS messages delivered by the queue worker",
	})

	smsSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medstock_sms_send_failures_total",
		Help: "Total number of SMS deliveries that failed",
	})
)
