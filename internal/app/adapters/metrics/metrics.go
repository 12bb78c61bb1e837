package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Notifications - решения фильтра по правилу.
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of notifications by decision and matched rule",
		},
		[]string{"decision", "rule"},
	)

	// DecisionTime - время принятия решения.
	DecisionTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notification_decision_seconds",
			Help:    "Time spent deciding whether a notification is delivered",
			Buckets: prometheus.ExponentialBuckets(0.000005, 2, 16),
		},
	)

	// ListMutations - изменения списков.
	ListMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "list_mutations_total",
			Help: "Total number of whitelist and blacklist changes",
		},
		[]string{"list", "op"},
	)

	SaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preferences_save_failures_total",
			Help: "Total number of failed preference saves",
		},
	)

	// WhitelistingEnabled - включена ли фильтрация.
	WhitelistingEnabled = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "whitelisting_enabled",
		Help: "Whether whitelisting is enabled (1) or disabled (0)",
	})

	HostConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "host_connected",
		Help: "Whether a host client is connected (1) or not (0)",
	})
)

func SetBool(g prometheus.Gauge, v bool) {
	if v {
		g.Set(1)
		return
	}
	g.Set(0)
}
