package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planpoker_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planpoker_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Room commands
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planpoker_commands_total",
			Help: "Room commands handled by the store",
		},
		[]string{"verb", "outcome"}, // outcome: ok or the rejection reason
	)

	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planpoker_rooms_created_total",
			Help: "Total rooms created",
		},
	)

	// Change feed
	ChangesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planpoker_changes_published_total",
			Help: "Row changes published to the change feed",
		},
		[]string{"table", "op"},
	)

	ChangePublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planpoker_change_publish_failures_total",
			Help: "Row changes that could not be published",
		},
		[]string{"table"},
	)

	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "planpoker_ws_clients",
			Help: "Connected websocket feed clients",
		},
	)

	WSDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planpoker_ws_dropped_clients_total",
			Help: "Websocket clients dropped for not keeping up",
		},
	)
)
