package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marhaba_messages_total",
			Help: "Messages processed, by detected intent and response path",
		},
		[]string{"intent", "path"},
	)

	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marhaba_provider_latency_seconds",
			Help:    "LLM provider call latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"provider", "status"},
	)

	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marhaba_fallback_total",
			Help: "Replies served by the template responder, by reason",
		},
		[]string{"reason"},
	)

	ActiveConversations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "marhaba_active_conversations",
			Help: "Conversations currently held in memory",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		MessagesTotal,
		ProviderLatency,
		FallbackTotal,
		ActiveConversations,
	)
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
