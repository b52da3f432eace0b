package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts login outcomes ("success", "invalid_credentials", "error").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymdesk_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// TokensIssued counts issued session tokens.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gymdesk_tokens_issued_total",
		Help: "Total number of JWT session tokens issued",
	})

	// AuthorizationDenials counts rejected requests by reason ("invalid_token", "forbidden").
	AuthorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymdesk_authorization_denials_total",
		Help: "Total number of denied requests by reason",
	}, []string{"reason"})

	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymdesk_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-level Prometheus middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
