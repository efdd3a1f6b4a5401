package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cassiomorais/threeds-gateway/internal/gateway"
	"github.com/cassiomorais/threeds-gateway/internal/infrastructure/config"
	"github.com/cassiomorais/threeds-gateway/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/threeds-gateway/internal/middleware"
)

// threeDSEndpoints is the inbound surface advertised by the health probe.
var threeDSEndpoints = []string{
	"POST /api/threeds/initiate-authentication",
	"POST /api/threeds/authenticate-payer",
	"POST /api/threeds/retrieve-order",
	"POST /api/threeds/authorize-pay",
	"POST /api/threeds/test-config",
	"GET /health",
}

type RouterDeps struct {
	ServiceName string
	Flows       *gateway.Service
	Metrics     *observability.Metrics
	CORSConfig  config.CORSConfig
	// RateLimitPerMinute disables rate limiting when zero.
	RateLimitPerMinute int
	// AuthSecret disables bearer auth when empty.
	AuthSecret string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	// Outbound gateway calls may take up to 30s; leave headroom on top.
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.SecurityHeaders())
	r.Use(customMW.Metrics(deps.Metrics))
	if deps.RateLimitPerMinute > 0 {
		r.Use(customMW.RateLimit(deps.RateLimitPerMinute))
	}

	healthH := NewHealthController(deps.ServiceName, threeDSEndpoints)
	threeDSH := NewThreeDSController(deps.Flows)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/threeds", func(r chi.Router) {
		if deps.AuthSecret != "" {
			r.Use(customMW.RequireAuth(deps.AuthSecret))
		}

		r.Post("/initiate-authentication", threeDSH.InitiateAuthentication)
		r.Post("/authenticate-payer", threeDSH.AuthenticatePayer)
		r.Post("/retrieve-order", threeDSH.RetrieveOrder)
		r.Post("/authorize-pay", threeDSH.AuthorizePay)
		r.Post("/test-config", threeDSH.TestConfig)
	})

	return r
}
