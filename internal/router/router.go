// Package router wires the HTTP surface: middleware chain, public
// routes, and the bearer-protected /api group.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/aivalidation"
	"github.com/healthchain/service-claims-go/internal/alert"
	"github.com/healthchain/service-claims-go/internal/analytics"
	"github.com/healthchain/service-claims-go/internal/auth"
	"github.com/healthchain/service-claims-go/internal/claim"
	"github.com/healthchain/service-claims-go/internal/config"
	"github.com/healthchain/service-claims-go/internal/credential"
	"github.com/healthchain/service-claims-go/internal/faskes"
	"github.com/healthchain/service-claims-go/internal/iot"
	"github.com/healthchain/service-claims-go/internal/metrics"
)

const serviceVersion = "1.0.0"

// Deps carries everything the router mounts.
type Deps struct {
	Config    *config.Config
	Logger    *zap.SugaredLogger
	Tokens    *credential.TokenIssuer
	Collector metrics.Recorder
	Gatherer  prometheus.Gatherer

	Auth      *auth.Handler
	Claims    *claim.Handler
	Faskes    *faskes.Handler
	IoT       *iot.Handler
	AI        *aivalidation.Handler
	Alerts    *alert.Handler
	Analytics *analytics.Handler

	Limiter *RateLimiter
}

// New builds the chi router with the full middleware chain mounted.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(d.Logger, d.Collector))
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(d.Config.AllowedOrigins))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware())
	}

	// public surface
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "HealthChain.AI Claims API",
			"version": serviceVersion,
		})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "service-claims",
		})
	})
	r.Handle("/metrics", metrics.Handler(d.Gatherer))
	r.Post("/auth/signup", d.Auth.Signup)
	r.Post("/auth/login", d.Auth.Login)

	// everything under /api requires a bearer token
	r.Route("/api", func(api chi.Router) {
		api.Use(auth.RequireToken(d.Tokens))

		api.Post("/ai/validate-document", d.AI.ValidateDocument)
		api.Post("/ai/detect-fraud", d.AI.DetectFraud)

		api.Post("/claims/create", d.Claims.Create)
		api.Get("/claims", d.Claims.List)
		api.Get("/claims/user/{userID}", d.Claims.ListByUser)
		api.Get("/claims/{id}", d.Claims.Get)
		api.Put("/claims/{id}/status", d.Claims.UpdateStatus)

		api.Get("/faskes", d.Faskes.List)

		api.Get("/iot/devices/{faskesID}", d.IoT.ListDevices)
		api.Get("/iot/sensors/{faskesID}", d.IoT.ListSensors)
		api.Get("/iot/queue/{faskesID}", d.IoT.GetQueue)
		api.Post("/iot/update-queue", d.IoT.UpdateQueue)

		api.Get("/alerts", d.Alerts.List)
		api.Post("/alerts/create", d.Alerts.Create)

		api.Get("/analytics/dashboard/{role}", d.Analytics.Dashboard)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
