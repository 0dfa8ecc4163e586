package health

import (
	"time"

	"cblls_server/storage"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthRoutesManager struct {
	logger    *gecho.Logger
	backend   storage.Backend
	startTime time.Time
}

func NewHealthRoutesManager(logger *gecho.Logger, backend storage.Backend) *HealthRoutesManager {
	return &HealthRoutesManager{
		logger:    logger,
		backend:   backend,
		startTime: time.Now(),
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/storage", hrm.GetStorageHealth)

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	// Register Prometheus metrics
	prometheus.MustRegister(HttpDuration, HttpRequests)
}
