package api

import (
	"net/http"

	"github.com/okian/competency/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler serves Prometheus metrics as the liveness probe.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a handler over the service metrics registry.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h.metrics.ServeHTTP(w, r)
}
