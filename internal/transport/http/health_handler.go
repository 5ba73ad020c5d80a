package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler reports process liveness plus dataset cache effectiveness.
type HealthHandler struct {
	startedAt  time.Time
	cacheStats func() map[string]interface{}
}

// NewHealthHandler creates a health handler. cacheStats may be nil.
func NewHealthHandler(cacheStats func() map[string]interface{}) *HealthHandler {
	return &HealthHandler{
		startedAt:  time.Now(),
		cacheStats: cacheStats,
	}
}

// ServeHTTP handles GET /healthz.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	}
	if h.cacheStats != nil {
		body["dataset_cache"] = h.cacheStats()
	}
	render.JSON(w, r, body)
}
