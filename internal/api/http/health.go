package http

import (
	"net/http"
	"time"

	"github.com/ajshul/focusflow/internal/api/respond"
	"github.com/ajshul/focusflow/internal/store"
)

// HealthHandler reports store reachability and degradation.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(st store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// degradable is implemented by the resilient store wrapper. Other store
// drivers simply never report degraded.
type degradable interface {
	Degraded() bool
}

// CheckHealth handles GET /v0/health. A service running on its in-memory
// fallback is still UP; the response carries store:"degraded" so operators
// can tell.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{
		"status":    "UP",
		"store":     "primary",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if err := h.store.HealthCheck(r.Context()); err != nil {
		status = http.StatusInternalServerError
		body["status"] = "DOWN"
		body["message"] = err.Error()
	} else if d, ok := h.store.(degradable); ok && d.Degraded() {
		body["store"] = "degraded"
	}

	respond.WriteJSON(w, status, body)
}
