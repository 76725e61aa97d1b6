package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler provides a minimal liveness check endpoint. When DB is set the
// database is pinged as well.
type HealthHandler struct {
	DB Pinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.DB.PingContext(ctx); err != nil {
			res["status"] = "degraded"
			res["database"] = err.Error()
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, res)
			return
		}
		res["database"] = "ok"
	}

	render.JSON(w, r, res)
}
