package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db  HealthChecker
	log logrus.FieldLogger
}

func NewHealthHandler(db HealthChecker, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HandleHealth answers 200 when the database responds and 503 otherwise
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		h.log.WithError(err).Warn("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: "down"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: "up"})
}
