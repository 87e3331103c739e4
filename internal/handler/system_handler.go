package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports ready only when the database answers and the schema is migrated.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		logrus.WithError(err).Warn("Health check: database unreachable")
		writeSuccess(w, HealthResponse{Status: "unavailable", Database: "unreachable"}, http.StatusServiceUnavailable)
		return
	}

	if err := h.TablesService.Healthy(r.Context()); err != nil {
		logrus.WithError(err).Warn("Health check: schema incomplete")
		writeSuccess(w, HealthResponse{Status: "unavailable", Database: "not migrated"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "ok"}, http.StatusOK)
}
