package handlers

import (
	"net/http"

	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := &models.HealthResponse{
		Status:  "healthy",
		Service: "pr-pilot",
	}

	h.writeJSON(w, response, http.StatusOK)
}
