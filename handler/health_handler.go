package handler

import (
	"net/http"
	"predictions-api/model"
)

// HealthCheck reports service liveness.
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} model.MessageResponse
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "API is healthy and running"})
}
