package handler

import (
	"net/http"

	"github.com/evyataryagoni/ipgeo/internal/models"
)

// Health handles GET /health
// Returns 200 as long as the process can serve requests; providers are not probed
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
