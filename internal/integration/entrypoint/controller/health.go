package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	backendChecker func(ctx context.Context) error
	driver         string
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Backend   string `json:"backend"`
	Driver    string `json:"driver"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(backendChecker func(ctx context.Context) error, driver string) *HealthController {
	return &HealthController{
		backendChecker: backendChecker,
		driver:         driver,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its persistence backend.
func (h *HealthController) Check(c *gin.Context) {
	backendStatus := "disconnected"
	if h.backendChecker != nil && h.backendChecker(c.Request.Context()) == nil {
		backendStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		Backend:   backendStatus,
		Driver:    h.driver,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
