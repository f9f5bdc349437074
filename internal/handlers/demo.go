package handlers

import (
	"net/http"

	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/service"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"

	"github.com/gin-gonic/gin"
)

type DemoHandler struct {
	seed *service.SeedService
	hub  *stream.Hub
}

func NewDemoHandler(seed *service.SeedService, hub *stream.Hub) *DemoHandler {
	return &DemoHandler{seed: seed, hub: hub}
}

// Seed godoc
// @Summary      Seed demo data if the store is empty
// @Tags         demo
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /demo/seed [post]
func (h *DemoHandler) Seed(c *gin.Context) {
	if err := h.seed.SeedDemoData(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed demo data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo data seeded successfully"})
}

// Reset godoc
// @Summary      Clear all data and reseed
// @Tags         demo
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /demo/reset [post]
func (h *DemoHandler) Reset(c *gin.Context) {
	if err := h.seed.ResetDemoData(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset demo data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo data reset successfully"})
}

// Info godoc
// @Summary      Describe the demo and how to exercise the real-time stream
// @Tags         demo
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /demo/info [get]
func (h *DemoHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"purpose":          "Real-Time Task Management Demo",
		"connectedClients": h.hub.ClientCount(),
		"features": []string{
			"Real-time task creation and updates",
			"Live note collaboration",
			"Instant dashboard statistics",
			"Multi-client synchronization",
			"Activity feed updates",
		},
		"instructions": []string{
			"Open multiple browser tabs to see real-time updates",
			"Create tasks and notes in one tab, watch them appear in others",
			"Toggle task completion to see dashboard statistics update",
			"Check the dashboard for live activity feed",
			"Use POST /api/demo/reset to clear data and start fresh",
		},
		"endpoints": gin.H{
			"seed":   "POST /api/demo/seed - Add demo data if database is empty",
			"reset":  "POST /api/demo/reset - Clear all data and reseed",
			"info":   "GET /api/demo/info - This information",
			"stream": "GET /api/stream - Server-sent event stream",
		},
	})
}
