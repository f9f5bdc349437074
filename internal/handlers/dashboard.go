package handlers

import (
	"net/http"
	"strconv"

	dom "github.com/d-langelihlekhumalo/real-time-task-manager/internal/domain"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/dto"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *service.ActivityService
}

func NewDashboardHandler(svc *service.ActivityService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetDashboard godoc
// @Summary      Get dashboard statistics and the recent activity feed
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	data, err := h.svc.GetDashboardData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalTasks:       data.TotalTasks,
		CompletedTasks:   data.CompletedTasks,
		PendingTasks:     data.PendingTasks,
		TotalNotes:       data.TotalNotes,
		CompletionRate:   data.CompletionRate,
		NotesPerTask:     data.NotesPerTask,
		RecentActivities: activitiesToResponses(data.RecentActivities),
	})
}

// GetRecentActivities godoc
// @Summary      Get recent activities, newest first
// @Tags         dashboard
// @Produce      json
// @Param        count  path      int  true  "Number of activities (outside (0,100) falls back to 20)"
// @Success      200    {array}   dto.ActivityResponse
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /dashboard/{count} [get]
func (h *DashboardHandler) GetRecentActivities(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
		return
	}
	list, err := h.svc.GetRecentActivities(c.Request.Context(), count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activities"})
		return
	}
	c.JSON(http.StatusOK, activitiesToResponses(list))
}

func activityToResponse(a dom.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:                    a.ID,
		Action:                string(a.Action),
		ActionDisplayName:     a.Action.DisplayName(),
		EntityType:            string(a.EntityType),
		EntityTypeDisplayName: string(a.EntityType),
		EntityID:              a.EntityID,
		EntityTitle:           a.EntityTitle,
		Description:           a.Description,
		CreatedAt:             a.CreatedAt,
	}
}

func activitiesToResponses(list []dom.Activity) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, len(list))
	for i := range list {
		out[i] = activityToResponse(list[i])
	}
	return out
}
