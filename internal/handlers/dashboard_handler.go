package handlers

import (
	"net/http"
	"strconv"

	"cardbinder/internal/middlewares"
	"cardbinder/internal/responses"
	"cardbinder/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Feed handles GET /api/v1/dashboard/feed
func (h *DashboardHandler) Feed(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	events, err := h.dashboardService.Feed(userID, limit)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve activity feed")
		return
	}
	responses.Success(c, http.StatusOK, events, "Activity feed retrieved successfully")
}

// Leaderboard handles GET /api/v1/dashboard/leaderboard
func (h *DashboardHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.dashboardService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve leaderboard")
		return
	}
	responses.Success(c, http.StatusOK, entries, "Leaderboard retrieved successfully")
}

// Trading handles GET /api/v1/dashboard/trading
func (h *DashboardHandler) Trading(c *gin.Context) {
	responses.Success(c, http.StatusOK, h.dashboardService.Trading(), "Trading preview retrieved successfully")
}
