package routes

import (
	"cardbinder/internal/handlers"
	"cardbinder/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type DashboardRoutes struct {
	handler *handlers.DashboardHandler
}

func NewDashboardRoutes(handler *handlers.DashboardHandler) *DashboardRoutes {
	return &DashboardRoutes{handler: handler}
}

func (r *DashboardRoutes) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(middlewares.Authenticate)
	{
		dashboard.GET("/feed", r.handler.Feed)
		dashboard.GET("/leaderboard", r.handler.Leaderboard)
		dashboard.GET("/trading", r.handler.Trading)
	}
}
