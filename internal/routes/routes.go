package routes

import (
	"net/http"

	"cardbinder/internal/handlers"
	"cardbinder/internal/repositories"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	catalogHandler *handlers.CatalogHandler,
	collectionHandler *handlers.CollectionHandler,
	preferencesHandler *handlers.PreferencesHandler,
	dashboardHandler *handlers.DashboardHandler,
	userRepo *repositories.UserRepository,
) {
	api := router.Group("/api/v1")

	NewAuthRoutes(authHandler).RegisterRoutes(api)
	NewUserRoutes(userHandler, userRepo).RegisterRoutes(api)
	NewCatalogRoutes(catalogHandler).RegisterRoutes(api)
	NewCollectionRoutes(collectionHandler).RegisterRoutes(api)
	NewPreferencesRoutes(preferencesHandler).RegisterRoutes(api)
	NewDashboardRoutes(dashboardHandler).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
