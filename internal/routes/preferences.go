package routes

import (
	"cardbinder/internal/handlers"
	"cardbinder/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type PreferencesRoutes struct {
	handler *handlers.PreferencesHandler
}

func NewPreferencesRoutes(handler *handlers.PreferencesHandler) *PreferencesRoutes {
	return &PreferencesRoutes{handler: handler}
}

func (r *PreferencesRoutes) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences")
	prefs.Use(middlewares.Authenticate)
	{
		prefs.GET("", r.handler.GetPreferences)
		prefs.PATCH("", r.handler.UpdatePreferences)
	}
}
