package routes

import (
	"cardbinder/internal/handlers"
	"cardbinder/internal/middlewares"
	"cardbinder/internal/repositories"

	"github.com/gin-gonic/gin"
)

type UserRoutes struct {
	userHandler *handlers.UserHandler
	userRepo    *repositories.UserRepository
}

func NewUserRoutes(userHandler *handlers.UserHandler, userRepo *repositories.UserRepository) *UserRoutes {
	return &UserRoutes{
		userHandler: userHandler,
		userRepo:    userRepo,
	}
}

func (r *UserRoutes) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middlewares.Authenticate)
	{
		users.GET("/me", r.userHandler.GetMe)
		users.PATCH("/me", r.userHandler.UpdateMe)

		// Admin-only routes
		users.GET("", middlewares.RequireAdmin(r.userRepo), r.userHandler.ListUsers)
		users.GET("/:user_id", middlewares.RequireAdmin(r.userRepo), r.userHandler.GetUser)
	}
}
