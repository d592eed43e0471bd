package routes

import (
	"cardbinder/internal/handlers"
	"cardbinder/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type CollectionRoutes struct {
	handler *handlers.CollectionHandler
}

func NewCollectionRoutes(handler *handlers.CollectionHandler) *CollectionRoutes {
	return &CollectionRoutes{handler: handler}
}

func (r *CollectionRoutes) RegisterRoutes(router *gin.RouterGroup) {
	collection := router.Group("/collection")
	collection.Use(middlewares.Authenticate)
	{
		collection.GET("", r.handler.ListItems)
		collection.POST("", r.handler.AddItem)
		collection.PATCH("/:card_id/:variant", r.handler.UpdateItem)
		collection.DELETE("/:card_id/:variant", r.handler.RemoveItem)
		collection.GET("/progress/:set_id", r.handler.SetProgress)
		collection.GET("/value", r.handler.Value)
	}
}
