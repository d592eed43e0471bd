package routes

import (
	"cardbinder/internal/handlers"

	"github.com/gin-gonic/gin"
)

type CatalogRoutes struct {
	handler *handlers.CatalogHandler
}

func NewCatalogRoutes(handler *handlers.CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// Catalog browsing is public; card prices fall back to USD when there
// is no authenticated user to read a preferred currency from.
func (r *CatalogRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/series", r.handler.ListSeries)

	sets := router.Group("/sets")
	{
		sets.GET("", r.handler.ListSets)
		sets.GET("/:set_id", r.handler.GetSet)
		sets.GET("/:set_id/cards", r.handler.ListCards)
	}

	cards := router.Group("/cards")
	{
		cards.GET("/search", r.handler.SearchCards)
		cards.GET("/:card_id", r.handler.GetCard)
	}
}
