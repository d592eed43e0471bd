package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cardbinder/internal/middlewares"
	"cardbinder/internal/responses"
	"cardbinder/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	prefsService   *services.PreferencesService
}

func NewCatalogHandler(catalogService *services.CatalogService, prefsService *services.PreferencesService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		prefsService:   prefsService,
	}
}

// ListSeries handles GET /api/v1/series
func (h *CatalogHandler) ListSeries(c *gin.Context) {
	series, err := h.catalogService.ListSeries()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve series")
		return
	}
	responses.Success(c, http.StatusOK, series, "Series retrieved successfully")
}

// ListSets handles GET /api/v1/sets?series_id=...
func (h *CatalogHandler) ListSets(c *gin.Context) {
	var seriesID *uuid.UUID
	if raw := c.Query("series_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			responses.Fail(c, http.StatusBadRequest, nil, "Invalid series ID format")
			return
		}
		seriesID = &parsed
	}

	sets, err := h.catalogService.ListSets(seriesID)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve sets")
		return
	}
	responses.Success(c, http.StatusOK, sets, "Sets retrieved successfully")
}

// GetSet handles GET /api/v1/sets/:set_id
func (h *CatalogHandler) GetSet(c *gin.Context) {
	setID, err := uuid.Parse(c.Param("set_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid set ID format")
		return
	}

	set, err := h.catalogService.GetSet(setID)
	if err != nil {
		if errors.Is(err, services.ErrSetNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Set not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve set")
		return
	}
	responses.Success(c, http.StatusOK, set, "Set retrieved successfully")
}

// ListCards handles GET /api/v1/sets/:set_id/cards?page=&page_size=
func (h *CatalogHandler) ListCards(c *gin.Context) {
	setID, err := uuid.Parse(c.Param("set_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid set ID format")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "60"))

	cards, err := h.catalogService.ListCards(setID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrSetNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Set not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve cards")
		return
	}
	responses.Success(c, http.StatusOK, cards, "Cards retrieved successfully")
}

// GetCard handles GET /api/v1/cards/:card_id. Prices come back in the
// viewer's preferred currency, or ?currency= when given.
func (h *CatalogHandler) GetCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("card_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid card ID format")
		return
	}

	currency := c.Query("currency")
	if currency == "" {
		if userID, ok := middlewares.UserID(c); ok {
			currency = h.prefsService.Currency(userID)
		} else {
			currency = "USD"
		}
	}

	detail, err := h.catalogService.GetCard(c.Request.Context(), cardID, currency)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) || errors.Is(err, services.ErrSetNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Card not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve card")
		return
	}
	responses.Success(c, http.StatusOK, detail, "Card retrieved successfully")
}

// SearchCards handles GET /api/v1/cards/search?q=
func (h *CatalogHandler) SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing search query")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	cards, err := h.catalogService.SearchCards(query, limit)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to search cards")
		return
	}
	responses.Success(c, http.StatusOK, cards, "Cards retrieved successfully")
}
