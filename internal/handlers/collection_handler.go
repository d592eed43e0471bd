package handlers

import (
	"errors"
	"net/http"

	"cardbinder/internal/middlewares"
	"cardbinder/internal/responses"
	"cardbinder/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollectionHandler struct {
	collectionService *services.CollectionService
	prefsService      *services.PreferencesService
}

func NewCollectionHandler(collectionService *services.CollectionService, prefsService *services.PreferencesService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		prefsService:      prefsService,
	}
}

// AddItem handles POST /api/v1/collection
func (h *CollectionHandler) AddItem(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	item, err := h.collectionService.Add(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Card not found")
		case errors.Is(err, services.ErrInvalidVariant):
			responses.Fail(c, http.StatusUnprocessableEntity, err, "This card was never printed in that variant")
		case errors.Is(err, services.ErrInvalidInput):
			responses.Fail(c, http.StatusBadRequest, err, "Invalid quantity or condition")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to add card to collection")
		}
		return
	}

	responses.Success(c, http.StatusCreated, item, "Card added to collection")
}

// UpdateItem handles PATCH /api/v1/collection/:card_id/:variant
func (h *CollectionHandler) UpdateItem(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	cardID, err := uuid.Parse(c.Param("card_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid card ID format")
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	err = h.collectionService.SetQuantity(c.Request.Context(), userID, cardID, c.Param("variant"), *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			responses.Fail(c, http.StatusNotFound, err, "Collection item not found")
		case errors.Is(err, services.ErrInvalidInput):
			responses.Fail(c, http.StatusBadRequest, err, "Invalid quantity")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to update collection item")
		}
		return
	}

	responses.Success(c, http.StatusOK, nil, "Collection item updated")
}

// RemoveItem handles DELETE /api/v1/collection/:card_id/:variant
func (h *CollectionHandler) RemoveItem(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	cardID, err := uuid.Parse(c.Param("card_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid card ID format")
		return
	}

	err = h.collectionService.Remove(c.Request.Context(), userID, cardID, c.Param("variant"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Collection item not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to remove collection item")
		return
	}

	responses.Success(c, http.StatusNoContent, nil, "Collection item removed")
}

// ListItems handles GET /api/v1/collection?set_id=
func (h *CollectionHandler) ListItems(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	if raw := c.Query("set_id"); raw != "" {
		setID, err := uuid.Parse(raw)
		if err != nil {
			responses.Fail(c, http.StatusBadRequest, nil, "Invalid set ID format")
			return
		}
		items, err := h.collectionService.ListBySet(userID, setID)
		if err != nil {
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve collection")
			return
		}
		responses.Success(c, http.StatusOK, items, "Collection retrieved successfully")
		return
	}

	items, err := h.collectionService.List(userID)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve collection")
		return
	}
	responses.Success(c, http.StatusOK, items, "Collection retrieved successfully")
}

// SetProgress handles GET /api/v1/collection/progress/:set_id
func (h *CollectionHandler) SetProgress(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	setID, err := uuid.Parse(c.Param("set_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid set ID format")
		return
	}

	progress, err := h.collectionService.Progress(userID, setID)
	if err != nil {
		if errors.Is(err, services.ErrSetNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "Set not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to compute set progress")
		return
	}
	responses.Success(c, http.StatusOK, progress, "Set progress computed")
}

// Value handles GET /api/v1/collection/value
func (h *CollectionHandler) Value(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	currency := c.Query("currency")
	if currency == "" {
		currency = h.prefsService.Currency(userID)
	}

	value, err := h.collectionService.Value(c.Request.Context(), userID, currency)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to compute collection value")
		return
	}
	responses.Success(c, http.StatusOK, value, "Collection value computed")
}
