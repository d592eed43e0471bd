package handlers

import (
	"errors"
	"net/http"

	"cardbinder/internal/middlewares"
	"cardbinder/internal/responses"
	"cardbinder/internal/services"

	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	prefsService *services.PreferencesService
}

func NewPreferencesHandler(prefsService *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefsService: prefsService}
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	prefs, err := h.prefsService.Get(userID)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve preferences")
		return
	}
	responses.Success(c, http.StatusOK, prefs, "Preferences retrieved successfully")
}

// UpdatePreferences handles PATCH /api/v1/preferences
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	var req services.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	prefs, err := h.prefsService.Update(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedCurrency) {
			responses.Fail(c, http.StatusBadRequest, err, "Unsupported display currency")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to update preferences")
		return
	}
	responses.Success(c, http.StatusOK, prefs, "Preferences updated successfully")
}
