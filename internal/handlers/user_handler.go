package handlers

import (
	"net/http"

	"cardbinder/internal/middlewares"
	"cardbinder/internal/responses"
	"cardbinder/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		if err.Error() == "user not found" {
			responses.Fail(c, http.StatusNotFound, err, "User not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve user")
		return
	}

	responses.Success(c, http.StatusOK, user, "User retrieved successfully")
}

// UpdateMe handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(userID, userID, req)
	if err != nil {
		if err.Error() == "user not found" {
			responses.Fail(c, http.StatusNotFound, err, "User not found")
			return
		}
		if err.Error() == "only admins can change user roles" ||
			err.Error() == "admin cannot demote themselves" {
			responses.Fail(c, http.StatusForbidden, err, err.Error())
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to update user")
		return
	}

	responses.Success(c, http.StatusOK, user, "User updated successfully")
}

// GetUser handles GET /api/v1/users/:user_id (admin only)
func (h *UserHandler) GetUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetUser(userUUID)
	if err != nil {
		if err.Error() == "user not found" {
			responses.Fail(c, http.StatusNotFound, err, "User not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve user")
		return
	}

	responses.Success(c, http.StatusOK, user, "User retrieved successfully")
}

// ListUsers handles GET /api/v1/users (admin only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve users")
		return
	}

	responses.Success(c, http.StatusOK, users, "Users retrieved successfully")
}
