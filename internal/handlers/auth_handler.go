package handlers

import (
	"net/http"

	"cardbinder/internal/models"
	"cardbinder/internal/responses"
	"cardbinder/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	RefreshTokenCookieName = "refresh_token"
	RefreshTokenMaxAge     = 30 * 24 * 3600 // seconds
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Please provide your email and password correctly")
		return
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
	}
	accessToken, refreshToken, err := h.userService.Register(user)
	if err != nil {
		if err.Error() == "user already exists" {
			responses.Fail(c, http.StatusConflict, err, "An account with this email already exists")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Could not register user")
		return
	}

	c.SetCookie(RefreshTokenCookieName, refreshToken, RefreshTokenMaxAge, "/", "", true, true)

	responses.Success(c, http.StatusCreated, gin.H{
		"access_token": accessToken,
	}, "New user registered successfully!")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid Format")
		return
	}

	accessToken, refreshToken, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		responses.Fail(c, http.StatusUnauthorized, err, "Failed to login")
		return
	}

	c.SetCookie(RefreshTokenCookieName, refreshToken, RefreshTokenMaxAge, "/", "", true, true)

	responses.Success(c, http.StatusOK, gin.H{
		"access_token": accessToken,
	}, "User Login Successfully!")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if jti, exists := c.Get("jti"); exists {
		if jtiStr, ok := jti.(string); ok {
			if err := h.userService.Logout(jtiStr); err != nil {
				responses.Fail(c, http.StatusInternalServerError, err, "Could not revoke token")
				return
			}
		}
	}

	c.SetCookie(RefreshTokenCookieName, "", -1, "/", "", true, true)

	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookieName)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Missing refresh token")
		return
	}

	accessToken, newRefreshToken, err := h.userService.Refresh(refreshToken)
	if err != nil {
		c.SetCookie(RefreshTokenCookieName, "", -1, "/", "", true, true)
		responses.Fail(c, http.StatusUnauthorized, err, "Invalid or expired refresh token")
		return
	}

	c.SetCookie(RefreshTokenCookieName, newRefreshToken, RefreshTokenMaxAge, "/", "", true, true)

	responses.Success(c, http.StatusOK, gin.H{
		"access_token": accessToken,
	}, "Access token refreshed successfully")
}
