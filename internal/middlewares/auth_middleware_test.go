package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cardbinder/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Authenticate, func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "no user on context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "jti": c.GetString("jti")})
	})
	return router
}

func TestAuthenticate(t *testing.T) {
	utils.AccessTokenSecret = []byte("middleware-test-secret")
	utils.RefreshTokenSecret = []byte("middleware-refresh-secret")

	router := newProtectedRouter()
	userID := uuid.New()
	access, refresh, _, err := utils.GenerateTokens(userID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid access token", "Bearer " + access, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic " + access, http.StatusUnauthorized},
		{"malformed header", "Bearer", http.StatusUnauthorized},
		{"refresh token rejected on access routes", "Bearer " + refresh, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), userID.String())
			}
		})
	}
}

func TestUserIDHelper(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := UserID(c)
	assert.False(t, ok)

	id := uuid.New()
	c.Set("userId", id)
	got, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c.Set("userId", id.String())
	got, ok = UserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c.Set("userId", 42)
	_, ok = UserID(c)
	assert.False(t, ok)
}
