package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pollpulse/internal/services"
	"pollpulse/internal/transport/httpdto"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, service)
		if !ok {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(services.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user identity when a valid
// bearer token is present and lets anonymous requests through. The
// vote path uses it: authenticated voters dedup by user id, anonymous
// voters by hashed address.
func OptionalAuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := authenticate(c, service); ok {
			c.Request = c.Request.WithContext(services.WithUserID(c.Request.Context(), userID))
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, service *services.AuthService) (uuid.UUID, bool) {
	claims, err := service.ParseAccessToken(extractBearer(c))
	if err != nil {
		return uuid.UUID{}, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.UUID{}, false
	}
	return userID, true
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
