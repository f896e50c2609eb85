package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "focusband/companion/internal/errors"
	"focusband/companion/internal/service"
)

const DeviceIDContextKey = "deviceID"

// Auth requires a Bearer token issued by the pairing flow and stashes the
// sending device's ID on the request context.
func Auth(pairingService *service.PairingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			writeError(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			writeError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		deviceID, apiErr := pairingService.ParseToken(token)
		if apiErr != nil {
			writeError(c, apiErr)
			return
		}

		c.Set(DeviceIDContextKey, deviceID)
		c.Next()
	}
}

// DeviceID returns the authenticated device ID, or "" when absent.
func DeviceID(c *gin.Context) string {
	value, ok := c.Get(DeviceIDContextKey)
	if !ok {
		return ""
	}
	deviceID, ok := value.(string)
	if !ok {
		return ""
	}
	return deviceID
}

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}
