package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/repository"
)

// TokenHeader is the request header carrying the API token.
const TokenHeader = "X-API-Token"

// APITokenAuth verifies the X-API-Token header against the token store.
// Lookup failures reject the request rather than letting it through.
func APITokenAuth(tokens repository.TokenRepositoryInterface, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			unauthorized(c, "API token required")
			return
		}

		valid, err := tokens.IsValidToken(c.Request.Context(), token)
		if err != nil {
			logger.WithError(err).Error("Token validation failed")
			unauthorized(c, "Invalid API token")
			return
		}
		if !valid {
			unauthorized(c, "Invalid API token")
			return
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      http.StatusUnauthorized,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	})
}
