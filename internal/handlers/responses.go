package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"catalog-import-service/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// respondOK writes the standard success envelope.
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.SuccessResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Format(timestampLayout),
	})
}

// respondError writes the standard error envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      status,
		Timestamp: time.Now().Format(timestampLayout),
	})
}
