package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes a uniform error body.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RespondWithAppError translates an AppError into its HTTP outcome.
// Internal errors are logged with the underlying cause and surfaced as
// an opaque message.
func RespondWithAppError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	if appErr.Kind == KindInternal {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message, "code": appErr.Code})
}
