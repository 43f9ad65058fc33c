package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizcraft/quizcraft-backend/internal/apperr"
)

// JSON sends a successful resource-specific JSON body.
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Detail sends an error body of shape {"detail": <message>}.
func Detail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"detail": message})
}

// AbortDetail aborts the middleware chain with a {"detail": ...} body.
func AbortDetail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"detail": message})
}

// Error maps an application error to its HTTP status and detail body.
// Errors without a typed kind surface as a store failure.
func Error(c *gin.Context, err error) {
	if appErr := apperr.From(err); appErr != nil {
		Detail(c, appErr.Kind.HTTPStatus(), appErr.Detail)
		return
	}
	Detail(c, http.StatusInternalServerError, "Database error occurred")
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, err error) {
	if appErr := apperr.From(err); appErr != nil {
		AbortDetail(c, appErr.Kind.HTTPStatus(), appErr.Detail)
		return
	}
	AbortDetail(c, http.StatusInternalServerError, "Database error occurred")
}
