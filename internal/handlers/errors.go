package handlers

import (
	"errors"
	"net/http"

	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// Forbidden -> 403 (with the denial reason), NotFound -> 404,
// InvalidInput -> 400, anything else -> 500.
func writeServiceError(c *gin.Context, err error) {
	if reason, ok := services.IsForbidden(err); ok {
		message := "You are not permitted to perform this action"
		if reason == services.ReasonNotOwner {
			message = "You do not own this project"
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"reason":  reason,
			"message": message,
		})
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not_found",
		})
		return
	}
	if errors.Is(err, services.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_input",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal_error",
	})
}
