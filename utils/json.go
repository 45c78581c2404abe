package utils

import (
	"ModelHub/internal/service"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fail writes an error JSON response with the given status.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// FailWithError maps service errors onto 404 / 400 and everything else onto 500.
func FailWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		Fail(c, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		Fail(c, http.StatusInternalServerError, "error interno del servidor")
	}
}
