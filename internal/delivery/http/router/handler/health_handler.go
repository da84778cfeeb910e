package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports service liveness, no auth required.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Service is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
