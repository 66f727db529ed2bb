package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home greets API clients hitting the root path
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to Nexus API",
	})
}
