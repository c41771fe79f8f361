package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheck reports liveness and database reachability
func HealthCheck(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		status, code := "healthy", http.StatusOK
		if db != nil {
			if err := db.PingContext(c.Request().Context()); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		return c.JSON(code, map[string]string{
			"status":  status,
			"service": "dev-journal-api",
		})
	}
}
