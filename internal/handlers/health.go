package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	serviceName    = "gym-backend"
	serviceVersion = "0.1.0"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Health возвращает простой статус сервиса для liveness-проб.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: serviceName,
		Version: serviceVersion,
	})
}
