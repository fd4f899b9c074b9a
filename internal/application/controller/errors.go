package controller

import (
	"github.com/labstack/echo/v4"

	"aqi-api/internal/domain/model"
)

// errorResponse maps a domain error onto the shared JSON error contract
func errorResponse(c echo.Context, err error) error {
	return c.JSON(model.HTTPStatus(err), map[string]string{"error": err.Error()})
}
