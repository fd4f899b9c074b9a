package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"aqi-api/internal/domain/model"
	"aqi-api/internal/domain/usecase/ingest"
	"aqi-api/pkg/util/numberutils"
)

type SensorController struct {
	api     *echo.Group
	useCase ingest.UseCase
}

func NewSensorController(api *echo.Group, useCase ingest.UseCase) *SensorController {
	return &SensorController{api: api, useCase: useCase}
}

// InitSensorRoutes initializes sensor ingestion routes
func (controller *SensorController) InitSensorRoutes() {
	controller.api.POST("/sensors/readings", controller.UploadReading)
	controller.api.GET("/sensors/history/:city", controller.History)
}

// UploadReading ingests one sensor reading. The raw body is kept verbatim
// for the ingestion audit log.
func (controller *SensorController) UploadReading(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(raw) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No payload provided"})
	}

	var request model.SensorReadingRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
	}

	response, err := controller.useCase.Ingest(c.Request().Context(), request, raw)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, response)
}

// History returns the newest stored readings for a city
func (controller *SensorController) History(c echo.Context) error {
	city := c.Param("city")
	limit := numberutils.ToIntWithDefault(c.QueryParam("limit"), 0)

	readings, err := controller.useCase.History(c.Request().Context(), city, limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, readings)
}
