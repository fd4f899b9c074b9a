package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"aqi-api/internal/domain/model"
	"aqi-api/internal/domain/usecase/forecast"
	"aqi-api/pkg/util/numberutils"
)

const (
	defaultHybridPostMonths = 12
	defaultHybridGetMonths  = 24
	defaultProphetDays      = 7
	defaultHistoryPeriods   = 12
	defaultShortTermHours   = 48
)

type ForecastController struct {
	api     *echo.Group
	useCase forecast.UseCase
}

func NewForecastController(api *echo.Group, useCase forecast.UseCase) *ForecastController {
	return &ForecastController{api: api, useCase: useCase}
}

// InitForecastRoutes initializes forecast routes
func (controller *ForecastController) InitForecastRoutes() {
	controller.api.GET("/cities", controller.ListCities)
	controller.api.POST("/forecast/hybrid", controller.HybridForecast)
	controller.api.GET("/forecast/hybrid/:city", controller.HybridForecastByPath)
	controller.api.POST("/forecast/prophet", controller.ProphetForecast)
	controller.api.GET("/forecast/history/:city", controller.ForecastHistory)
	controller.api.POST("/forecast/short_term", controller.ShortTermForecast)
}

// ListCities proxies the upstream city list, normalized to a flat list of names
func (controller *ForecastController) ListCities(c echo.Context) error {
	cities, err := controller.useCase.ListCities(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}

// HybridForecast returns the canonical monthly forecast for a city
func (controller *ForecastController) HybridForecast(c echo.Context) error {
	var request model.HybridForecastRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if request.City == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "city is required"})
	}
	if request.HorizonMonths == 0 {
		request.HorizonMonths = defaultHybridPostMonths
	}

	response, err := controller.useCase.HybridForecast(c.Request().Context(), request.City, request.HorizonMonths)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// HybridForecastByPath is the query-string variant of the hybrid forecast
func (controller *ForecastController) HybridForecastByPath(c echo.Context) error {
	city := c.Param("city")

	horizon := defaultHybridGetMonths
	if raw := c.QueryParam("horizon"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid horizon. Must be integer months."})
		}
		horizon = parsed
	}

	response, err := controller.useCase.HybridForecast(c.Request().Context(), city, horizon)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// ProphetForecast returns the canonical daily forecast for a city
func (controller *ForecastController) ProphetForecast(c echo.Context) error {
	var request model.ProphetForecastRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if request.City == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "city is required"})
	}
	if request.HorizonDays == 0 {
		request.HorizonDays = defaultProphetDays
	}

	response, err := controller.useCase.ProphetForecast(c.Request().Context(), request.City, request.HorizonDays)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// ForecastHistory returns the daily series relabeled as history, horizon
// derived from monthly periods
func (controller *ForecastController) ForecastHistory(c echo.Context) error {
	city := c.Param("city")
	periods := numberutils.ToIntWithDefault(c.QueryParam("periods"), defaultHistoryPeriods)

	response, err := controller.useCase.ForecastHistory(c.Request().Context(), city, periods)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// ShortTermForecast returns the canonical hourly forecast, degrading to the
// hybrid model when the hourly model is unavailable
func (controller *ForecastController) ShortTermForecast(c echo.Context) error {
	var request model.ShortTermForecastRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
	}

	city := request.City
	if city == "" {
		city = request.DeviceID
	}
	if city == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "city (or device_id) required"})
	}
	if request.Hours == 0 {
		request.Hours = defaultShortTermHours
	}

	response, err := controller.useCase.ShortTermForecast(c.Request().Context(), city, request.Hours)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}
