package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"aqi-api/internal/domain/usecase/cityaqi"
)

type CityAQIController struct {
	api     *echo.Group
	useCase cityaqi.UseCase
}

func NewCityAQIController(api *echo.Group, useCase cityaqi.UseCase) *CityAQIController {
	return &CityAQIController{api: api, useCase: useCase}
}

// InitCityAQIRoutes initializes live AQI routes
func (controller *CityAQIController) InitCityAQIRoutes() {
	controller.api.GET("/city_aqi/:city", controller.CityAQI)
	controller.api.GET("/live_aqi_coords", controller.LiveAQIByCoords)
	controller.api.GET("/global_aqi", controller.GlobalAQI)
}

// CityAQI resolves a city name and returns the latest provider readings
func (controller *CityAQIController) CityAQI(c echo.Context) error {
	city := c.Param("city")

	response, err := controller.useCase.CityAQI(c.Request().Context(), city)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// LiveAQIByCoords returns the latest readings for an arbitrary coordinate
func (controller *CityAQIController) LiveAQIByCoords(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if latErr != nil || lonErr != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Latitude and longitude required"})
	}

	response, err := controller.useCase.LiveAQIByCoords(c.Request().Context(), lat, lon)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// GlobalAQI serves the cached per-city snapshot; 404 until the scheduler
// has populated it
func (controller *CityAQIController) GlobalAQI(c echo.Context) error {
	snapshot, err := controller.useCase.GlobalSnapshot(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}
