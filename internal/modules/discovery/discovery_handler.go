package discovery

import (
	"errors"
	"net/http"
	"strconv"

	"rueating/internal/location"
	"rueating/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for truck discovery and the truck catalog.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate // For request body validation
}

// NewHandler creates a new discovery handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the discovery routes. Static paths must be
// registered before the /:truckId routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/trucks")
	g.GET("", h.ListTrucks)
	g.POST("", h.CreateTruck)
	g.GET("/nearby", h.NearbyTrucks)
	g.GET("/all-with-location", h.ListTrucksWithLocation)
	g.GET("/by-cuisine", h.TrucksByCuisine)
	g.GET("/cuisine-types", h.CuisineTypes)
	g.GET("/:truckId", h.GetTruck)
	g.PATCH("/:truckId", h.UpdateTruck)
	g.GET("/:truckId/details", h.GetTruckDetails)
	g.POST("/:truckId/location", h.RecordPing)
}

func (h *Handler) ListTrucks(c echo.Context) error {
	trucks, err := h.svc.ListTrucks(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListTrucks: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch food trucks"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(trucks), "data": trucks})
}

func (h *Handler) CreateTruck(c echo.Context) error {
	var req models.CreateTruckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("Name is required"))
	}
	if req.PriceTier != "" && !models.ValidPriceTier(req.PriceTier) {
		return c.JSON(http.StatusBadRequest, models.Fail("Price tier must be one of: $, $$, $$$, $$$$"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	truck, err := h.svc.CreateTruck(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateTruck: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to add food truck"))
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Food truck added successfully", "data": truck})
}

// NearbyTrucks handles GET /trucks/nearby?lat&lng&radius&limit.
func (h *Handler) NearbyTrucks(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Latitude and longitude are required (lat, lng query parameters)"))
	}

	q := NearbyQuery{Origin: location.Coordinate{Latitude: lat, Longitude: lng}}
	// Unparseable radius/limit fall back to the defaults, like the query
	// params being absent.
	if r, err := strconv.ParseFloat(c.QueryParam("radius"), 64); err == nil {
		q.RadiusKm = r
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		q.Limit = l
	}

	trucks, err := h.svc.NearbyTrucks(c.Request().Context(), q)
	if err != nil {
		var ia *models.InvalidArgumentError
		if errors.As(err, &ia) {
			return c.JSON(http.StatusBadRequest, models.Fail(ia.Message))
		}
		c.Logger().Error("Handler.NearbyTrucks: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to find nearby food trucks"))
	}

	radius := q.RadiusKm
	if radius == 0 {
		radius = 5
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(trucks),
		"search_location": echo.Map{
			"latitude":  lat,
			"longitude": lng,
			"radius_km": radius,
		},
		"data": trucks,
	})
}

func (h *Handler) ListTrucksWithLocation(c echo.Context) error {
	trucks, err := h.svc.ListTrucksWithLocation(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListTrucksWithLocation: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch food trucks"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(trucks), "data": trucks})
}

// TrucksByCuisine handles GET /trucks/by-cuisine?cuisine&lat&lng. The origin
// is optional; when both lat and lng parse, results are ranked by distance
// instead of rating.
func (h *Handler) TrucksByCuisine(c echo.Context) error {
	cuisine := c.QueryParam("cuisine")
	if cuisine == "" {
		return c.JSON(http.StatusBadRequest, models.Fail("Cuisine type is required (cuisine query parameter)"))
	}

	var origin *location.Coordinate
	latParam, lngParam := c.QueryParam("lat"), c.QueryParam("lng")
	if latParam != "" && lngParam != "" {
		lat, latErr := strconv.ParseFloat(latParam, 64)
		lng, lngErr := strconv.ParseFloat(lngParam, 64)
		if latErr != nil || lngErr != nil {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid latitude or longitude values"))
		}
		origin = &location.Coordinate{Latitude: lat, Longitude: lng}
	}

	trucks, err := h.svc.TrucksByCuisine(c.Request().Context(), cuisine, origin)
	if err != nil {
		var ia *models.InvalidArgumentError
		if errors.As(err, &ia) {
			return c.JSON(http.StatusBadRequest, models.Fail(ia.Message))
		}
		c.Logger().Error("Handler.TrucksByCuisine: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to search food trucks by cuisine"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"count":          len(trucks),
		"search_cuisine": cuisine,
		"user_location":  origin,
		"data":           trucks,
	})
}

func (h *Handler) CuisineTypes(c echo.Context) error {
	types, err := h.svc.CuisineTypes(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.CuisineTypes: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch cuisine types"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(types), "data": types})
}

func (h *Handler) GetTruck(c echo.Context) error {
	truck, err := h.svc.GetTruck(c.Request().Context(), c.Param("truckId"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Food truck not found"))
		}
		c.Logger().Error("Handler.GetTruck: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch food truck"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": truck})
}

func (h *Handler) UpdateTruck(c echo.Context) error {
	var req models.UpdateTruckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if req.PriceTier != nil && !models.ValidPriceTier(*req.PriceTier) {
		return c.JSON(http.StatusBadRequest, models.Fail("Price tier must be one of: $, $$, $$$, $$$$"))
	}

	truck, err := h.svc.UpdateTruck(c.Request().Context(), c.Param("truckId"), req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Food truck not found"))
		}
		c.Logger().Error("Handler.UpdateTruck: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update food truck"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": truck})
}

func (h *Handler) GetTruckDetails(c echo.Context) error {
	details, err := h.svc.GetTruckDetails(c.Request().Context(), c.Param("truckId"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Food truck not found"))
		}
		c.Logger().Error("Handler.GetTruckDetails: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch food truck details"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": details})
}

// RecordPing handles POST /trucks/:truckId/location.
func (h *Handler) RecordPing(c echo.Context) error {
	var req models.LocationPingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	err := h.svc.RecordPing(c.Request().Context(), c.Param("truckId"), location.Coordinate{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoLocationSource):
			return c.JSON(http.StatusServiceUnavailable, models.Fail("Live location tracking is not enabled"))
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.Fail("Food truck not found"))
		case models.IsInvalidArgument(err):
			return c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		}
		c.Logger().Error("Handler.RecordPing: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to record location"))
	}
	return c.NoContent(http.StatusNoContent)
}
