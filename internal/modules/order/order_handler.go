package order

import (
	"errors"
	"net/http"

	"rueating/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate // For request body validation
}

// NewHandler creates a new order handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the order routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/trucks/:truckId/orders", h.PlaceOrder)
	e.GET("/orders", h.FindOrders)
	e.PATCH("/orders/:orderId/status", h.UpdateStatus)
}

func (h *Handler) PlaceOrder(c echo.Context) error {
	var req models.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if req.CustomerName == "" || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, models.Fail("Customer name and at least one item are required"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	order, err := h.svc.PlaceOrder(c.Request().Context(), c.Param("truckId"), req)
	if err != nil {
		var ia *models.InvalidArgumentError
		switch {
		case errors.As(err, &ia):
			return c.JSON(http.StatusBadRequest, models.Fail(ia.Message))
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.Fail("Food truck not found"))
		}
		c.Logger().Error("Handler.PlaceOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to place order"))
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Order placed successfully", "data": order})
}

func (h *Handler) FindOrders(c echo.Context) error {
	orders, err := h.svc.FindOrders(c.Request().Context(), c.QueryParam("customer_name"), c.QueryParam("customer_phone"))
	if err != nil {
		var ia *models.InvalidArgumentError
		if errors.As(err, &ia) {
			return c.JSON(http.StatusBadRequest, models.Fail(ia.Message))
		}
		c.Logger().Error("Handler.FindOrders: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch orders"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": orders})
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	order, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("orderId"), req.Status)
	if err != nil {
		var ia *models.InvalidArgumentError
		switch {
		case errors.As(err, &ia):
			return c.JSON(http.StatusBadRequest, models.Fail(ia.Message))
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.Fail("Order not found"))
		}
		c.Logger().Error("Handler.UpdateStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to update order status"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": order})
}
