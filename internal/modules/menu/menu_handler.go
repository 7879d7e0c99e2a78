package menu

import (
	"errors"
	"net/http"

	"rueating/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for reviews.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate // For request body validation
}

// NewHandler creates a new menu handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the review routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/trucks/:truckId/reviews", h.SubmitReview)
}

func (h *Handler) SubmitReview(c echo.Context) error {
	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
	}
	if req.UserName == "" || req.Rating == 0 {
		return c.JSON(http.StatusBadRequest, models.Fail("User name and rating are required"))
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, models.Fail("Rating must be between 1 and 5"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Fail("Validation failed: "+err.Error()))
	}

	review, err := h.svc.SubmitReview(c.Request().Context(), c.Param("truckId"), req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Fail("Food truck not found"))
		}
		c.Logger().Error("Handler.SubmitReview: ", err)
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to submit review"))
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Review submitted successfully", "data": review})
}
