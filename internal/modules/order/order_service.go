package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"rueating/internal/models"
	"rueating/internal/observability"

	"github.com/google/uuid"
)

// MenuSourceInterface resolves items against a truck's currently-effective
// menu. A miss (unknown or unavailable item) is models.ErrNotFound.
type MenuSourceInterface interface {
	FindAvailableItem(ctx context.Context, truckID, itemID string) (*models.MenuItem, error)
}

// NotifierInterface delivers a best-effort alert once an order has committed.
type NotifierInterface interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
}

// ServiceInterface defines the contract for the order service.
type ServiceInterface interface {
	PlaceOrder(ctx context.Context, truckID string, req models.PlaceOrderRequest) (*models.Order, error)
	FindOrders(ctx context.Context, customerName, customerPhone string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}

// Service implements the order service logic.
type Service struct {
	repo     RepositoryInterface
	menu     MenuSourceInterface
	notifier NotifierInterface // nil when alerts are not configured
	logger   *slog.Logger
}

// NewService creates a new order service.
func NewService(repo RepositoryInterface, menu MenuSourceInterface, notifier NotifierInterface, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		menu:     menu,
		notifier: notifier,
		logger:   logger,
	}
}

// PlaceOrder validates the requested lines against the truck's current menu,
// prices them, and commits the order header plus all line items atomically.
// Any invalid item aborts the whole order before anything is persisted.
//
// Item availability is checked before the transaction opens and is not
// re-read inside it, so an item going unavailable between validation and
// commit still orders.
func (s *Service) PlaceOrder(ctx context.Context, truckID string, req models.PlaceOrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" || len(req.Items) == 0 {
		observability.OrderFailuresTotal.WithLabelValues("invalid_request").Inc()
		return nil, models.NewInvalidArgument("Customer name and at least one item are required")
	}

	exists, err := s.repo.TruckExists(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceOrder: %w", err)
	}
	if !exists {
		observability.OrderFailuresTotal.WithLabelValues("truck_not_found").Inc()
		return nil, models.ErrNotFound
	}

	var lines []models.OrderLine
	total := 0.0
	for _, reqLine := range req.Items {
		if reqLine.Quantity <= 0 {
			continue // lines with no quantity are dropped, not rejected
		}

		item, err := s.menu.FindAvailableItem(ctx, truckID, reqLine.ItemID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				observability.OrderFailuresTotal.WithLabelValues("item_unavailable").Inc()
				return nil, models.NewInvalidArgument("Menu item %s not found or not available", reqLine.ItemID)
			}
			return nil, fmt.Errorf("service.PlaceOrder: item %s: %w", reqLine.ItemID, err)
		}

		subtotal := item.Price * float64(reqLine.Quantity)
		total += subtotal
		lines = append(lines, models.OrderLine{
			OrderItemID: uuid.NewString(),
			ItemID:      item.ItemID,
			Name:        item.Name,
			Quantity:    reqLine.Quantity,
			UnitPrice:   item.Price,
			Subtotal:    subtotal,
		})
	}

	if len(lines) == 0 {
		observability.OrderFailuresTotal.WithLabelValues("no_valid_items").Inc()
		return nil, models.NewInvalidArgument("No valid items in order")
	}

	var phone *string
	if req.CustomerPhone != "" {
		phone = &req.CustomerPhone
	}

	now := time.Now().UTC()
	order := &models.Order{
		OrderID:       uuid.NewString(),
		TruckID:       truckID,
		CustomerName:  req.CustomerName,
		CustomerPhone: phone,
		Lines:         lines,
		// Rounded once over the raw sum; rounding each subtotal first
		// accumulates drift.
		Total:     math.Round(total*100) / 100,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		observability.OrderFailuresTotal.WithLabelValues("storage").Inc()
		return nil, fmt.Errorf("service.PlaceOrder: %w", err)
	}

	observability.OrdersPlacedTotal.Inc()
	observability.OrderTotalDollars.Observe(order.Total)
	s.logger.Info("order placed",
		"order_id", order.OrderID,
		"truck_id", order.TruckID,
		"total", order.Total,
		"items", describeLines(order.Lines),
	)

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, order); err != nil {
			// The order is committed; a failed alert must not fail the call.
			s.logger.Warn("order alert failed", "order_id", order.OrderID, "error", err)
		}
	}

	return order, nil
}

// FindOrders returns order history matched by customer name and/or phone.
func (s *Service) FindOrders(ctx context.Context, customerName, customerPhone string) ([]models.Order, error) {
	if customerName == "" && customerPhone == "" {
		return nil, models.NewInvalidArgument("Please provide customer_name or customer_phone")
	}
	orders, err := s.repo.ListByCustomer(ctx, customerName, customerPhone, 50)
	if err != nil {
		return nil, fmt.Errorf("service.FindOrders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order along its lifecycle, rejecting transitions the
// status machine does not allow.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, models.NewInvalidArgument("Unknown order status %q", status)
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, status) {
		return nil, models.NewInvalidArgument("Order cannot move from %s to %s", order.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("service.UpdateStatus: %w", err)
	}
	order.Status = status
	return order, nil
}

// describeLines renders a compact single-line order summary for logs.
func describeLines(lines []models.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s", l.Quantity, l.Name))
	}
	return strings.Join(parts, ", ")
}
