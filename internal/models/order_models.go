package models

import "time"

// Order statuses. Orders are always created as StatusPending; every later
// change must follow the transition table below.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order in status from may move to status to.
// Terminal statuses (completed, cancelled) admit no further transitions.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderLine is one validated, priced line item within an order.
// Subtotal is unit_price * quantity, kept unrounded; only the order total is
// rounded, and only once.
type OrderLine struct {
	OrderItemID string  `json:"-"`
	ItemID      string  `json:"item_id"`
	Name        string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// Order represents a placed order and its line items. An order is never
// persisted with zero lines; header and lines are written atomically.
type Order struct {
	OrderID       string      `json:"order_id"`
	TruckID       string      `json:"truck_id"`
	TruckName     string      `json:"truck_name,omitempty"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone *string     `json:"customer_phone"`
	Lines         []OrderLine `json:"items"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderLineRequest is one requested (item, quantity) pair. Lines with
// quantity <= 0 are dropped silently, not rejected.
type OrderLineRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest represents the data needed to place an order.
type PlaceOrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
