package order

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"rueating/internal/models"
)

// fakeRepo simulates the storage layer in memory and records what was
// persisted so tests can assert on it.
type fakeRepo struct {
	trucks     map[string]bool
	orders     map[string]*models.Order
	failCreate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		trucks: make(map[string]bool),
		orders: make(map[string]*models.Order),
	}
}

func (f *fakeRepo) TruckExists(ctx context.Context, truckID string) (bool, error) {
	return f.trucks[truckID], nil
}

func (f *fakeRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if f.failCreate {
		return errors.New("connection reset")
	}
	cp := *order
	f.orders[order.OrderID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeRepo) ListByCustomer(ctx context.Context, customerName, customerPhone string, limit int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if customerName != "" && !strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(customerName)) {
			continue
		}
		if customerPhone != "" && (o.CustomerPhone == nil || *o.CustomerPhone != customerPhone) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	o.Status = status
	return nil
}

// fakeMenu resolves items from a fixed map. Absent items miss the same way
// the real repository does.
type fakeMenu struct {
	items map[string]models.MenuItem
}

func (f *fakeMenu) FindAvailableItem(ctx context.Context, truckID, itemID string) (*models.MenuItem, error) {
	it, ok := f.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := it
	return &cp, nil
}

func newTestService(fr *fakeRepo, fm *fakeMenu) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(fr, fm, nil, logger)
}

func TestPlaceOrder(t *testing.T) {
	fr := newFakeRepo()
	fr.trucks["truck_001"] = true
	fm := &fakeMenu{items: map[string]models.MenuItem{
		"item_burger": {ItemID: "item_burger", Name: "Fat Darrell", Price: 8.50, Available: true},
		"item_fries":  {ItemID: "item_fries", Name: "Cheese Fries", Price: 4.25, Available: true},
	}}
	svc := newTestService(fr, fm)

	order, err := svc.PlaceOrder(context.Background(), "truck_001", models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items: []models.OrderLineRequest{
			{ItemID: "item_burger", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	if order.Status != models.StatusPending {
		t.Errorf("Status = %s; want %s", order.Status, models.StatusPending)
	}
	if order.Total != 17.00 {
		t.Errorf("Total = %.2f; want 17.00", order.Total)
	}
	if len(order.Lines) != 1 {
		t.Fatalf("got %d lines; want 1", len(order.Lines))
	}
	line := order.Lines[0]
	if line.Name != "Fat Darrell" || line.Quantity != 2 || line.Subtotal != 17.00 {
		t.Errorf("line = %+v; want 2x Fat Darrell subtotal 17.00", line)
	}
	if _, ok := fr.orders[order.OrderID]; !ok {
		t.Errorf("order %s not persisted", order.OrderID)
	}
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	fr := newFakeRepo()
	fr.trucks["truck_001"] = true
	fm := &fakeMenu{items: map[string]models.MenuItem{
		"item_burger": {ItemID: "item_burger", Name: "Fat Darrell", Price: 8.50, Available: true},
	}}
	svc := newTestService(fr, fm)

	// One unknown item aborts the whole order, valid lines included.
	_, err := svc.PlaceOrder(context.Background(), "truck_001", models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items: []models.OrderLineRequest{
			{ItemID: "item_burger", Quantity: 1},
			{ItemID: "item_ghost", Quantity: 1},
		},
	})
	if !models.IsInvalidArgument(err) {
		t.Fatalf("err = %v; want invalid argument", err)
	}
	if !strings.Contains(err.Error(), "item_ghost") {
		t.Errorf("error %q does not name the failing item", err.Error())
	}
	if len(fr.orders) != 0 {
		t.Errorf("fakeRepo.orders length = %d; want 0", len(fr.orders))
	}
}

func TestPlaceOrderDropsZeroQuantity(t *testing.T) {
	fr := newFakeRepo()
	fr.trucks["truck_001"] = true
	fm := &fakeMenu{items: map[string]models.MenuItem{
		"item_burger": {ItemID: "item_burger", Name: "Fat Darrell", Price: 8.50, Available: true},
	}}
	svc := newTestService(fr, fm)

	// Zero and negative quantities are dropped, not rejected.
	order, err := svc.PlaceOrder(context.Background(), "truck_001", models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items: []models.OrderLineRequest{
			{ItemID: "item_burger", Quantity: 1},
			{ItemID: "item_burger", Quantity: 0},
			{ItemID: "item_burger", Quantity: -3},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if len(order.Lines) != 1 {
		t.Errorf("got %d lines; want 1", len(order.Lines))
	}

	// When every line drops out the order is rejected.
	_, err = svc.PlaceOrder(context.Background(), "truck_001", models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items:        []models.OrderLineRequest{{ItemID: "item_burger", Quantity: 0}},
	})
	if !models.IsInvalidArgument(err) {
		t.Fatalf("err = %v; want invalid argument", err)
	}
	if !strings.Contains(err.Error(), "No valid items") {
		t.Errorf("error = %q; want no-valid-items message", err.Error())
	}
}

func TestPlaceOrderUnknownTruck(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMenu{})

	_, err := svc.PlaceOrder(context.Background(), "truck_404", models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items:        []models.OrderLineRequest{{ItemID: "item_burger", Quantity: 1}},
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestPlaceOrderStorageFailure(t *testing.T) {
	fr := newFakeRepo()
	fr.trucks["truck_001"] = true
	fr.failCreate = true
	fm := &fakeMenu{items: map[string]models.MenuItem{
		"item_burger": {ItemID: "item_burger", Name: "Fat Darrell", Price: 8.50, Available: true},
	}}
	svc := newTestService(fr, fm)

	_, err := svc.PlaceOrder(context.Background(), "truck_001", models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items:        []models.OrderLineRequest{{ItemID: "item_burger", Quantity: 1}},
	})
	if err == nil {
		t.Fatal("PlaceOrder succeeded despite storage failure")
	}
	if models.IsInvalidArgument(err) || errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v; want plain storage error", err)
	}
	if len(fr.orders) != 0 {
		t.Errorf("fakeRepo.orders length = %d; want 0", len(fr.orders))
	}
}

func TestPlaceOrderRoundsTotalOnce(t *testing.T) {
	fr := newFakeRepo()
	fr.trucks["truck_001"] = true
	fm := &fakeMenu{items: map[string]models.MenuItem{
		"item_a": {ItemID: "item_a", Name: "A", Price: 0.555, Available: true},
		"item_b": {ItemID: "item_b", Name: "B", Price: 0.555, Available: true},
		"item_c": {ItemID: "item_c", Name: "C", Price: 0.555, Available: true},
	}}
	svc := newTestService(fr, fm)

	order, err := svc.PlaceOrder(context.Background(), "truck_001", models.PlaceOrderRequest{
		CustomerName: "Alice",
		Items: []models.OrderLineRequest{
			{ItemID: "item_a", Quantity: 1},
			{ItemID: "item_b", Quantity: 1},
			{ItemID: "item_c", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	// 3 * 0.555 rounds to 1.67 as one sum; rounding per line would give 1.68.
	if order.Total != 1.67 {
		t.Errorf("Total = %.2f; want 1.67", order.Total)
	}
}

func TestFindOrdersRequiresFilter(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMenu{})

	_, err := svc.FindOrders(context.Background(), "", "")
	if !models.IsInvalidArgument(err) {
		t.Errorf("err = %v; want invalid argument", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	fr := newFakeRepo()
	fr.orders["o1"] = &models.Order{OrderID: "o1", Status: models.StatusPending}
	fr.orders["o2"] = &models.Order{OrderID: "o2", Status: models.StatusCompleted}
	svc := newTestService(fr, &fakeMenu{})
	ctx := context.Background()

	order, err := svc.UpdateStatus(ctx, "o1", models.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus pending->confirmed error: %v", err)
	}
	if order.Status != models.StatusConfirmed {
		t.Errorf("Status = %s; want %s", order.Status, models.StatusConfirmed)
	}
	if fr.orders["o1"].Status != models.StatusConfirmed {
		t.Errorf("persisted status = %s; want %s", fr.orders["o1"].Status, models.StatusConfirmed)
	}

	// Skipping a stage is rejected.
	if _, err := svc.UpdateStatus(ctx, "o1", models.StatusReady); !models.IsInvalidArgument(err) {
		t.Errorf("confirmed->ready err = %v; want invalid argument", err)
	}
	// Completed is terminal.
	if _, err := svc.UpdateStatus(ctx, "o2", models.StatusCancelled); !models.IsInvalidArgument(err) {
		t.Errorf("completed->cancelled err = %v; want invalid argument", err)
	}
	// Unrecognized status names never reach the repository.
	if _, err := svc.UpdateStatus(ctx, "o1", "shipped"); !models.IsInvalidArgument(err) {
		t.Errorf("unknown status err = %v; want invalid argument", err)
	}
	if _, err := svc.UpdateStatus(ctx, "o404", models.StatusConfirmed); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing order err = %v; want ErrNotFound", err)
	}
}
