package order

import (
	"context"
	"errors"
	"fmt"

	"rueating/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the order repository.
type RepositoryInterface interface {
	TruckExists(ctx context.Context, truckID string) (bool, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerName, customerPhone string, limit int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new order repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// TruckExists reports whether a truck is registered.
func (r *Repository) TruckExists(ctx context.Context, truckID string) (bool, error) {
	var id string
	err := r.db.QueryRow(ctx, `SELECT truck_id FROM food_truck WHERE truck_id = $1`, truckID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("repository.TruckExists: %w", err)
	}
	return true, nil
}

// CreateOrder writes the order header and every line item in one
// transaction. Either all rows land or none do; a reader never observes an
// order with a subset of its lines.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.CreateOrder: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO "order" (order_id, truck_id, customer_name, customer_phone, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.OrderID, order.TruckID, order.CustomerName, order.CustomerPhone,
		order.Total, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository.CreateOrder: insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_item (order_item_id, order_id, item_id, item_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.OrderItemID, order.OrderID, line.ItemID, line.Name,
			line.Quantity, line.UnitPrice, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("repository.CreateOrder: insert line %s: %w", line.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository.CreateOrder: commit: %w", err)
	}
	return nil
}

// FindByID retrieves a single order with its line items.
func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	row := r.db.QueryRow(ctx, `
		SELECT o.order_id, o.truck_id, ft.name, o.customer_name, o.customer_phone, o.total_amount, o.status, o.created_at, o.updated_at
		FROM "order" o
		JOIN food_truck ft ON o.truck_id = ft.truck_id
		WHERE o.order_id = $1`, orderID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}

	if err := r.attachLines(ctx, order); err != nil {
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return order, nil
}

// ListByCustomer finds orders matching a customer name (partial,
// case-insensitive) and/or exact phone number, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerName, customerPhone string, limit int) ([]models.Order, error) {
	query := `
		SELECT o.order_id, o.truck_id, ft.name, o.customer_name, o.customer_phone, o.total_amount, o.status, o.created_at, o.updated_at
		FROM "order" o
		JOIN food_truck ft ON o.truck_id = ft.truck_id
		WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if customerName != "" {
		query += fmt.Sprintf(" AND o.customer_name ILIKE $%d", argIdx)
		args = append(args, "%"+customerName+"%")
		argIdx++
	}
	if customerPhone != "" {
		query += fmt.Sprintf(" AND o.customer_phone = $%d", argIdx)
		args = append(args, customerPhone)
		argIdx++
	}
	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByCustomer.Query: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListByCustomer.Scan: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListByCustomer.Rows: %w", err)
	}

	for i := range orders {
		if err := r.attachLines(ctx, &orders[i]); err != nil {
			return nil, fmt.Errorf("repository.ListByCustomer: %w", err)
		}
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status. Transition legality is the
// service's responsibility.
func (r *Repository) UpdateStatus(ctx context.Context, orderID, status string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE "order"
		SET status = $1, updated_at = NOW()
		WHERE order_id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.OrderID,
		&o.TruckID,
		&o.TruckName,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &o, nil
}

func (r *Repository) attachLines(ctx context.Context, order *models.Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT order_item_id, item_id, item_name, quantity, unit_price, subtotal
		FROM order_item
		WHERE order_id = $1
		ORDER BY item_name`, order.OrderID)
	if err != nil {
		return fmt.Errorf("attachLines.Query: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.OrderItemID, &l.ItemID, &l.Name, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return fmt.Errorf("attachLines.Scan: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("attachLines.Rows: %w", err)
	}
	order.Lines = lines
	return nil
}
