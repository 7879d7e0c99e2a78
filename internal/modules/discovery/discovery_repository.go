package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rueating/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the truck catalog repository.
type RepositoryInterface interface {
	ListTrucks(ctx context.Context) ([]models.FoodTruck, error)
	ListTrucksByRating(ctx context.Context) ([]models.FoodTruck, error)
	ListTrucksByCuisine(ctx context.Context, cuisine string) ([]models.FoodTruck, error)
	ListCuisineTypes(ctx context.Context) ([]string, error)
	FindTruckByID(ctx context.Context, truckID string) (*models.FoodTruck, error)
	InsertTruck(ctx context.Context, truck *models.FoodTruck) error
	UpdateTruck(ctx context.Context, truckID string, req models.UpdateTruckRequest) (*models.FoodTruck, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new truck catalog repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const truckColumns = `truck_id, name, cuisine_tags, price_tier, avg_rating, reviews_count, is_open_now, created_at`

func scanTruck(row pgx.Row) (*models.FoodTruck, error) {
	var t models.FoodTruck
	err := row.Scan(
		&t.TruckID,
		&t.Name,
		&t.CuisineTags,
		&t.PriceTier,
		&t.AvgRating,
		&t.ReviewsCount,
		&t.IsOpenNow,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan truck: %w", err)
	}
	return &t, nil
}

func (r *Repository) listTrucks(ctx context.Context, query string, args ...any) ([]models.FoodTruck, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.listTrucks.Query: %w", err)
	}
	defer rows.Close()

	var trucks []models.FoodTruck
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.listTrucks.Scan: %w", err)
		}
		trucks = append(trucks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.listTrucks.Rows: %w", err)
	}
	return trucks, nil
}

// ListTrucks retrieves every truck, newest first.
func (r *Repository) ListTrucks(ctx context.Context) ([]models.FoodTruck, error) {
	return r.listTrucks(ctx, `SELECT `+truckColumns+` FROM food_truck ORDER BY created_at DESC`)
}

// ListTrucksByRating retrieves every truck, best-rated first. Proximity
// search uses this ordering as the tie-break order for equal distances.
func (r *Repository) ListTrucksByRating(ctx context.Context) ([]models.FoodTruck, error) {
	return r.listTrucks(ctx, `SELECT `+truckColumns+` FROM food_truck ORDER BY avg_rating DESC`)
}

// ListTrucksByCuisine retrieves trucks whose tag array contains cuisine,
// best-rated first.
func (r *Repository) ListTrucksByCuisine(ctx context.Context, cuisine string) ([]models.FoodTruck, error) {
	return r.listTrucks(ctx, `
		SELECT `+truckColumns+`
		FROM food_truck
		WHERE $1 = ANY(cuisine_tags)
		ORDER BY avg_rating DESC`, cuisine)
}

// ListCuisineTypes returns the distinct cuisine tags across all trucks.
func (r *Repository) ListCuisineTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT unnest(cuisine_tags) AS cuisine_type
		FROM food_truck
		ORDER BY cuisine_type`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListCuisineTypes.Query: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("repository.ListCuisineTypes.Scan: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListCuisineTypes.Rows: %w", err)
	}
	return types, nil
}

// FindTruckByID retrieves a single truck.
func (r *Repository) FindTruckByID(ctx context.Context, truckID string) (*models.FoodTruck, error) {
	row := r.db.QueryRow(ctx, `SELECT `+truckColumns+` FROM food_truck WHERE truck_id = $1`, truckID)
	truck, err := scanTruck(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindTruckByID: %w", err)
	}
	return truck, nil
}

// InsertTruck persists a new truck and fills in its created_at.
func (r *Repository) InsertTruck(ctx context.Context, truck *models.FoodTruck) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO food_truck (truck_id, name, cuisine_tags, price_tier, avg_rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		truck.TruckID, truck.Name, truck.CuisineTags, truck.PriceTier, truck.AvgRating,
	).Scan(&truck.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.InsertTruck: %w", err)
	}
	return nil
}

// UpdateTruck applies a partial update. The SET clause is assembled from the
// fields present in req and applied as one parameterized statement.
func (r *Repository) UpdateTruck(ctx context.Context, truckID string, req models.UpdateTruckRequest) (*models.FoodTruck, error) {
	var setClauses []string
	var args []interface{}
	argIdx := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.CuisineTags != nil {
		setClauses = append(setClauses, fmt.Sprintf("cuisine_tags = $%d", argIdx))
		args = append(args, req.CuisineTags)
		argIdx++
	}
	if req.PriceTier != nil {
		setClauses = append(setClauses, fmt.Sprintf("price_tier = $%d", argIdx))
		args = append(args, *req.PriceTier)
		argIdx++
	}
	if req.IsOpenNow != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_open_now = $%d", argIdx))
		args = append(args, *req.IsOpenNow)
		argIdx++
	}

	if len(setClauses) == 0 {
		// No fields to update, return the current truck data
		return r.FindTruckByID(ctx, truckID)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, truckID) // For the WHERE clause

	query := fmt.Sprintf(`
		UPDATE food_truck SET %s
		WHERE truck_id = $%d
		RETURNING `+truckColumns,
		strings.Join(setClauses, ", "), argIdx)

	truck, err := scanTruck(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateTruck: %w", err)
	}
	return truck, nil
}
