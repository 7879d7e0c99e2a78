package menu

import (
	"context"
	"errors"
	"fmt"

	"rueating/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the menu repository, which
// also owns reviews and schedules.
type RepositoryInterface interface {
	ListMenuVersions(ctx context.Context, truckID string) ([]models.MenuVersion, error)
	ListItems(ctx context.Context, menuID string) ([]models.MenuItem, error)
	FindAvailableItem(ctx context.Context, truckID, itemID string) (*models.MenuItem, error)
	ListPublishedReviews(ctx context.Context, truckID string, limit int) ([]models.Review, error)
	InsertReview(ctx context.Context, review *models.Review) error
	WeeklySchedule(ctx context.Context, truckID string) ([]models.Schedule, error)
	TruckExists(ctx context.Context, truckID string) (bool, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new menu repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// ListMenuVersions returns every menu version for a truck, newest window
// first. The service picks the currently-effective one.
func (r *Repository) ListMenuVersions(ctx context.Context, truckID string) ([]models.MenuVersion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT menu_id, truck_id, version_no, effective_from, effective_to
		FROM menu_version
		WHERE truck_id = $1
		ORDER BY effective_from DESC`, truckID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListMenuVersions.Query: %w", err)
	}
	defer rows.Close()

	var versions []models.MenuVersion
	for rows.Next() {
		var v models.MenuVersion
		if err := rows.Scan(&v.MenuID, &v.TruckID, &v.VersionNo, &v.EffectiveFrom, &v.EffectiveTo); err != nil {
			return nil, fmt.Errorf("repository.ListMenuVersions.Scan: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListMenuVersions.Rows: %w", err)
	}
	return versions, nil
}

// ListItems returns all items on one menu version, ordered by name.
func (r *Repository) ListItems(ctx context.Context, menuID string) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT item_id, menu_id, name, COALESCE(description, ''), price, COALESCE(dietary_tags, '{}'), available
		FROM menu_item
		WHERE menu_id = $1
		ORDER BY name`, menuID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListItems.Query: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(&it.ItemID, &it.MenuID, &it.Name, &it.Description, &it.Price, &it.DietaryTags, &it.Available); err != nil {
			return nil, fmt.Errorf("repository.ListItems.Scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListItems.Rows: %w", err)
	}
	return items, nil
}

// FindAvailableItem looks an item up on the truck's currently-effective menu
// version. Only available items match; a miss is models.ErrNotFound.
func (r *Repository) FindAvailableItem(ctx context.Context, truckID, itemID string) (*models.MenuItem, error) {
	row := r.db.QueryRow(ctx, `
		SELECT mi.item_id, mi.menu_id, mi.name, COALESCE(mi.description, ''), mi.price, COALESCE(mi.dietary_tags, '{}'), mi.available
		FROM menu_item mi
		JOIN menu_version mv ON mi.menu_id = mv.menu_id
		WHERE mi.item_id = $1
		  AND mv.truck_id = $2
		  AND mi.available = true
		  AND mv.effective_from <= NOW()
		  AND (mv.effective_to IS NULL OR mv.effective_to > NOW())`,
		itemID, truckID)

	var it models.MenuItem
	err := row.Scan(&it.ItemID, &it.MenuID, &it.Name, &it.Description, &it.Price, &it.DietaryTags, &it.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindAvailableItem: %w", err)
	}
	return &it, nil
}

// ListPublishedReviews returns the newest published reviews for a truck.
func (r *Repository) ListPublishedReviews(ctx context.Context, truckID string, limit int) ([]models.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT review_id, truck_id, user_name, rating, COALESCE(text, ''), status, upvotes, downvotes, created_at
		FROM review
		WHERE truck_id = $1 AND status = 'published'
		ORDER BY created_at DESC
		LIMIT $2`, truckID, limit)
	if err != nil {
		return nil, fmt.Errorf("repository.ListPublishedReviews.Query: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ReviewID, &rv.TruckID, &rv.UserName, &rv.Rating, &rv.Text, &rv.Status, &rv.Upvotes, &rv.Downvotes, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository.ListPublishedReviews.Scan: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListPublishedReviews.Rows: %w", err)
	}
	return reviews, nil
}

// InsertReview persists a new review and fills in its created_at.
func (r *Repository) InsertReview(ctx context.Context, review *models.Review) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO review (review_id, truck_id, user_name, rating, text, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		review.ReviewID, review.TruckID, review.UserName, review.Rating, review.Text, review.Status,
	).Scan(&review.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.InsertReview: %w", err)
	}
	return nil
}

// WeeklySchedule returns a truck's recurring slots, Monday first.
func (r *Repository) WeeklySchedule(ctx context.Context, truckID string) ([]models.Schedule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT schedule_id, day_of_week, start_time, end_time, typical_location
		FROM schedule
		WHERE truck_id = $1
		ORDER BY
			CASE day_of_week
				WHEN 'Monday' THEN 1
				WHEN 'Tuesday' THEN 2
				WHEN 'Wednesday' THEN 3
				WHEN 'Thursday' THEN 4
				WHEN 'Friday' THEN 5
				WHEN 'Saturday' THEN 6
				WHEN 'Sunday' THEN 7
			END`, truckID)
	if err != nil {
		return nil, fmt.Errorf("repository.WeeklySchedule.Query: %w", err)
	}
	defer rows.Close()

	var slots []models.Schedule
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ScheduleID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.TypicalLocation); err != nil {
			return nil, fmt.Errorf("repository.WeeklySchedule.Scan: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.WeeklySchedule.Rows: %w", err)
	}
	return slots, nil
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
