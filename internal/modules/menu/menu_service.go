package menu

import (
	"context"
	"fmt"
	"time"

	"rueating/internal/models"

	"github.com/google/uuid"
)

// ServiceInterface defines the contract for the menu service.
type ServiceInterface interface {
	CurrentMenu(ctx context.Context, truckID string) ([]models.MenuItem, error)
	FindAvailableItem(ctx context.Context, truckID, itemID string) (*models.MenuItem, error)
	PublishedReviews(ctx context.Context, truckID string, limit int) ([]models.Review, error)
	SubmitReview(ctx context.Context, truckID string, req models.CreateReviewRequest) (*models.Review, error)
	WeeklySchedule(ctx context.Context, truckID string) ([]models.Schedule, error)
}

// Service implements the menu service logic.
type Service struct {
	repo RepositoryInterface
	now  func() time.Time
}

// NewService creates a new menu service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CurrentMenu returns the items of the truck's currently-effective menu
// version. A truck with no effective version has an empty menu.
func (s *Service) CurrentMenu(ctx context.Context, truckID string) ([]models.MenuItem, error) {
	versions, err := s.repo.ListMenuVersions(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("service.CurrentMenu: %w", err)
	}
	now := s.now()
	for _, v := range versions {
		if v.EffectiveAt(now) {
			return s.repo.ListItems(ctx, v.MenuID)
		}
	}
	return []models.MenuItem{}, nil
}

// FindAvailableItem resolves one available item on the truck's
// currently-effective menu version.
func (s *Service) FindAvailableItem(ctx context.Context, truckID, itemID string) (*models.MenuItem, error) {
	return s.repo.FindAvailableItem(ctx, truckID, itemID)
}

// PublishedReviews returns the newest published reviews for a truck.
func (s *Service) PublishedReviews(ctx context.Context, truckID string, limit int) ([]models.Review, error) {
	return s.repo.ListPublishedReviews(ctx, truckID, limit)
}

// SubmitReview records a review against an existing truck. Reviews publish
// immediately; there is no moderation queue.
func (s *Service) SubmitReview(ctx context.Context, truckID string, req models.CreateReviewRequest) (*models.Review, error) {
	exists, err := s.repo.TruckExists(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("service.SubmitReview: %w", err)
	}
	if !exists {
		return nil, models.ErrNotFound
	}

	review := &models.Review{
		ReviewID: uuid.NewString(),
		TruckID:  truckID,
		UserName: req.UserName,
		Rating:   req.Rating,
		Text:     req.Text,
		Status:   "published",
	}
	if err := s.repo.InsertReview(ctx, review); err != nil {
		return nil, fmt.Errorf("service.SubmitReview: %w", err)
	}
	return review, nil
}

// WeeklySchedule returns a truck's recurring slots.
func (s *Service) WeeklySchedule(ctx context.Context, truckID string) ([]models.Schedule, error) {
	return s.repo.WeeklySchedule(ctx, truckID)
}
