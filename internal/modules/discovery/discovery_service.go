package discovery

import (
	"context"
	"fmt"

	"rueating/internal/location"
	"rueating/internal/models"
	"rueating/internal/observability"

	"github.com/google/uuid"
)

// MenuInfoInterface is the slice of the menu module the details endpoint needs.
type MenuInfoInterface interface {
	CurrentMenu(ctx context.Context, truckID string) ([]models.MenuItem, error)
	PublishedReviews(ctx context.Context, truckID string, limit int) ([]models.Review, error)
	WeeklySchedule(ctx context.Context, truckID string) ([]models.Schedule, error)
}

// PingRecorderInterface records live position pings.
type PingRecorderInterface interface {
	RecordPing(ctx context.Context, truckID string, c location.Coordinate) error
}

// NearbyQuery is a proximity search request. RadiusKm and Limit of zero mean
// "use the defaults" (5 km, 10 results).
type NearbyQuery struct {
	Origin   location.Coordinate
	RadiusKm float64
	Limit    int
}

// ServiceInterface defines the contract for the discovery service.
type ServiceInterface interface {
	ListTrucks(ctx context.Context) ([]models.FoodTruck, error)
	CreateTruck(ctx context.Context, req models.CreateTruckRequest) (*models.FoodTruck, error)
	GetTruck(ctx context.Context, truckID string) (*models.TruckWithLocation, error)
	UpdateTruck(ctx context.Context, truckID string, req models.UpdateTruckRequest) (*models.FoodTruck, error)
	GetTruckDetails(ctx context.Context, truckID string) (*models.TruckDetails, error)
	ListTrucksWithLocation(ctx context.Context) ([]models.TruckWithLocation, error)
	NearbyTrucks(ctx context.Context, q NearbyQuery) ([]models.TruckWithLocation, error)
	TrucksByCuisine(ctx context.Context, cuisine string, origin *location.Coordinate) ([]models.TruckWithLocation, error)
	CuisineTypes(ctx context.Context) ([]string, error)
	RecordPing(ctx context.Context, truckID string, c location.Coordinate) error
}

// Service implements the discovery service logic.
type Service struct {
	repo      RepositoryInterface
	locations location.Source
	pings     PingRecorderInterface // nil when live tracking is not configured
	menuInfo  MenuInfoInterface
}

// NewService creates a new discovery service.
func NewService(repo RepositoryInterface, locations location.Source, pings PingRecorderInterface, menuInfo MenuInfoInterface) *Service {
	return &Service{
		repo:      repo,
		locations: locations,
		pings:     pings,
		menuInfo:  menuInfo,
	}
}

// ListTrucks lists every truck, newest first.
func (s *Service) ListTrucks(ctx context.Context) ([]models.FoodTruck, error) {
	return s.repo.ListTrucks(ctx)
}

// CreateTruck registers a new truck.
func (s *Service) CreateTruck(ctx context.Context, req models.CreateTruckRequest) (*models.FoodTruck, error) {
	tier := req.PriceTier
	if tier == "" {
		tier = "$$"
	}
	tags := req.CuisineTags
	if tags == nil {
		tags = []string{}
	}
	truck := &models.FoodTruck{
		TruckID:     uuid.NewString(),
		Name:        req.Name,
		CuisineTags: tags,
		PriceTier:   tier,
		AvgRating:   req.AvgRating,
	}
	if err := s.repo.InsertTruck(ctx, truck); err != nil {
		return nil, fmt.Errorf("service.CreateTruck: %w", err)
	}
	return truck, nil
}

// GetTruck retrieves one truck, annotated with its location when known.
func (s *Service) GetTruck(ctx context.Context, truckID string) (*models.TruckWithLocation, error) {
	truck, err := s.repo.FindTruckByID(ctx, truckID)
	if err != nil {
		return nil, err
	}
	return s.withLocation(ctx, *truck), nil
}

// UpdateTruck applies a partial update to a truck.
func (s *Service) UpdateTruck(ctx context.Context, truckID string, req models.UpdateTruckRequest) (*models.FoodTruck, error) {
	return s.repo.UpdateTruck(ctx, truckID, req)
}

// GetTruckDetails returns one truck with its current menu, recent published
// reviews and weekly schedule.
func (s *Service) GetTruckDetails(ctx context.Context, truckID string) (*models.TruckDetails, error) {
	truck, err := s.GetTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}

	menu, err := s.menuInfo.CurrentMenu(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("service.GetTruckDetails: menu: %w", err)
	}
	reviews, err := s.menuInfo.PublishedReviews(ctx, truckID, 10)
	if err != nil {
		return nil, fmt.Errorf("service.GetTruckDetails: reviews: %w", err)
	}
	schedule, err := s.menuInfo.WeeklySchedule(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("service.GetTruckDetails: schedule: %w", err)
	}

	return &models.TruckDetails{
		TruckWithLocation: *truck,
		Menu:              menu,
		Reviews:           reviews,
		Schedule:          schedule,
	}, nil
}

// ListTrucksWithLocation lists every truck, annotated with locations where
// they resolve.
func (s *Service) ListTrucksWithLocation(ctx context.Context) ([]models.TruckWithLocation, error) {
	trucks, err := s.repo.ListTrucks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.TruckWithLocation, 0, len(trucks))
	for _, t := range trucks {
		out = append(out, *s.withLocation(ctx, t))
	}
	return out, nil
}

// NearbyTrucks runs a proximity search over the whole catalog.
func (s *Service) NearbyTrucks(ctx context.Context, q NearbyQuery) ([]models.TruckWithLocation, error) {
	candidates, err := s.repo.ListTrucksByRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NearbyTrucks: %w", err)
	}
	results, err := RankNearby(ctx, q.Origin, q.RadiusKm, q.Limit, candidates, s.locations)
	if err != nil {
		return nil, err
	}
	observability.NearbySearchesTotal.Inc()
	return results, nil
}

// TrucksByCuisine searches by cuisine tag, ranked by distance when an origin
// is given and by rating otherwise.
func (s *Service) TrucksByCuisine(ctx context.Context, cuisine string, origin *location.Coordinate) ([]models.TruckWithLocation, error) {
	candidates, err := s.repo.ListTrucksByCuisine(ctx, cuisine)
	if err != nil {
		return nil, fmt.Errorf("service.TrucksByCuisine: %w", err)
	}
	results, err := RankByCuisine(ctx, candidates, cuisine, origin, s.locations)
	if err != nil {
		return nil, err
	}
	observability.CuisineSearchesTotal.Inc()
	return results, nil
}

// CuisineTypes lists the distinct cuisine tags in the catalog.
func (s *Service) CuisineTypes(ctx context.Context) ([]string, error) {
	return s.repo.ListCuisineTypes(ctx)
}

// RecordPing stores a live position report for a truck. The truck must exist.
func (s *Service) RecordPing(ctx context.Context, truckID string, c location.Coordinate) error {
	if s.pings == nil {
		return models.ErrNoLocationSource
	}
	if !c.Valid() {
		return models.NewInvalidArgument("Invalid latitude or longitude values")
	}
	if _, err := s.repo.FindTruckByID(ctx, truckID); err != nil {
		return err
	}
	return s.pings.RecordPing(ctx, truckID, c)
}

func (s *Service) withLocation(ctx context.Context, truck models.FoodTruck) *models.TruckWithLocation {
	out := models.TruckWithLocation{FoodTruck: truck}
	if loc, ok := s.locations.Lookup(ctx, truck.TruckID); ok {
		out.Latitude = loc.Latitude
		out.Longitude = loc.Longitude
		out.Address = loc.Address
		out.Phone = loc.Phone
		out.ImageURL = loc.ImageURL
	}
	return &out
}
