package models

import "time"

// FoodTruck represents one registered truck and its catalog attributes.
// Location is not stored here; it comes from a location.Source lookup.
type FoodTruck struct {
	TruckID      string    `json:"truck_id"`
	Name         string    `json:"name"`
	CuisineTags  []string  `json:"cuisine_tags"`
	PriceTier    string    `json:"price_tier"`
	AvgRating    float64   `json:"avg_rating"`
	ReviewsCount int       `json:"reviews_count"`
	IsOpenNow    bool      `json:"is_open_now"`
	CreatedAt    time.Time `json:"created_at"`
}

// TruckWithLocation is a FoodTruck annotated with resolved coordinates and,
// for proximity queries, the distance from the search origin in kilometers
// (rounded to 2 decimals). DistanceKm is nil when no origin was supplied.
type TruckWithLocation struct {
	FoodTruck
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Address    string   `json:"address,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	DistanceKm *float64 `json:"distance,omitempty"`
}

// TruckDetails bundles a truck with its current menu, recent published
// reviews and weekly schedule for the details endpoint.
type TruckDetails struct {
	TruckWithLocation
	Menu     []MenuItem `json:"menu"`
	Reviews  []Review   `json:"reviews"`
	Schedule []Schedule `json:"schedule"`
}

// CreateTruckRequest represents the data needed to register a new truck.
type CreateTruckRequest struct {
	Name        string   `json:"name" validate:"required"`
	CuisineTags []string `json:"cuisine_tags"`
	PriceTier   string   `json:"price_tier"`
	AvgRating   float64  `json:"avg_rating" validate:"omitempty,min=0,max=5"`
}

// UpdateTruckRequest carries a partial update. Nil fields are left untouched;
// the repository assembles the SET clause from the fields that are present.
type UpdateTruckRequest struct {
	Name        *string  `json:"name,omitempty"`
	CuisineTags []string `json:"cuisine_tags,omitempty"`
	PriceTier   *string  `json:"price_tier,omitempty"`
	IsOpenNow   *bool    `json:"is_open_now,omitempty"`
}

// PriceTiers are the accepted values for FoodTruck.PriceTier.
var PriceTiers = []string{"$", "$$", "$$$", "$$$$"}

func ValidPriceTier(tier string) bool {
	for _, t := range PriceTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// LocationPingRequest reports a truck's live position.
type LocationPingRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}
