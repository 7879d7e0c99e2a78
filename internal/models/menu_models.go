package models

import "time"

// MenuVersion is a time-bounded snapshot of a truck's item list. A version is
// currently effective iff effective_from <= now < effective_to, where a nil
// effective_to means the version is open-ended.
type MenuVersion struct {
	MenuID        string     `json:"menu_id"`
	TruckID       string     `json:"truck_id"`
	VersionNo     int        `json:"version_no"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
}

// EffectiveAt reports whether the version's validity window covers t.
func (v MenuVersion) EffectiveAt(t time.Time) bool {
	if t.Before(v.EffectiveFrom) {
		return false
	}
	return v.EffectiveTo == nil || t.Before(*v.EffectiveTo)
}

// MenuItem is one priced item on a menu version.
type MenuItem struct {
	ItemID      string   `json:"item_id"`
	MenuID      string   `json:"-"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	DietaryTags []string `json:"dietary_tags"`
	Available   bool     `json:"available"`
}

// Review is a published customer review of a truck.
type Review struct {
	ReviewID  string    `json:"review_id"`
	TruckID   string    `json:"truck_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	Status    string    `json:"status"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReviewRequest represents the data needed to submit a review.
type CreateReviewRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Text     string `json:"text,omitempty"`
}

// Schedule is one weekly recurring slot where a truck parks.
type Schedule struct {
	ScheduleID      string `json:"-"`
	DayOfWeek       string `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	TypicalLocation string `json:"typical_location"`
}
