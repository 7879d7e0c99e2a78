package discovery

import (
	"context"
	"math"
	"sort"

	"rueating/internal/location"
	"rueating/internal/models"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in
// kilometers, on a spherical-Earth approximation.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RankNearby resolves each candidate's coordinates through src, keeps those
// within radiusKm of origin and returns them closest-first, at most limit.
// Distances are rounded to 2 decimals before the radius comparison, so a
// truck at 5.004 km is inside a 5 km radius. Candidates with no resolvable
// location are skipped, never an error. Ties keep the candidates' input order.
func RankNearby(ctx context.Context, origin location.Coordinate, radiusKm float64, limit int, candidates []models.FoodTruck, src location.Source) ([]models.TruckWithLocation, error) {
	if !origin.Valid() {
		return nil, models.NewInvalidArgument("Invalid latitude or longitude values")
	}
	if radiusKm == 0 || math.IsNaN(radiusKm) {
		radiusKm = 5
	}
	if limit <= 0 {
		limit = 10
	}

	results := make([]models.TruckWithLocation, 0, len(candidates))
	for _, truck := range candidates {
		loc, ok := src.Lookup(ctx, truck.TruckID)
		if !ok {
			continue
		}
		d := round2(Haversine(origin.Latitude, origin.Longitude, loc.Latitude, loc.Longitude))
		if d > radiusKm {
			continue
		}
		dist := d
		results = append(results, models.TruckWithLocation{
			FoodTruck:  truck,
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
			Address:    loc.Address,
			Phone:      loc.Phone,
			ImageURL:   loc.ImageURL,
			DistanceKm: &dist,
		})
	}

	// Sort key is distance only; rating never enters a proximity ranking.
	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].DistanceKm < *results[j].DistanceKm
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// RankByCuisine keeps candidates whose tag set contains cuisine (exact,
// case-sensitive match). With an origin the results are annotated with
// distance and sorted closest-first; without one they are sorted by rating
// descending. The origin switches the ranking criterion entirely, it is not
// a secondary key. Trucks without a resolvable location keep their catalog
// fields and, when an origin is present, sort after every located truck.
func RankByCuisine(ctx context.Context, candidates []models.FoodTruck, cuisine string, origin *location.Coordinate, src location.Source) ([]models.TruckWithLocation, error) {
	if origin != nil && !origin.Valid() {
		return nil, models.NewInvalidArgument("Invalid latitude or longitude values")
	}

	results := make([]models.TruckWithLocation, 0, len(candidates))
	for _, truck := range candidates {
		if !hasTag(truck.CuisineTags, cuisine) {
			continue
		}
		entry := models.TruckWithLocation{FoodTruck: truck}
		if loc, ok := src.Lookup(ctx, truck.TruckID); ok {
			entry.Latitude = loc.Latitude
			entry.Longitude = loc.Longitude
			entry.Address = loc.Address
			entry.Phone = loc.Phone
			entry.ImageURL = loc.ImageURL
			if origin != nil {
				d := round2(Haversine(origin.Latitude, origin.Longitude, loc.Latitude, loc.Longitude))
				entry.DistanceKm = &d
			}
		}
		results = append(results, entry)
	}

	if origin != nil {
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := results[i].DistanceKm, results[j].DistanceKm
			switch {
			case di != nil && dj != nil:
				return *di < *dj
			case di != nil:
				return true
			case dj != nil:
				return false
			default:
				return results[i].AvgRating > results[j].AvgRating
			}
		})
	} else {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].AvgRating > results[j].AvgRating
		})
	}
	return results, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
