package discovery

import (
	"context"
	"fmt"
	"math"
	"testing"

	"rueating/internal/location"
	"rueating/internal/models"
)

func TestHaversine(t *testing.T) {
	// Zero distance for identical points.
	if d := Haversine(40.5007, -74.4474, 40.5007, -74.4474); d != 0 {
		t.Errorf("Haversine identical points = %f; want 0", d)
	}

	// Symmetric in its arguments.
	d1 := Haversine(40.5007, -74.4474, 40.5100, -74.4550)
	d2 := Haversine(40.5100, -74.4550, 40.5007, -74.4474)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Haversine not symmetric: %f vs %f", d1, d2)
	}

	// Campus-scale sanity check: about 1.2 km between the student center
	// and George Street.
	if d1 < 0.5 || d1 > 2.0 {
		t.Errorf("Haversine campus distance = %f km; want roughly 1.2", d1)
	}
}

func TestRankNearbyCampus(t *testing.T) {
	src := location.NewStaticSource()
	var candidates []models.FoodTruck
	for i := 1; i <= 20; i++ {
		candidates = append(candidates, models.FoodTruck{TruckID: fmt.Sprintf("truck_%03d", i)})
	}
	origin := location.Coordinate{Latitude: 40.5007, Longitude: -74.4474}

	// Defaults: 5 km radius covers the whole campus, limit trims to 10.
	got, err := RankNearby(context.Background(), origin, 0, 0, candidates, src)
	if err != nil {
		t.Fatalf("RankNearby error: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("got %d results; want 10", len(got))
	}
	if got[0].TruckID != "truck_001" {
		t.Errorf("closest truck = %s; want truck_001", got[0].TruckID)
	}
	if *got[0].DistanceKm != 0 {
		t.Errorf("closest distance = %.2f; want 0.00", *got[0].DistanceKm)
	}
	for i := 1; i < len(got); i++ {
		if *got[i].DistanceKm < *got[i-1].DistanceKm {
			t.Errorf("results out of order at %d: %.2f after %.2f", i, *got[i].DistanceKm, *got[i-1].DistanceKm)
		}
	}

	// A generous limit returns everything within the radius.
	got, err = RankNearby(context.Background(), origin, 5, 50, candidates, src)
	if err != nil {
		t.Fatalf("RankNearby error: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("got %d results within 5 km; want all 20", len(got))
	}
	for _, r := range got {
		if *r.DistanceKm > 5 {
			t.Errorf("%s at %.2f km exceeds the radius", r.TruckID, *r.DistanceKm)
		}
	}
}

func TestRankNearbyEdges(t *testing.T) {
	src := location.NewStaticSourceFromTable(map[string]location.TruckLocation{
		"near": {Coordinate: location.Coordinate{Latitude: 40.5010, Longitude: -74.4480}},
		"far":  {Coordinate: location.Coordinate{Latitude: 40.7128, Longitude: -74.0060}},
	})
	candidates := []models.FoodTruck{
		{TruckID: "near"},
		{TruckID: "far"},
		{TruckID: "nowhere"},
	}
	origin := location.Coordinate{Latitude: 40.5007, Longitude: -74.4474}

	got, err := RankNearby(context.Background(), origin, 5, 10, candidates, src)
	if err != nil {
		t.Fatalf("RankNearby error: %v", err)
	}
	// "far" is outside the radius and "nowhere" has no location; neither
	// appears and neither is an error.
	if len(got) != 1 || got[0].TruckID != "near" {
		t.Fatalf("got %+v; want only near", got)
	}

	// NaN and out-of-range origins are rejected.
	for _, bad := range []location.Coordinate{
		{Latitude: math.NaN(), Longitude: -74.4474},
		{Latitude: 91, Longitude: -74.4474},
		{Latitude: 40.5, Longitude: 181},
	} {
		if _, err := RankNearby(context.Background(), bad, 5, 10, candidates, src); !models.IsInvalidArgument(err) {
			t.Errorf("origin %+v: err = %v; want invalid argument", bad, err)
		}
	}
}

func TestRankNearbyRoundsBeforeRadiusCheck(t *testing.T) {
	// 0.045 degrees of latitude is about 5.004 km, which rounds to 5.00
	// and therefore sits inside a 5 km radius.
	src := location.NewStaticSourceFromTable(map[string]location.TruckLocation{
		"edge": {Coordinate: location.Coordinate{Latitude: 40.5457, Longitude: -74.4474}},
	})
	candidates := []models.FoodTruck{{TruckID: "edge"}}
	origin := location.Coordinate{Latitude: 40.5007, Longitude: -74.4474}

	raw := Haversine(origin.Latitude, origin.Longitude, 40.5457, -74.4474)
	if raw <= 5.0 || raw >= 5.005 {
		t.Fatalf("fixture drifted: raw distance %f not in (5.0, 5.005)", raw)
	}

	got, err := RankNearby(context.Background(), origin, 5, 10, candidates, src)
	if err != nil {
		t.Fatalf("RankNearby error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("truck at %.4f km raw excluded; rounded distance should pass", raw)
	}
	if *got[0].DistanceKm != 5.00 {
		t.Errorf("distance = %v; want 5.00", *got[0].DistanceKm)
	}
}

func TestRankByCuisine(t *testing.T) {
	src := location.NewStaticSourceFromTable(map[string]location.TruckLocation{
		"t1": {Coordinate: location.Coordinate{Latitude: 40.5010, Longitude: -74.4480}},
		"t2": {Coordinate: location.Coordinate{Latitude: 40.5100, Longitude: -74.4550}},
	})
	candidates := []models.FoodTruck{
		{TruckID: "t1", CuisineTags: []string{"mexican", "tacos"}, AvgRating: 4.1},
		{TruckID: "t2", CuisineTags: []string{"mexican"}, AvgRating: 4.8},
		{TruckID: "t3", CuisineTags: []string{"mexican"}, AvgRating: 4.5},
		{TruckID: "t4", CuisineTags: []string{"korean"}, AvgRating: 5.0},
	}

	// Without an origin: tag filter plus rating order.
	got, err := RankByCuisine(context.Background(), candidates, "mexican", nil, src)
	if err != nil {
		t.Fatalf("RankByCuisine error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results; want 3", len(got))
	}
	if got[0].TruckID != "t2" || got[1].TruckID != "t3" || got[2].TruckID != "t1" {
		t.Errorf("rating order = %s, %s, %s; want t2, t3, t1", got[0].TruckID, got[1].TruckID, got[2].TruckID)
	}
	if got[0].DistanceKm != nil {
		t.Errorf("distance annotated without an origin")
	}

	// With an origin the ranking flips to distance, and the unlocatable t3
	// sorts last despite its rating.
	origin := &location.Coordinate{Latitude: 40.5007, Longitude: -74.4474}
	got, err = RankByCuisine(context.Background(), candidates, "mexican", origin, src)
	if err != nil {
		t.Fatalf("RankByCuisine error: %v", err)
	}
	if got[0].TruckID != "t1" || got[1].TruckID != "t2" || got[2].TruckID != "t3" {
		t.Errorf("distance order = %s, %s, %s; want t1, t2, t3", got[0].TruckID, got[1].TruckID, got[2].TruckID)
	}
	if got[0].DistanceKm == nil || got[2].DistanceKm != nil {
		t.Errorf("distance annotations wrong: located trucks get one, unlocated do not")
	}

	// Tag matching is exact, not substring.
	got, err = RankByCuisine(context.Background(), candidates, "mex", nil, src)
	if err != nil {
		t.Fatalf("RankByCuisine error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("partial tag matched %d trucks; want 0", len(got))
	}
}
