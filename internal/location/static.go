package location

import "context"

// campusTable holds the known parking spots around Rutgers University,
// New Brunswick, NJ. It stands in for a live feed until enough trucks
// report pings.
var campusTable = map[string]TruckLocation{
	"truck_001": {Coordinate{40.5007, -74.4474}, "Rutgers Student Center, New Brunswick, NJ", "(732) 555-0101", "https://images.unsplash.com/photo-1565299585323-38174c0b5e3a?w=400&h=300&fit=crop"},
	"truck_002": {Coordinate{40.5050, -74.4520}, "College Ave Campus, New Brunswick, NJ", "(732) 555-0102", "https://images.unsplash.com/photo-1550547660-d9450f859349?w=400&h=300&fit=crop"},
	"truck_003": {Coordinate{40.4950, -74.4420}, "Busch Campus, Piscataway, NJ", "(732) 555-0103", "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351?w=400&h=300&fit=crop"},
	"truck_004": {Coordinate{40.5100, -74.4550}, "George Street, New Brunswick, NJ", "(732) 555-0104", "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=400&h=300&fit=crop"},
	"truck_005": {Coordinate{40.5000, -74.4500}, "Rutgers Plaza, New Brunswick, NJ", "(732) 555-0105", "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=400&h=300&fit=crop"},
	"truck_006": {Coordinate{40.5020, -74.4480}, "Livingston Campus, Piscataway, NJ", "(732) 555-0106", "https://images.unsplash.com/photo-1544025162-d76694265947?w=400&h=300&fit=crop"},
	"truck_007": {Coordinate{40.4980, -74.4450}, "Cook-Douglass Campus, New Brunswick, NJ", "(732) 555-0107", "https://images.unsplash.com/photo-1569718212165-3a8278d5f624?w=400&h=300&fit=crop"},
	"truck_008": {Coordinate{40.5070, -74.4530}, "Downtown New Brunswick, NJ", "(732) 555-0108", "https://images.unsplash.com/photo-1512058564366-18510be2db19?w=400&h=300&fit=crop"},
	"truck_009": {Coordinate{40.5030, -74.4490}, "Rutgers Plaza, New Brunswick, NJ", "(732) 555-0109", "https://images.unsplash.com/photo-1563805042-7684c019e1cb?w=400&h=300&fit=crop"},
	"truck_010": {Coordinate{40.4960, -74.4430}, "Busch Campus, Piscataway, NJ", "(732) 555-0110", "https://images.unsplash.com/photo-1559314809-0d155014e29e?w=400&h=300&fit=crop"},
	"truck_011": {Coordinate{40.5090, -74.4540}, "College Ave Campus, New Brunswick, NJ", "(732) 555-0111", "https://images.unsplash.com/photo-1529042410759-befb1204b468?w=400&h=300&fit=crop"},
	"truck_012": {Coordinate{40.5010, -74.4460}, "George Street, New Brunswick, NJ", "(732) 555-0112", "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=400&h=300&fit=crop"},
	"truck_013": {Coordinate{40.5040, -74.4510}, "Rutgers Student Center, New Brunswick, NJ", "(732) 555-0113", "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=400&h=300&fit=crop"},
	"truck_014": {Coordinate{40.4970, -74.4440}, "Livingston Campus, Piscataway, NJ", "(732) 555-0114", "https://images.unsplash.com/photo-1559339352-11d035aa65de?w=400&h=300&fit=crop"},
	"truck_015": {Coordinate{40.5080, -74.4560}, "Downtown New Brunswick, NJ", "(732) 555-0115", "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=400&h=300&fit=crop"},
	"truck_016": {Coordinate{40.4990, -74.4410}, "Cook-Douglass Campus, New Brunswick, NJ", "(732) 555-0116", "https://images.unsplash.com/photo-1511920170033-83939bb485ea?w=400&h=300&fit=crop"},
	"truck_017": {Coordinate{40.5060, -74.4520}, "Busch Campus, Piscataway, NJ", "(732) 555-0117", "https://images.unsplash.com/photo-1569718212165-3a8278d5f624?w=400&h=300&fit=crop"},
	"truck_018": {Coordinate{40.5025, -74.4475}, "Rutgers Plaza, New Brunswick, NJ", "(732) 555-0118", "https://images.unsplash.com/photo-1528735602780-2552fd46c7af?w=400&h=300&fit=crop"},
	"truck_019": {Coordinate{40.5005, -74.4495}, "College Ave Campus, New Brunswick, NJ", "(732) 555-0119", "https://images.unsplash.com/photo-1626082927389-6cd097cdc6ec?w=400&h=300&fit=crop"},
	"truck_020": {Coordinate{40.5035, -74.4505}, "George Street, New Brunswick, NJ", "(732) 555-0120", "https://images.unsplash.com/photo-1553530666-ba11a7da3888?w=400&h=300&fit=crop"},
}

// StaticSource serves locations from an in-memory table.
type StaticSource struct {
	table map[string]TruckLocation
}

// NewStaticSource returns a source backed by the default campus table.
func NewStaticSource() *StaticSource {
	return &StaticSource{table: campusTable}
}

// NewStaticSourceFromTable returns a source backed by the given table.
func NewStaticSourceFromTable(table map[string]TruckLocation) *StaticSource {
	return &StaticSource{table: table}
}

func (s *StaticSource) Lookup(_ context.Context, truckID string) (*TruckLocation, bool) {
	loc, ok := s.table[truckID]
	if !ok {
		return nil, false
	}
	return &loc, true
}
