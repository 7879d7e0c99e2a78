package location

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSource resolves truck positions from a Redis GEO index fed by live
// pings. Trucks that have never pinged fall through to the fallback source;
// trucks that have pinged keep the fallback's address/phone metadata but use
// the pinged coordinates.
type RedisSource struct {
	client   *redis.Client
	key      string
	fallback Source
}

func NewRedisSource(client *redis.Client, key string, fallback Source) *RedisSource {
	return &RedisSource{client: client, key: key, fallback: fallback}
}

func (r *RedisSource) Lookup(ctx context.Context, truckID string) (*TruckLocation, bool) {
	pos, err := r.client.GeoPos(ctx, r.key, truckID).Result()
	if err != nil || len(pos) == 0 || pos[0] == nil {
		if r.fallback != nil {
			return r.fallback.Lookup(ctx, truckID)
		}
		return nil, false
	}

	loc := &TruckLocation{
		Coordinate: Coordinate{Latitude: pos[0].Latitude, Longitude: pos[0].Longitude},
	}
	if r.fallback != nil {
		if base, ok := r.fallback.Lookup(ctx, truckID); ok {
			loc.Address = base.Address
			loc.Phone = base.Phone
			loc.ImageURL = base.ImageURL
		}
	}
	return loc, true
}

// RecordPing stores a truck's reported position in the GEO index.
func (r *RedisSource) RecordPing(ctx context.Context, truckID string, c Coordinate) error {
	err := r.client.GeoAdd(ctx, r.key, &redis.GeoLocation{
		Name:      truckID,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}).Err()
	if err != nil {
		return fmt.Errorf("location.RecordPing: %w", err)
	}
	return nil
}
