package geo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"foodcourt/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	geocodeKeyPrefix = "geo:addr:"
	geocodeTTL       = 24 * time.Hour
)

// RedisGeocodeCache caches geocoding results in Redis. Addresses rarely
// move, so entries live for a day.
type RedisGeocodeCache struct {
	client *redis.Client
}

// NewRedisGeocodeCache creates a geocode cache backed by the given Redis client.
func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client}
}

type cachedPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Get looks up the cached coordinates for an address.
func (c *RedisGeocodeCache) Get(ctx context.Context, address string) (kernel.GeoPoint, bool, error) {
	raw, err := c.client.Get(ctx, geocodeKey(address)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.GeoPoint{}, false, nil
		}
		return kernel.GeoPoint{}, false, err
	}

	var cached cachedPoint
	if err := json.Unmarshal(raw, &cached); err != nil {
		return kernel.GeoPoint{}, false, err
	}

	point, err := kernel.NewGeoPoint(cached.Lng, cached.Lat)
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}
	return point, true, nil
}

// Set stores the coordinates for an address.
func (c *RedisGeocodeCache) Set(ctx context.Context, address string, point kernel.GeoPoint) error {
	raw, err := json.Marshal(cachedPoint{Lng: point.Lng(), Lat: point.Lat()})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, geocodeKey(address), raw, geocodeTTL).Err()
}

func geocodeKey(address string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(address))
}
