package redis

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"cur8tr/business/geo"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type GeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGeocodeCache(client *redis.Client, ttl time.Duration) *GeocodeCache {
	return &GeocodeCache{
		client: client,
		ttl:    ttl,
	}
}

func GeocodeKey(query string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "geocode:" + hex.EncodeToString(sum[:])
}

// Get reports a miss with ok=false and a nil error.
func (c *GeocodeCache) Get(ctx context.Context, query string) (geo.Point, bool, error) {
	val, err := c.client.Get(ctx, GeocodeKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return geo.Point{}, false, nil
		}
		return geo.Point{}, false, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	var p geo.Point
	if err := json.Unmarshal(val, &p); err != nil {
		return geo.Point{}, false, fmt.Errorf("failed to unmarshal cached point: %w", err)
	}

	return p, true, nil
}

func (c *GeocodeCache) Set(ctx context.Context, query string, p geo.Point) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal point: %w", err)
	}

	if err := c.client.Set(ctx, GeocodeKey(query), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}

	return nil
}
