// Package redis caches public tracking views. Entries expire after a TTL and are
// dropped as soon as a status change for the parcel is published.
package redis

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/parcel"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "parcels:tracking:"

const DefaultTTL = 5 * time.Minute

// TrackingCache implements ports.TrackingCache and ports.EventPublisher.
type TrackingCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewClient connects to addr with short dial and read timeouts so a slow cache
// never stalls a request for long.
func NewClient(addr string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func NewTrackingCache(client goredis.Cmdable, ttl time.Duration) *TrackingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TrackingCache{client: client, ttl: ttl}
}

func key(trackingNumber string) string {
	return keyPrefix + trackingNumber
}

func (c *TrackingCache) Get(ctx context.Context, trackingNumber string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key(trackingNumber)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *TrackingCache) Set(ctx context.Context, trackingNumber string, payload []byte) error {
	return c.client.Set(ctx, key(trackingNumber), payload, c.ttl).Err()
}

func (c *TrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	return c.client.Del(ctx, key(trackingNumber)).Err()
}

// Publish drops the cached view of every parcel whose status changed.
func (c *TrackingCache) Publish(ctx context.Context, events ...parcel.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	keys := make([]string, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		if _, ok := seen[e.TrackingNumber]; ok {
			continue
		}
		seen[e.TrackingNumber] = struct{}{}
		keys = append(keys, key(e.TrackingNumber))
	}
	return c.client.Del(ctx, keys...).Err()
}
