package cache

import (
	"context"
	"encoding/json"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/logger"
	"ev-route-service/internal/ports"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "evroute:"

// redisJSON stores JSON values under a key prefix with a fixed TTL.
// Read and write failures are logged and treated as misses so the wrapped
// provider keeps answering when Redis is down.
type redisJSON struct {
	rdb redis.Cmdable
	ttl time.Duration
	log logger.Logger
}

func (c redisJSON) get(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warnf("redis get %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warnf("redis decode %s: %v", key, err)
		return false
	}
	return true
}

func (c redisJSON) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warnf("redis encode %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("redis set %s: %v", key, err)
	}
}

// RedisWeatherCache caches current conditions on a ~1 km grid.
type RedisWeatherCache struct {
	next  ports.WeatherProvider
	store redisJSON
}

func NewRedisWeatherCache(next ports.WeatherProvider, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *RedisWeatherCache {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &RedisWeatherCache{next: next, store: redisJSON{rdb: rdb, ttl: ttl, log: log}}
}

func (c *RedisWeatherCache) FetchCurrent(ctx context.Context, lat, lng float64) (domain.WeatherSample, error) {
	key := fmt.Sprintf("weather:%.2f:%.2f", lat, lng)

	var cached domain.WeatherSample
	if c.store.get(ctx, key, &cached) {
		return cached, nil
	}

	w, err := c.next.FetchCurrent(ctx, lat, lng)
	if err != nil {
		return domain.WeatherSample{}, err
	}
	c.store.set(ctx, key, w)
	return w, nil
}

// RedisStationCache caches live directory answers per query.
// Errors from the wrapped directory are not cached.
type RedisStationCache struct {
	next  ports.ChargingStationDirectory
	store redisJSON
}

func NewRedisStationCache(next ports.ChargingStationDirectory, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *RedisStationCache {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &RedisStationCache{next: next, store: redisJSON{rdb: rdb, ttl: ttl, log: log}}
}

func (c *RedisStationCache) FindNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	connectors []domain.ConnectorType,
) ([]domain.ChargingStation, error) {
	key := stationKey(lat, lng, radiusKm, connectors)

	var cached []domain.ChargingStation
	if c.store.get(ctx, key, &cached) {
		return cached, nil
	}

	found, err := c.next.FindNearby(ctx, lat, lng, radiusKm, connectors)
	if err != nil {
		return nil, err
	}
	c.store.set(ctx, key, found)
	return found, nil
}

func stationKey(lat, lng, radiusKm float64, connectors []domain.ConnectorType) string {
	names := make([]string, 0, len(connectors))
	for _, c := range connectors {
		names = append(names, string(c))
	}
	slices.Sort(names)
	names = slices.Compact(names)
	return fmt.Sprintf("stations:%.3f:%.3f:%g:%s", lat, lng, radiusKm, strings.Join(names, ","))
}
