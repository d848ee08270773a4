package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ArseniyHeyden/FlightBooking/config"
	"github.com/ArseniyHeyden/FlightBooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.searchTTL).Err()
}

func (c *RedisCache) GetSearch(ctx context.Context, fromCity, toCity string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, searchKey(fromCity, toCity)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, fromCity, toCity string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(fromCity, toCity), payload, c.searchTTL).Err()
}

// AcquireSeatLock takes a short-lived exclusive lock on a seat so only one
// booking request at a time can attempt the database update for it.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID int64, seatNumber string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightID, seatNumber), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID int64, seatNumber string) error {
	return c.client.Del(ctx, seatLockKey(flightID, seatNumber)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func searchKey(fromCity, toCity string) string {
	return fmt.Sprintf("cache:search:%s:%s", strings.ToLower(fromCity), strings.ToLower(toCity))
}

func seatLockKey(flightID int64, seatNumber string) string {
	return fmt.Sprintf("lock:flight:%d:seat:%s", flightID, seatNumber)
}
