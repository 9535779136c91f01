package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skybook/internal/models"

	"github.com/redis/go-redis/v9"
)

// Client wraps Redis for the three store-backed concerns that must not live
// in process memory: the booking dedup window, login-attempt lockouts, and
// the flight list read cache. Seat availability is never cached; every
// reservation decision is made against Postgres at write time.
type Client struct {
	rdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

var ErrCacheMiss = errors.New("cache miss")

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// ReserveDedup claims the (user, flight) dedup slot for the given window.
// Returns false when another booking already holds the slot.
func (c *Client) ReserveDedup(ctx context.Context, userID, flightID, bookingID string, window time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, dedupKey(userID, flightID), bookingID, window).Result()
}

// LookupDedup returns the booking ID recorded for the (user, flight) pair
// inside the dedup window, or ErrCacheMiss.
func (c *Client) LookupDedup(ctx context.Context, userID, flightID string) (string, error) {
	bookingID, err := c.rdb.Get(ctx, dedupKey(userID, flightID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("dedup lookup error: %w", err)
	}
	return bookingID, nil
}

// ClearDedup drops the dedup slot, e.g. after the booking it points at
// was cancelled.
func (c *Client) ClearDedup(ctx context.Context, userID, flightID string) error {
	return c.rdb.Del(ctx, dedupKey(userID, flightID)).Err()
}

// RegisterFailedLogin bumps the failed-attempt counter for an email and
// returns the new count. The counter expires after lockoutTTL, so lockouts
// survive restarts and are shared across instances.
func (c *Client) RegisterFailedLogin(ctx context.Context, email string, lockoutTTL time.Duration) (int64, error) {
	key := loginAttemptsKey(email)
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment login attempts: %w", err)
	}
	if count == 1 {
		c.rdb.Expire(ctx, key, lockoutTTL)
	}
	return count, nil
}

// FailedLoginCount returns the current failed-attempt counter for an email.
func (c *Client) FailedLoginCount(ctx context.Context, email string) (int64, error) {
	count, err := c.rdb.Get(ctx, loginAttemptsKey(email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// ResetFailedLogins clears the counter after a successful login.
func (c *Client) ResetFailedLogins(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, loginAttemptsKey(email)).Err()
}

// GetFlights returns the cached flight list, or ErrCacheMiss.
// Read path only.
func (c *Client) GetFlights(ctx context.Context) ([]models.Flight, error) {
	data, err := c.rdb.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var flights []models.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *Client) SetFlights(ctx context.Context, flights []models.Flight, ttl time.Duration) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, flightsKey(), payload, ttl).Err()
}

func (c *Client) InvalidateFlights(ctx context.Context) error {
	return c.rdb.Del(ctx, flightsKey()).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func dedupKey(userID, flightID string) string {
	return fmt.Sprintf("dedup:booking:%s:%s", userID, flightID)
}

func loginAttemptsKey(email string) string {
	return fmt.Sprintf("auth:attempts:%s", email)
}

func flightsKey() string {
	return "cache:flights"
}
