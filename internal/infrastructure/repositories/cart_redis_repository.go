package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/cart"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
)

// CartRedisRepository stores carts as JSON blobs in Redis, one key per cart
// ID, expiring after the configured TTL so abandoned carts clean themselves
// up.
type CartRedisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCartRedisRepository(client *redis.Client, prefix string, ttl time.Duration, logger *logrus.Logger) ports.CartRepository {
	return &CartRedisRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CartRedisRepository) key(id string) string {
	return r.prefix + ":" + id
}

// Get returns the stored cart, or an empty cart for an unknown ID.
func (r *CartRedisRepository) Get(ctx context.Context, id string) (*cart.Cart, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return cart.New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// A corrupt blob is unrecoverable; start the cart over rather than
		// failing checkout.
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"cart_id": id}).WithError(err).Warn("discarding corrupt cart payload")
		}
		return cart.New(id), nil
	}
	return &c, nil
}

// Save stores the cart and resets its expiry.
func (r *CartRedisRepository) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, r.key(c.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart; absence is not an error.
func (r *CartRedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
