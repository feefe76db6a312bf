package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix       = "aconchego"
	maxCartAttempts = 5
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// Public menu caching, keyed by category ("" for the whole menu)
	GetMenu(ctx context.Context, category string) ([]*models.Product, error)
	SetMenu(ctx context.Context, category string, products []*models.Product, ttl time.Duration) error
	InvalidateMenu(ctx context.Context) error

	// Dashboard caching
	GetDashboard(ctx context.Context) (*models.DashboardData, error)
	SetDashboard(ctx context.Context, data *models.DashboardData, ttl time.Duration) error

	// Server-side carts
	CreateCart(ctx context.Context, cart *models.Cart, ttl time.Duration) error
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	UpdateCart(ctx context.Context, cartID string, ttl time.Duration, fn func(*models.Cart) error) (*models.Cart, error)
	DeleteCart(ctx context.Context, cartID string) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisClient accepts either host:port or a redis:// URL.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if opts, err := redis.ParseURL(addr); err == nil {
			if password != "" {
				opts.Password = password
			}
			return redis.NewClient(opts)
		}
		log.Warn().Str("address", addr).Msg("Could not parse Redis URL, using it as an address")
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisCacheService(client *redis.Client) CacheService {
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("address", client.Options().Addr).Msg("Redis ping failed on initialization")
	} else {
		log.Info().Str("address", client.Options().Addr).Msg("Redis connection established")
	}
	return &redisCacheService{client: client}
}

func productKey(id uuid.UUID) string { return fmt.Sprintf("%s:product:%s", keyPrefix, id) }

func menuKey(category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s:menu:%s", keyPrefix, category)
}

func cartKey(id string) string { return fmt.Sprintf("%s:cart:%s", keyPrefix, id) }

func dashboardKey() string { return keyPrefix + ":analytics:dashboard" }

// getJSON returns found=false on a cache miss.
func (r *redisCacheService) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	found, err := r.getJSON(ctx, productKey(productID), &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return r.setJSON(ctx, productKey(product.ID), product, ttl)
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return r.client.Del(ctx, productKey(productID)).Err()
}

func (r *redisCacheService) GetMenu(ctx context.Context, category string) ([]*models.Product, error) {
	var products []*models.Product
	found, err := r.getJSON(ctx, menuKey(category), &products)
	if err != nil || !found {
		return nil, err
	}
	return products, nil
}

func (r *redisCacheService) SetMenu(ctx context.Context, category string, products []*models.Product, ttl time.Duration) error {
	return r.setJSON(ctx, menuKey(category), products, ttl)
}

func (r *redisCacheService) InvalidateMenu(ctx context.Context) error {
	keys := []string{menuKey("")}
	for _, c := range models.ValidCategories {
		keys = append(keys, menuKey(c))
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) GetDashboard(ctx context.Context) (*models.DashboardData, error) {
	var data models.DashboardData
	found, err := r.getJSON(ctx, dashboardKey(), &data)
	if err != nil || !found {
		return nil, err
	}
	return &data, nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, data *models.DashboardData, ttl time.Duration) error {
	return r.setJSON(ctx, dashboardKey(), data, ttl)
}

func (r *redisCacheService) CreateCart(ctx context.Context, cart *models.Cart, ttl time.Duration) error {
	return r.setJSON(ctx, cartKey(cart.ID), cart, ttl)
}

func (r *redisCacheService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	found, err := r.getJSON(ctx, cartKey(cartID), &cart)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("cart: %w", common.ErrNotFound)
	}
	return &cart, nil
}

// UpdateCart applies fn under WATCH so concurrent edits of one cart never lose lines.
func (r *redisCacheService) UpdateCart(ctx context.Context, cartID string, ttl time.Duration, fn func(*models.Cart) error) (*models.Cart, error) {
	key := cartKey(cartID)
	var updated *models.Cart

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("cart: %w", common.ErrNotFound)
		}
		if err != nil {
			return err
		}
		var cart models.Cart
		if err := json.Unmarshal(data, &cart); err != nil {
			return err
		}
		if err := fn(&cart); err != nil {
			return err
		}
		cart.UpdatedAt = time.Now().UTC()
		payload, err := json.Marshal(&cart)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		if err == nil {
			updated = &cart
		}
		return err
	}

	for attempt := 0; attempt < maxCartAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("cart %s: too many concurrent updates", cartID)
}

func (r *redisCacheService) DeleteCart(ctx context.Context, cartID string) error {
	return r.client.Del(ctx, cartKey(cartID)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
