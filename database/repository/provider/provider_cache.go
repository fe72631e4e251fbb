package providerRepo

import (
	"context"
	"encoding/json"
	"time"

	"servana/models"

	"github.com/go-redis/redis/v8"
)

// providerKV is the subset of redis commands the cache uses; *redis.Client
// satisfies it.
type providerKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedProviderRepo decorates a ProviderRepository with a redis read cache.
// Provider documents change rarely but are read on every public availability
// query, so reads go through the cache and mutations invalidate the entry.
// Cache failures degrade to the inner repository, never to an error.
type CachedProviderRepo struct {
	inner ProviderRepository
	store providerKV
	ttl   time.Duration
}

func NewCachedProviderRepo(inner ProviderRepository, client *redis.Client, ttl time.Duration) *CachedProviderRepo {
	return &CachedProviderRepo{inner: inner, store: client, ttl: ttl}
}

func providerCacheKey(providerID string) string {
	return "provider:" + providerID
}

// GetByID serves the provider from cache when possible, falling back to the
// inner repository and populating the cache on a miss.
func (repo *CachedProviderRepo) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	key := providerCacheKey(providerID)
	if raw, err := repo.store.Get(ctx, key).Result(); err == nil {
		var provider models.Provider
		if json.Unmarshal([]byte(raw), &provider) == nil {
			return &provider, nil
		}
	}

	provider, err := repo.inner.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(provider); err == nil {
		repo.store.Set(ctx, key, raw, repo.ttl)
	}
	return provider, nil
}

func (repo *CachedProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	if err := repo.inner.Create(ctx, provider); err != nil {
		return err
	}
	repo.store.Del(ctx, providerCacheKey(provider.ID))
	return nil
}

func (repo *CachedProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	if err := repo.inner.Update(ctx, provider); err != nil {
		return err
	}
	repo.store.Del(ctx, providerCacheKey(provider.ID))
	return nil
}
