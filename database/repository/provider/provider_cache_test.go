package providerRepo

import (
	"context"
	"testing"
	"time"

	"servana/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := m.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *memKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *memKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// countingProviderRepo counts reads hitting the inner store.
type countingProviderRepo struct {
	providers map[string]models.Provider
	gets      int
}

func (r *countingProviderRepo) Create(_ context.Context, provider *models.Provider) error {
	r.providers[provider.ID] = *provider
	return nil
}

func (r *countingProviderRepo) GetByID(_ context.Context, providerID string) (*models.Provider, error) {
	r.gets++
	p, ok := r.providers[providerID]
	if !ok {
		return nil, ErrProviderNotFound
	}
	copied := p
	return &copied, nil
}

func (r *countingProviderRepo) Update(_ context.Context, provider *models.Provider) error {
	if _, ok := r.providers[provider.ID]; !ok {
		return ErrProviderNotFound
	}
	r.providers[provider.ID] = *provider
	return nil
}

func TestCachedProviderRepo(t *testing.T) {
	ctx := context.Background()

	newRepos := func() (*CachedProviderRepo, *countingProviderRepo) {
		inner := &countingProviderRepo{providers: map[string]models.Provider{
			"p1": {ID: "p1", Name: "Early Bird Cleaning", Template: map[string][]models.OpenInterval{
				"monday": {{Start: 9 * 60, End: 17 * 60}},
			}},
		}}
		return &CachedProviderRepo{inner: inner, store: newMemKV(), ttl: time.Minute}, inner
	}

	t.Run("repeated reads are served from cache", func(t *testing.T) {
		cached, inner := newRepos()

		first, err := cached.GetByID(ctx, "p1")
		require.NoError(t, err)
		second, err := cached.GetByID(ctx, "p1")
		require.NoError(t, err)

		assert.Equal(t, 1, inner.gets, "second read should not hit the inner store")
		assert.Equal(t, first, second)
		assert.Len(t, second.Template["monday"], 1)
	})

	t.Run("update invalidates the cached entry", func(t *testing.T) {
		cached, inner := newRepos()

		provider, err := cached.GetByID(ctx, "p1")
		require.NoError(t, err)

		provider.Name = "Night Owl Cleaning"
		require.NoError(t, cached.Update(ctx, provider))

		fresh, err := cached.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Night Owl Cleaning", fresh.Name)
		assert.Equal(t, 2, inner.gets, "read after update must refill from the inner store")
	})

	t.Run("misses are not cached", func(t *testing.T) {
		cached, inner := newRepos()

		_, err := cached.GetByID(ctx, "missing")
		require.ErrorIs(t, err, ErrProviderNotFound)
		_, err = cached.GetByID(ctx, "missing")
		require.ErrorIs(t, err, ErrProviderNotFound)
		assert.Equal(t, 2, inner.gets)
	})
}
