package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/cache"
	"github.com/aaravmahajanofficial/fashionhub/internal/config"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return cache.NewRedisCache(client, config.CacheConfig{DefaultTTL: 10 * time.Minute}), mock
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	products := []models.Product{{ID: "1", Name: "Tee", Price: 19.99, Category: models.CategoryMens}}
	jsonData, err := json.Marshal(products)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisCache, mock := setup(t)
		var result []models.Product
		mock.ExpectGet(cache.CatalogListKey).SetVal(string(jsonData))

		// Act
		found, err := redisCache.Get(ctx, cache.CatalogListKey, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, products, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		redisCache, mock := setup(t)
		var result []models.Product
		mock.ExpectGet(cache.CatalogListKey).RedisNil()

		found, err := redisCache.Get(ctx, cache.CatalogListKey, &result)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)
		var result []models.Product
		expectedErr := errors.New("redis connection error")
		mock.ExpectGet(cache.CatalogListKey).SetErr(expectedErr)

		found, err := redisCache.Get(ctx, cache.CatalogListKey, &result)

		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("Failure - Unmarshal Error", func(t *testing.T) {
		redisCache, mock := setup(t)
		var result []models.Product
		mock.ExpectGet(cache.CatalogListKey).SetVal(`[{"price":"free"}]`)

		found, err := redisCache.Get(ctx, cache.CatalogListKey, &result)

		var jsonErr *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &jsonErr)
		assert.False(t, found)
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	profile := models.Profile{ID: "acc-1", Email: "a@b.co"}
	jsonData, err := json.Marshal(profile)
	require.NoError(t, err)
	key := cache.Key(cache.ProfileKeyPrefix, "acc-1")

	t.Run("Success - With Specific TTL", func(t *testing.T) {
		redisCache, mock := setup(t)
		mock.ExpectSet(key, jsonData, time.Minute).SetVal("OK")

		require.NoError(t, redisCache.Set(ctx, key, profile, time.Minute))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Default TTL", func(t *testing.T) {
		redisCache, mock := setup(t)
		mock.ExpectSet(key, jsonData, 10*time.Minute).SetVal("OK")

		require.NoError(t, redisCache.Set(ctx, key, profile, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		redisCache, _ := setup(t)

		err := redisCache.Set(ctx, key, make(chan int), time.Minute)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)
		expectedErr := errors.New("redis SET failed")
		mock.ExpectSet(key, jsonData, time.Minute).SetErr(expectedErr)

		assert.ErrorIs(t, redisCache.Set(ctx, key, profile, time.Minute), expectedErr)
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		redisCache, mock := setup(t)
		mock.ExpectDel(cache.CatalogListKey).SetVal(1)

		require.NoError(t, redisCache.Delete(ctx, cache.CatalogListKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)
		expectedErr := errors.New("redis DEL failed")
		mock.ExpectDel(cache.CatalogListKey).SetErr(expectedErr)

		assert.ErrorIs(t, redisCache.Delete(ctx, cache.CatalogListKey), expectedErr)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "profile:abc", cache.Key(cache.ProfileKeyPrefix, "abc"))
	assert.Equal(t, "catalog:products", cache.CatalogListKey)
	assert.Equal(t, ":", cache.Key("", ""))
}
