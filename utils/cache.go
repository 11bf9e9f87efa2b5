package utils

import (
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get reads a cached value.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set writes a cached value.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, string(data), expiration).Err()
}

// Delete removes a cache entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DeleteByPattern deletes cache entries by pattern.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

// Exists checks whether a cache key exists.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type CacheManager struct {
	cache Cache
}

var globalCacheManager *CacheManager
var cacheManagerOnce sync.Once

// InitCacheManager initializes the cache manager.
func InitCacheManager() {
	cacheManagerOnce.Do(func() {
		globalCacheManager = &CacheManager{
			cache: NewRedisCache(repo.Redis),
		}
	})
}

// GetCacheManager returns the cache manager.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		InitCacheManager()
	}
	return globalCacheManager
}

// BuildCacheKey builds a cache key.
func BuildCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += fmt.Sprintf(":%v", param)
	}
	return key
}

const (
	// CacheKeyUploadToken is also the prefix the Redis expired-key listener
	// matches on, so the TTL of these entries doubles as the expiry signal.
	CacheKeyUploadToken = "uptoken"
	CacheKeyClaimDocs   = "claim:documents"
)

// GetUploadTokenFromCache reads a cached upload token.
func GetUploadTokenFromCache(ctx context.Context, token string) (*model.UploadToken, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUploadToken, token)

	var result model.UploadToken
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetUploadTokenToCache writes a cached upload token.
func SetUploadTokenToCache(ctx context.Context, data *model.UploadToken, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUploadToken, data.Token)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateUploadTokenCache clears a cached upload token.
func InvalidateUploadTokenCache(ctx context.Context, token string) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUploadToken, token)
	return manager.cache.Delete(ctx, key)
}

// DocumentListCache caches one claim's document listing.
type DocumentListCache struct {
	Documents []model.Document `json:"documents"`
	Total     int64            `json:"total"`
}

// GetClaimDocumentsFromCache reads a cached document list.
func GetClaimDocumentsFromCache(ctx context.Context, claimID uint64, page, pageSize int, orderBy string, orderDesc bool) (*DocumentListCache, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyClaimDocs, claimID, page, pageSize, orderBy, orderDesc)

	var result DocumentListCache
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetClaimDocumentsToCache writes a cached document list.
func SetClaimDocumentsToCache(ctx context.Context, claimID uint64, page, pageSize int, orderBy string, orderDesc bool, data *DocumentListCache, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyClaimDocs, claimID, page, pageSize, orderBy, orderDesc)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateClaimDocumentsCache clears cached document lists for a claim.
func InvalidateClaimDocumentsCache(ctx context.Context, claimID uint64) error {
	manager := GetCacheManager()
	keyPattern := BuildCacheKey(CacheKeyClaimDocs, claimID) + ":*"
	cache, ok := manager.cache.(*RedisCache)
	if !ok {
		return manager.cache.Delete(ctx, keyPattern)
	}
	return cache.DeleteByPattern(ctx, keyPattern)
}
