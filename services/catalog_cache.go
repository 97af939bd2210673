package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// CatalogCache is a read-through cache for catalog lookups. The novel
// collection and file tree are read-only from this service's point of view,
// so entries only ever expire, they are never invalidated.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache connects to Redis and verifies the connection. Callers
// treat a nil *CatalogCache as "caching disabled".
func NewCatalogCache(redisURL string, ttl time.Duration) (*CatalogCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &CatalogCache{client: client, ttl: ttl}, nil
}

// GetNovel retrieves a cached best-match lookup. A nil novel with nil error
// is a cache miss.
func (cc *CatalogCache) GetNovel(ctx context.Context, name string) (*model.Novel, error) {
	if cc == nil {
		return nil, nil
	}

	data, err := cc.client.Get(ctx, novelKey(name)).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get novel from cache: %v", err)
	}

	var novel model.Novel
	if err := json.Unmarshal(data, &novel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached novel: %v", err)
	}
	return &novel, nil
}

// SetNovel caches a best-match lookup result.
func (cc *CatalogCache) SetNovel(ctx context.Context, name string, novel *model.Novel) error {
	if cc == nil || novel == nil {
		return nil
	}

	data, err := json.Marshal(novel)
	if err != nil {
		return fmt.Errorf("failed to marshal novel: %v", err)
	}
	return cc.client.Set(ctx, novelKey(name), data, cc.ttl).Err()
}

// GetChapter retrieves cached chapter text. Empty string with nil error is a
// cache miss; chapters are never empty on disk.
func (cc *CatalogCache) GetChapter(ctx context.Context, novelName string, chapter int) (string, error) {
	if cc == nil {
		return "", nil
	}

	data, err := cc.client.Get(ctx, chapterKey(novelName, chapter)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get chapter from cache: %v", err)
	}
	return data, nil
}

// SetChapter caches chapter text.
func (cc *CatalogCache) SetChapter(ctx context.Context, novelName string, chapter int, content string) error {
	if cc == nil || content == "" {
		return nil
	}
	return cc.client.Set(ctx, chapterKey(novelName, chapter), content, cc.ttl).Err()
}

func novelKey(name string) string {
	return fmt.Sprintf("novel:%s", name)
}

func chapterKey(novelName string, chapter int) string {
	return fmt.Sprintf("chapter:%s:%d", novelName, chapter)
}
