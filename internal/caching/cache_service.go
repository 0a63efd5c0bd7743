package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/models"
)

// CacheService fronts Redis for the read-heavy catalog. The catalog snapshot
// is cached as one value because every view (folders, search, resolution) is
// derived from the full list; any write invalidates it.
type CacheService interface {
	// Single record caching
	GetRecord(ctx context.Context, id uuid.UUID) (*models.Record, error)
	SetRecord(ctx context.Context, record *models.Record, ttl time.Duration) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error

	// Catalog snapshot caching
	GetCatalog(ctx context.Context) ([]*models.Record, error)
	SetCatalog(ctx context.Context, records []*models.Record, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context) error

	// Category set caching
	GetCategorySet(ctx context.Context, folder string) ([]string, error)
	SetCategorySet(ctx context.Context, folder string, categories []string, ttl time.Duration) error
	DeleteCategorySet(ctx context.Context, folder string) error

	InvalidateAll(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetRecord(ctx context.Context, id uuid.UUID) (*models.Record, error) {
	key := fmt.Sprintf("stockroom:record:%s", id.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var record models.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *redisCacheService) SetRecord(ctx context.Context, record *models.Record, ttl time.Duration) error {
	key := fmt.Sprintf("stockroom:record:%s", record.ID.String())
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("stockroom:record:%s", id.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetCatalog(ctx context.Context) ([]*models.Record, error) {
	data, err := r.client.Get(ctx, "stockroom:catalog").Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var records []*models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *redisCacheService) SetCatalog(ctx context.Context, records []*models.Record, ttl time.Duration) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "stockroom:catalog", data, ttl).Err()
}

func (r *redisCacheService) InvalidateCatalog(ctx context.Context) error {
	return r.client.Del(ctx, "stockroom:catalog").Err()
}

func (r *redisCacheService) GetCategorySet(ctx context.Context, folder string) ([]string, error) {
	key := fmt.Sprintf("stockroom:categories:%s", folder)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *redisCacheService) SetCategorySet(ctx context.Context, folder string, categories []string, ttl time.Duration) error {
	key := fmt.Sprintf("stockroom:categories:%s", folder)
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCategorySet(ctx context.Context, folder string) error {
	key := fmt.Sprintf("stockroom:categories:%s", folder)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateAll(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "stockroom:*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
