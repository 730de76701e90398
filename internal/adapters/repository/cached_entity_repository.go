package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"
)

var _ domain.EntityRepository = (*CachedEntityRepository)(nil)

const entityCacheTTL = 30 * time.Minute

// CachedEntityRepository decorates an EntityRepository with a per-user
// redis list cache. Streak recomputes run often (every completion write
// enqueues one), so cached streak values would go stale fast; every write
// path, the CAS included, invalidates the owner's cache entry.
type CachedEntityRepository struct {
	next  domain.EntityRepository
	cache *redis.Client
}

func NewCachedEntityRepository(next domain.EntityRepository, cache *redis.Client) *CachedEntityRepository {
	return &CachedEntityRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedEntityRepository) cacheKey(userID string) string {
	return fmt.Sprintf("entities:%s", userID)
}

func (r *CachedEntityRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedEntityRepository) invalidateByEntityID(ctx context.Context, id string) {
	entity, err := r.next.GetByID(ctx, id)
	if err != nil || entity == nil {
		return
	}
	r.invalidate(ctx, entity.UserID)
}

func (r *CachedEntityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.TrackedEntity, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var entities []*domain.TrackedEntity
		if err := json.Unmarshal([]byte(val), &entities); err == nil {
			return entities, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	entities, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entities); err == nil {
		if setErr := r.cache.Set(ctx, key, data, entityCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return entities, nil
}

func (r *CachedEntityRepository) GetByID(ctx context.Context, id string) (*domain.TrackedEntity, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedEntityRepository) GetPrayerSet(ctx context.Context, userID string) (*domain.TrackedEntity, error) {
	return r.next.GetPrayerSet(ctx, userID)
}

func (r *CachedEntityRepository) Create(ctx context.Context, entity *domain.TrackedEntity) error {
	if err := r.next.Create(ctx, entity); err != nil {
		return err
	}
	r.invalidate(ctx, entity.UserID)
	return nil
}

func (r *CachedEntityRepository) Update(ctx context.Context, entity *domain.TrackedEntity) error {
	if err := r.next.Update(ctx, entity); err != nil {
		return err
	}
	r.invalidate(ctx, entity.UserID)
	return nil
}

func (r *CachedEntityRepository) Delete(ctx context.Context, id string) error {
	entity, err := r.next.GetByID(ctx, id)
	if err == nil && entity != nil {
		defer r.invalidate(ctx, entity.UserID)
	}

	return r.next.Delete(ctx, id)
}

func (r *CachedEntityRepository) RaiseLongestStreak(ctx context.Context, id string, current, longest int) error {
	defer r.invalidateByEntityID(ctx, id)

	return r.next.RaiseLongestStreak(ctx, id, current, longest)
}
