package novel

import (
	"context"
	"fmt"
	"time"

	"conovel/internal/model/novel"
	"conovel/internal/pkg/id"
)

// CacheRepository 生成缓存仓库接口（供 service 层依赖）
type CacheRepository interface {
	Get(ctx context.Context, cacheKey string) (*novel.GenerationCache, error)
	Save(ctx context.Context, entry *novel.GenerationCache) error
	Update(ctx context.Context, entry *novel.GenerationCache) error
	Cleanup(ctx context.Context, olderThan time.Duration) (int, error)
	ListAll(ctx context.Context) ([]*novel.GenerationCache, error)
}

// CacheRepo 生成缓存仓库
type CacheRepo struct {
	store *Store
}

// NewCacheRepo 创建缓存仓库
func NewCacheRepo(store *Store) *CacheRepo {
	return store.Caches()
}

// Get 按缓存键查询，命中时在同一把锁内累加 hit_count 并写回
func (r *CacheRepo) Get(ctx context.Context, cacheKey string) (*novel.GenerationCache, error) {
	var hit *novel.GenerationCache
	err := r.store.caches.mutate(ctx, func(records []*novel.GenerationCache) ([]*novel.GenerationCache, bool, error) {
		for _, c := range records {
			if c.CacheKey == cacheKey {
				c.IncrementHit(r.store.now())
				hit = c.Clone()
				return records, true, nil
			}
		}
		return nil, false, nil
	})
	if err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, fmt.Errorf("cache %s: %w", cacheKey, ErrNotFound)
	}
	return hit, nil
}

// Save 写入缓存；同一缓存键已存在时替换内容，保证键唯一
func (r *CacheRepo) Save(ctx context.Context, entry *novel.GenerationCache) error {
	if entry.CacheKey == "" {
		return fmt.Errorf("cache_key is required: %w", ErrInvalid)
	}
	now := r.store.now()
	return r.store.caches.mutate(ctx, func(records []*novel.GenerationCache) ([]*novel.GenerationCache, bool, error) {
		for i, c := range records {
			if c.CacheKey == entry.CacheKey {
				entry.ID = c.ID
				entry.CreatedAt = now
				entry.HitCount = c.HitCount
				entry.LastHit = now
				records[i] = entry.Clone()
				return records, true, nil
			}
		}
		entry.ID = id.New()
		entry.CreatedAt = now
		entry.HitCount = 1
		entry.LastHit = now
		return append(records, entry.Clone()), true, nil
	})
}

// Update 按 id 整体替换缓存条目
func (r *CacheRepo) Update(ctx context.Context, entry *novel.GenerationCache) error {
	return r.store.caches.mutate(ctx, func(records []*novel.GenerationCache) ([]*novel.GenerationCache, bool, error) {
		for i, c := range records {
			if c.ID == entry.ID {
				records[i] = entry.Clone()
				return records, true, nil
			}
		}
		return nil, false, fmt.Errorf("cache entry %s: %w", entry.ID, ErrNotFound)
	})
}

// Cleanup 删除创建时间早于 olderThan 的条目，返回删除数量
func (r *CacheRepo) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := r.store.now().Add(-olderThan)
	deleted := 0
	err := r.store.caches.mutate(ctx, func(records []*novel.GenerationCache) ([]*novel.GenerationCache, bool, error) {
		kept := records[:0]
		for _, c := range records {
			if !c.CreatedAt.After(cutoff) {
				deleted++
				continue
			}
			kept = append(kept, c)
		}
		return kept, deleted > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ListAll 按文件顺序返回全部缓存条目
func (r *CacheRepo) ListAll(ctx context.Context) ([]*novel.GenerationCache, error) {
	return r.store.caches.read(ctx)
}
