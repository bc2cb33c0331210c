package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"conovel/internal/config"
	"conovel/internal/pkg/id"
)

// RateLimitKeyPrefix 限流 key 前缀
const RateLimitKeyPrefix = "conovel:ratelimit:"

// RedisCache Redis 客户端封装（目前只用于生成接口限流）
type RedisCache struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisCache 创建 Redis 缓存客户端
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient 使用已有客户端
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, now: time.Now}
}

// Allow 滑动窗口限流：窗口内请求数未达到 limit 时记录本次请求并放行
// 被拒绝的请求不计入窗口。
func (c *RedisCache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	key = RateLimitKeyPrefix + key
	now := c.now().UnixNano()
	windowStart := now - window.Nanoseconds()

	pipe := c.client.Pipeline()
	// 移除窗口外的请求
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit count: %w", err)
	}
	if countCmd.Val() >= int64(limit) {
		return false, nil
	}

	pipe = c.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: strconv.FormatInt(now, 10) + "-" + id.New()})
	pipe.Expire(ctx, key, window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit record: %w", err)
	}
	return true, nil
}

// Remaining 当前窗口剩余配额
func (c *RedisCache) Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	key = RateLimitKeyPrefix + key
	windowStart := c.now().UnixNano() - window.Nanoseconds()

	pipe := c.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	remaining := limit - int(countCmd.Val())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Ping 检查连接
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Client 获取原始客户端
func (c *RedisCache) Client() *redis.Client {
	return c.client
}
