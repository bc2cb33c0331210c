package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheFromClient(client), s
}

func TestRedisCache_Allow(t *testing.T) {
	Convey("滑动窗口限流", t, func() {
		ctx := context.Background()
		rc, s := setupTestRedis(t)
		now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		rc.now = func() time.Time { return now }

		Convey("窗口内超过 limit 的请求被拒绝且不计数", func() {
			for i := 0; i < 3; i++ {
				ok, err := rc.Allow(ctx, "127.0.0.1", 3, time.Minute)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			}
			ok, err := rc.Allow(ctx, "127.0.0.1", 3, time.Minute)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			remaining, err := rc.Remaining(ctx, "127.0.0.1", 3, time.Minute)
			So(err, ShouldBeNil)
			So(remaining, ShouldEqual, 0)

			members, err := s.ZMembers(RateLimitKeyPrefix + "127.0.0.1")
			So(err, ShouldBeNil)
			So(len(members), ShouldEqual, 3)
		})

		Convey("窗口滑过后恢复", func() {
			for i := 0; i < 2; i++ {
				ok, _ := rc.Allow(ctx, "k", 2, time.Minute)
				So(ok, ShouldBeTrue)
			}
			ok, _ := rc.Allow(ctx, "k", 2, time.Minute)
			So(ok, ShouldBeFalse)

			now = now.Add(61 * time.Second)
			ok, err := rc.Allow(ctx, "k", 2, time.Minute)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("不同 key 互不影响", func() {
			ok, _ := rc.Allow(ctx, "a", 1, time.Minute)
			So(ok, ShouldBeTrue)
			ok, _ = rc.Allow(ctx, "b", 1, time.Minute)
			So(ok, ShouldBeTrue)
			ok, _ = rc.Allow(ctx, "a", 1, time.Minute)
			So(ok, ShouldBeFalse)
		})

		Convey("写入的 key 带过期时间", func() {
			_, err := rc.Allow(ctx, "ttl", 1, time.Minute)
			So(err, ShouldBeNil)
			So(s.TTL(RateLimitKeyPrefix+"ttl"), ShouldEqual, 2*time.Minute)
		})

		Convey("Redis 不可用时返回错误", func() {
			s.Close()
			_, err := rc.Allow(ctx, "down", 1, time.Minute)
			So(err, ShouldNotBeNil)
			So(rc.Ping(ctx), ShouldNotBeNil)
		})
	})
}
