package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	pkghttp "conovel/internal/pkg/http"
)

type fakeLimiter struct {
	allowed int
	calls   int
	err     error
	keys    []string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	f.calls++
	f.keys = append(f.keys, key)
	if f.err != nil {
		return false, f.err
	}
	return f.calls <= f.allowed, nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	Convey("请求 ID", t, func() {
		r := newEngine(RequestID())

		Convey("沿用请求头中的 ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			w := do(r, req)
			So(w.Body.String(), ShouldEqual, "req-1")
			So(w.Header().Get(RequestIDHeader), ShouldEqual, "req-1")
		})

		Convey("缺失时生成新 ID", func() {
			w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
			So(w.Body.String(), ShouldNotBeEmpty)
			So(w.Header().Get(RequestIDHeader), ShouldEqual, w.Body.String())
		})
	})
}

func TestRecovery(t *testing.T) {
	Convey("panic 转为 500 信封", t, func() {
		r := newEngine(Recovery(), RequestID(), Logger())
		w := do(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
		So(w.Code, ShouldEqual, http.StatusInternalServerError)

		var out pkghttp.Outcome
		So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
		So(out.Success, ShouldBeFalse)
		So(out.ErrorCode, ShouldEqual, pkghttp.CodeInternal)
	})
}

func TestRateLimit(t *testing.T) {
	Convey("限流中间件", t, func() {
		Convey("超过配额返回 429", func() {
			limiter := &fakeLimiter{allowed: 1}
			r := newEngine(RateLimit(limiter, 1, time.Minute))

			So(do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code, ShouldEqual, http.StatusOK)
			w := do(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)

			var out pkghttp.Outcome
			So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
			So(out.ErrorCode, ShouldEqual, pkghttp.CodeRateLimited)
			So(limiter.keys[0], ShouldEndWith, ":/ping")
		})

		Convey("限流器故障时放行", func() {
			r := newEngine(RateLimit(&fakeLimiter{err: errors.New("redis down")}, 1, time.Minute))
			So(do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code, ShouldEqual, http.StatusOK)
		})

		Convey("未配置限流器时不限流", func() {
			r := newEngine(RateLimit(nil, 1, time.Minute))
			for i := 0; i < 3; i++ {
				So(do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code, ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestCORS(t *testing.T) {
	Convey("默认允许前端开发地址", t, func() {
		r := newEngine(CORS(nil))
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := do(r, req)
		So(w.Code, ShouldEqual, http.StatusNoContent)
		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:5173")

		req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		So(do(r, req).Code, ShouldEqual, http.StatusForbidden)
	})
}

func TestMetrics(t *testing.T) {
	Convey("指标中间件不影响响应", t, func() {
		r := newEngine(Metrics())
		So(do(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code, ShouldEqual, http.StatusOK)
		So(do(r, httptest.NewRequest(http.MethodGet, "/missing", nil)).Code, ShouldEqual, http.StatusNotFound)
	})
}
