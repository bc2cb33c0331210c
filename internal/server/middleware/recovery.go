package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"conovel/internal/pkg/http"
)

// Recovery 异常恢复中间件，panic 转为 INTERNAL_ERROR 信封
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Str("request_id", c.GetString(RequestIDKey)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				out := http.Fail(http.CodeInternal, "服务器内部错误")
				c.AbortWithStatusJSON(out.StatusCode(), out)
			}
		}()
		c.Next()
	}
}
