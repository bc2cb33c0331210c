package novel

import (
	"github.com/gin-gonic/gin"

	httputil "conovel/internal/pkg/http"
)

// Outcome 响应信封类型别名（用于 swagger 注释）
type Outcome = httputil.Outcome

// respond 按错误码写出统一信封
func respond(c *gin.Context, out *httputil.Outcome) {
	c.JSON(out.StatusCode(), out)
}

// respondFlat 前端兼容接口：data 中的字段平铺到顶层
// data 不是 map 时放在 key 下。
func respondFlat(c *gin.Context, out *httputil.Outcome, key string) {
	body := gin.H{
		"success": out.Success,
		"message": out.Message,
	}
	if out.ErrorCode != "" {
		body["error_code"] = out.ErrorCode
	}
	switch data := out.Data.(type) {
	case nil:
	case map[string]any:
		for k, v := range data {
			body[k] = v
		}
	default:
		if key != "" {
			body[key] = data
		}
	}
	c.JSON(out.StatusCode(), body)
}

// badRequest 请求体或参数绑定失败
func badRequest(c *gin.Context, err error) {
	respond(c, httputil.Fail(httputil.CodeValidation, "请求参数错误: "+err.Error()))
}

// badRequestFlat 前端兼容接口的参数错误
func badRequestFlat(c *gin.Context, err error) {
	respondFlat(c, httputil.Fail(httputil.CodeValidation, "请求参数错误: "+err.Error()), "")
}
