package http

import (
	nethttp "net/http"
	"strings"
	"time"
)

// Outcome 统一响应信封（所有API共用）
type Outcome struct {
	Success   bool      `json:"success"`              // 是否成功
	Message   string    `json:"message"`              // 响应消息
	Data      any       `json:"data"`                 // 响应数据（可选）
	ErrorCode string    `json:"error_code,omitempty"` // 错误码（失败或部分成功时）
	Timestamp time.Time `json:"timestamp"`
}

// 通用错误码；业务错误码（如 NOVEL_NOT_FOUND）按后缀映射 HTTP 状态
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeInternal    = "INTERNAL_ERROR"
	CodeRateLimited = "RATE_LIMITED"
	CodeRollupStale = "ROLLUP_STALE"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
	CodeTimeout     = "TIMEOUT"
	suffixGenFailed = "_GENERATION_FAILED"
)

// OK 创建成功响应
func OK(message string, data any) *Outcome {
	return &Outcome{Success: true, Message: message, Data: data, Timestamp: time.Now()}
}

// Partial 成功但附带错误码（如汇总字段未更新）
func Partial(message, code string, data any) *Outcome {
	return &Outcome{Success: true, Message: message, Data: data, ErrorCode: code, Timestamp: time.Now()}
}

// Fail 创建失败响应
func Fail(code, message string) *Outcome {
	return &Outcome{Success: false, Message: message, ErrorCode: code, Timestamp: time.Now()}
}

// StatusCode 按错误码推断 HTTP 状态码
func (o *Outcome) StatusCode() int {
	if o.Success {
		return nethttp.StatusOK
	}
	return StatusOf(o.ErrorCode)
}

// StatusOf 错误码到 HTTP 状态码的映射
func StatusOf(code string) int {
	switch {
	case code == "":
		return nethttp.StatusOK
	case code == CodeValidation:
		return nethttp.StatusBadRequest
	case code == CodeRateLimited:
		return nethttp.StatusTooManyRequests
	case code == CodeTimeout:
		return nethttp.StatusGatewayTimeout
	case code == CodeUnavailable:
		return nethttp.StatusServiceUnavailable
	case strings.HasSuffix(code, "NOT_FOUND"):
		return nethttp.StatusNotFound
	case strings.HasSuffix(code, "CONFLICT"):
		return nethttp.StatusConflict
	case strings.HasSuffix(code, suffixGenFailed):
		return nethttp.StatusBadGateway
	default:
		return nethttp.StatusInternalServerError
	}
}
