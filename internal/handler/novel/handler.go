package novel

import (
	"conovel/internal/pkg/chatstream"
	"conovel/internal/service/novel"
)

// Handler 小说创作处理器
// 所有novel相关的Handler方法都通过这个结构体访问Service
type Handler struct {
	novelService novel.NovelService
	adapter      *chatstream.Adapter
}

// NewHandler 创建小说创作处理器
func NewHandler(novelService novel.NovelService, adapter *chatstream.Adapter) *Handler {
	return &Handler{
		novelService: novelService,
		adapter:      adapter,
	}
}
