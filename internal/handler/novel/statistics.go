package novel

import (
	"github.com/gin-gonic/gin"
)

// GetStatistics 全局统计
// @Summary      全局统计
// @Tags         小说管理
// @Produce      json
// @Success      200  {object}  Outcome  "data: model.Statistics"
// @Router       /api/v1/novels/statistics [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	respond(c, h.novelService.GetStatistics(c.Request.Context()))
}

// Cleanup 清理过期生成缓存
// @Summary      清理过期生成缓存
// @Tags         小说管理
// @Produce      json
// @Success      200  {object}  Outcome  "data: {deleted_cache_entries}"
// @Router       /api/v1/novels/cleanup [post]
func (h *Handler) Cleanup(c *gin.Context) {
	respond(c, h.novelService.CleanupResources(c.Request.Context()))
}

// AIHealth AI 服务健康检查
// @Summary      AI 服务健康检查
// @Tags         AI创作
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "{\"status\": \"healthy\", \"service\": \"AI\"}"
// @Router       /api/ai/health [get]
func (h *Handler) AIHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "healthy",
		"service": "AI",
		"model":   h.adapter.Model(),
	})
}
