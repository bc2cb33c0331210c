package novel

import (
	"github.com/gin-gonic/gin"

	"conovel/internal/model"
)

// GenerateOutline 生成小说大纲
// @Summary      生成小说大纲
// @Description  一次性返回完整大纲，相同参数命中生成缓存
// @Tags         AI创作
// @Accept       json
// @Produce      json
// @Param        request  body      model.OutlineGenerationRequest  true  "大纲生成请求"
// @Success      200      {object}  map[string]interface{}  "{\"success\": true, \"outline\": \"...\"}"
// @Failure      400      {object}  map[string]interface{}  "请求参数错误"
// @Failure      502      {object}  map[string]interface{}  "生成失败"
// @Router       /api/ai/generate-outline [post]
func (h *Handler) GenerateOutline(c *gin.Context) {
	var req model.OutlineGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestFlat(c, err)
		return
	}
	respondFlat(c, h.novelService.GenerateOutline(c.Request.Context(), &req), "")
}

// GenerateOutlineStream 流式生成小说大纲
// @Summary      流式生成小说大纲
// @Description  以 SSE 逐帧返回 chat.completion.chunk，成功结束时追加 data: [DONE]
// @Tags         AI创作
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      model.OutlineGenerationRequest  true  "大纲生成请求"
// @Success      200      {string}  string  "SSE 帧序列"
// @Failure      400      {object}  Outcome  "请求参数错误"
// @Router       /api/ai/generate-outline-stream [post]
func (h *Handler) GenerateOutlineStream(c *gin.Context) {
	var req model.OutlineGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	gs, out := h.novelService.StreamOutline(c.Request.Context(), &req)
	h.streamGeneration(c, gs, out)
}
