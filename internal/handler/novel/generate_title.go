package novel

import (
	"github.com/gin-gonic/gin"

	"conovel/internal/model"
)

// GenerateTitle 生成小说标题
// @Summary      生成小说标题
// @Description  根据类型与主题生成候选标题；title 为第一个候选，titles 为全部候选。相同参数命中生成缓存。
// @Tags         AI创作
// @Accept       json
// @Produce      json
// @Param        request  body      model.TitleGenerationRequest  true  "标题生成请求"
// @Success      200      {object}  map[string]interface{}  "{\"success\": true, \"title\": \"...\", \"titles\": [...]}"
// @Failure      400      {object}  map[string]interface{}  "请求参数错误"
// @Failure      502      {object}  map[string]interface{}  "生成失败"
// @Router       /api/ai/generate-title [post]
func (h *Handler) GenerateTitle(c *gin.Context) {
	var req model.TitleGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestFlat(c, err)
		return
	}

	out := h.novelService.GenerateTitles(c.Request.Context(), &req)
	if data, ok := out.Data.(map[string]any); ok {
		if titles, ok := data["titles"].([]string); ok && len(titles) > 0 {
			data["title"] = titles[0]
		}
	}
	respondFlat(c, out, "")
}
