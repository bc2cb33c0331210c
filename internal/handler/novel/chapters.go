package novel

import (
	"github.com/gin-gonic/gin"

	"conovel/internal/model"
)

// ListSavedChapters 已保存章节列表
// @Summary      已保存章节列表
// @Description  全部已保存章节（不含正文），按创建时间倒序
// @Tags         AI创作
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "{\"success\": true, \"chapters\": [...]}"
// @Router       /api/ai/saved-chapters [get]
func (h *Handler) ListSavedChapters(c *gin.Context) {
	respondFlat(c, h.novelService.ListSavedChapters(c.Request.Context()), "chapters")
}

// GetChapter 章节完整内容
// @Summary      章节完整内容
// @Tags         AI创作
// @Produce      json
// @Param        chapter_id  path      string  true  "章节ID"
// @Success      200         {object}  map[string]interface{}  "{\"success\": true, \"chapter\": {...}}"
// @Failure      404         {object}  map[string]interface{}  "章节不存在"
// @Router       /api/ai/chapter/{chapter_id} [get]
func (h *Handler) GetChapter(c *gin.Context) {
	respondFlat(c, h.novelService.GetChapterContent(c.Request.Context(), c.Param("chapter_id")), "chapter")
}

// UpdateChapterPosition 调整章节序号
// @Summary      调整章节序号
// @Description  目标序号须在 1-99 之间且未被同一小说的其他章节占用
// @Tags         AI创作
// @Accept       json
// @Produce      json
// @Param        chapter_id  path      string                   true  "章节ID"
// @Param        request     body      model.RepositionRequest  true  "新序号"
// @Success      200         {object}  map[string]interface{}  "{\"success\": true, \"chapter\": {...}}"
// @Failure      404         {object}  map[string]interface{}  "章节不存在"
// @Failure      409         {object}  map[string]interface{}  "目标序号无效或已被占用"
// @Router       /api/ai/chapter/{chapter_id}/position [put]
func (h *Handler) UpdateChapterPosition(c *gin.Context) {
	var req model.RepositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestFlat(c, err)
		return
	}
	respondFlat(c, h.novelService.RepositionChapter(c.Request.Context(), c.Param("chapter_id"), req.NewPosition), "chapter")
}
