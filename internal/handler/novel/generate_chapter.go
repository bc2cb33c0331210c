package novel

import (
	"github.com/gin-gonic/gin"

	"conovel/internal/model"
)

// GenerateChapter 生成章节正文
// @Summary      生成章节正文
// @Description  根据标题与大纲生成指定章节的正文，不缓存
// @Tags         AI创作
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChapterGenerationRequest  true  "章节生成请求"
// @Success      200      {object}  map[string]interface{}  "{\"success\": true, \"content\": \"...\", \"chapter_number\": 1, \"chapter_title\": \"第1章\"}"
// @Failure      400      {object}  map[string]interface{}  "请求参数错误"
// @Failure      502      {object}  map[string]interface{}  "生成失败"
// @Router       /api/ai/generate-chapter [post]
func (h *Handler) GenerateChapter(c *gin.Context) {
	var req model.ChapterGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestFlat(c, err)
		return
	}

	out := h.novelService.GenerateChapter(c.Request.Context(), &req)
	if chapter, ok := out.Data.(*model.GeneratedChapter); ok {
		out.Data = map[string]any{
			"content":        chapter.Content,
			"chapter_number": chapter.ChapterNumber,
			"chapter_title":  chapter.ChapterTitle,
		}
	}
	respondFlat(c, out, "")
}

// GenerateChapterStream 流式生成章节正文
// @Summary      流式生成章节正文
// @Description  以 SSE 逐帧返回 chat.completion.chunk，成功结束时追加 data: [DONE]
// @Tags         AI创作
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      model.ChapterGenerationRequest  true  "章节生成请求"
// @Success      200      {string}  string  "SSE 帧序列"
// @Failure      400      {object}  Outcome  "请求参数错误"
// @Router       /api/ai/generate-chapter-stream [post]
func (h *Handler) GenerateChapterStream(c *gin.Context) {
	var req model.ChapterGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	gs, out := h.novelService.StreamChapter(c.Request.Context(), &req)
	h.streamGeneration(c, gs, out)
}
