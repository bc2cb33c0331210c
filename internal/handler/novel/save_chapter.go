package novel

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"conovel/internal/model"
	httputil "conovel/internal/pkg/http"
)

// SaveChapterByTitle 保存章节（前端兼容接口）
// @Summary      保存章节
// @Description  按小说标题与主题找到项目（不存在则创建），再按章节序号新建或覆盖章节
// @Tags         AI创作
// @Accept       json
// @Produce      json
// @Param        request  body      model.SaveChapterByTitleRequest  true  "保存章节请求"
// @Success      200      {object}  map[string]interface{}  "{\"success\": true, \"message\": \"章节保存成功\", \"chapter_id\": \"...\", \"novel_id\": \"...\"}"
// @Failure      400      {object}  map[string]interface{}  "请求参数错误"
// @Failure      500      {object}  map[string]interface{}  "保存失败"
// @Router       /api/ai/save-chapter [post]
func (h *Handler) SaveChapterByTitle(c *gin.Context) {
	var req model.SaveChapterByTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestFlat(c, err)
		return
	}
	respondFlat(c, h.novelService.SaveChapterByTitle(c.Request.Context(), &req), "")
}

// SaveChapter 按项目ID与章节序号保存章节
// @Summary      保存章节
// @Description  同一小说同序号的章节存在时覆盖内容，否则创建；保存后更新小说的章节数与总字数
// @Tags         小说管理
// @Accept       json
// @Produce      json
// @Param        novel_id  path      string                    true  "小说ID"
// @Param        number    path      int                       true  "章节序号"
// @Param        request   body      model.SaveChapterRequest  true  "章节内容"
// @Success      200       {object}  Outcome  "成功；error_code=ROLLUP_STALE 表示汇总未更新"
// @Failure      400       {object}  Outcome  "请求参数错误"
// @Failure      404       {object}  Outcome  "小说不存在"
// @Router       /api/v1/novels/{novel_id}/chapters/{number} [put]
func (h *Handler) SaveChapter(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		respond(c, httputil.Fail(httputil.CodeValidation, "章节序号必须是整数"))
		return
	}
	var req model.SaveChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, h.novelService.SaveChapter(c.Request.Context(), c.Param("novel_id"), number, &req))
}
