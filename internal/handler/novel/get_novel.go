package novel

import (
	"strconv"

	"github.com/gin-gonic/gin"

	httputil "conovel/internal/pkg/http"
	"conovel/internal/service/novel"
)

// GetNovel 获取小说详情
// @Summary      获取小说详情
// @Description  小说项目、按序号排列的章节与活跃会话
// @Tags         小说管理
// @Produce      json
// @Param        novel_id  path      string  true  "小说ID"
// @Success      200       {object}  Outcome  "data: {novel, chapters, session}"
// @Failure      404       {object}  Outcome  "小说不存在"
// @Router       /api/v1/novels/{novel_id} [get]
func (h *Handler) GetNovel(c *gin.Context) {
	respond(c, h.novelService.GetNovelDetails(c.Request.Context(), c.Param("novel_id")))
}

// ListNovels 小说列表
// @Summary      小说列表
// @Description  按更新时间倒序
// @Tags         小说管理
// @Produce      json
// @Param        limit  query     int  false  "数量上限，默认20"
// @Success      200    {object}  Outcome  "data: {novels, total}"
// @Router       /api/v1/novels [get]
func (h *Handler) ListNovels(c *gin.Context) {
	limit := novel.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respond(c, httputil.Fail(httputil.CodeValidation, "limit 必须是正整数"))
			return
		}
		limit = n
	}
	respond(c, h.novelService.ListNovels(c.Request.Context(), limit))
}

// DeleteNovel 删除小说项目
// @Summary      删除小说项目
// @Description  级联删除章节；创作会话保留
// @Tags         小说管理
// @Produce      json
// @Param        novel_id  path      string  true  "小说ID"
// @Success      200       {object}  Outcome  "删除成功"
// @Failure      404       {object}  Outcome  "小说不存在"
// @Router       /api/v1/novels/{novel_id} [delete]
func (h *Handler) DeleteNovel(c *gin.Context) {
	respond(c, h.novelService.DeleteProject(c.Request.Context(), c.Param("novel_id")))
}
