package novel

import (
	"github.com/gin-gonic/gin"

	"conovel/internal/model"
)

// UpdateNovelContent 保存标题与大纲
// @Summary      保存标题与大纲
// @Description  项目进入创作中状态，标题加入候选标题列表
// @Tags         小说管理
// @Accept       json
// @Produce      json
// @Param        novel_id  path      string                    true  "小说ID"
// @Param        request   body      model.SaveContentRequest  true  "标题与大纲"
// @Success      200       {object}  Outcome  "保存成功"
// @Failure      404       {object}  Outcome  "小说不存在"
// @Router       /api/v1/novels/{novel_id}/content [put]
func (h *Handler) UpdateNovelContent(c *gin.Context) {
	var req model.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, h.novelService.SaveNovelContent(c.Request.Context(), c.Param("novel_id"), &req))
}

// UpdateSessionStep 更新创作会话
// @Summary      更新创作会话
// @Description  action: next 前进一步，prev 后退一步，update 合并 data，save 只刷新活动时间
// @Tags         小说管理
// @Accept       json
// @Produce      json
// @Param        session_id  path      string                    true  "会话ID"
// @Param        request     body      model.SessionStepRequest  true  "会话动作"
// @Success      200         {object}  Outcome  "更新成功"
// @Failure      400         {object}  Outcome  "不支持的动作"
// @Failure      404         {object}  Outcome  "会话不存在"
// @Router       /api/v1/novels/sessions/{session_id}/step [put]
func (h *Handler) UpdateSessionStep(c *gin.Context) {
	var req model.SessionStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, h.novelService.UpdateSessionStep(c.Request.Context(), c.Param("session_id"), &req))
}
