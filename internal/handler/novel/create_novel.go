package novel

import (
	"github.com/gin-gonic/gin"

	"conovel/internal/model"
)

// CreateNovel 创建小说项目
// @Summary      创建小说项目
// @Description  创建草稿状态的小说项目，并创建处于基础设置步骤的创作会话
// @Tags         小说管理
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateProjectRequest  true  "类型与主题"
// @Success      200      {object}  Outcome  "data: {novel, session}"
// @Failure      400      {object}  Outcome  "请求参数错误"
// @Failure      500      {object}  Outcome  "服务器内部错误"
// @Router       /api/v1/novels [post]
func (h *Handler) CreateNovel(c *gin.Context) {
	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, h.novelService.CreateProject(c.Request.Context(), &req))
}
