package novel

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"conovel/internal/model"
	"conovel/internal/model/novel"
	"conovel/internal/pkg/http"
	novelrepo "conovel/internal/repository/novel"
)

// 会话动作
const (
	ActionNext   = "next"
	ActionPrev   = "prev"
	ActionUpdate = "update"
	ActionSave   = "save"
)

// CreateProject 创建小说项目，并创建关联的创作会话
func (s *novelService) CreateProject(ctx context.Context, req *model.CreateProjectRequest) *http.Outcome {
	genre, ok := novel.ParseGenre(req.Genre)
	if !ok {
		return invalid("不支持的小说类型: " + req.Genre)
	}
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		return invalid("主题不能为空")
	}

	project := novel.NewProject(genre, theme)
	if err := s.projects.Create(ctx, project); err != nil {
		return fail("create_project", err, "", "CREATE_PROJECT_FAILED", "创建小说项目失败")
	}

	session := novel.NewSession(project.ID)
	if err := s.sessions.Create(ctx, session); err != nil {
		return fail("create_project", err, "", "CREATE_PROJECT_FAILED", "创建创作会话失败")
	}

	observe("create_project", nil)
	log.Info().Str("novel_id", project.ID).Str("genre", genre.String()).Msg("novel project created")
	return http.OK("小说项目创建成功", map[string]any{
		"novel":   project,
		"session": session,
	})
}

// SaveNovelContent 保存标题与大纲
func (s *novelService) SaveNovelContent(ctx context.Context, novelID string, req *model.SaveContentRequest) *http.Outcome {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return invalid("标题不能为空")
	}

	project, err := s.projects.FindByID(ctx, novelID)
	if err != nil {
		return fail("save_content", err, "NOVEL_NOT_FOUND", "SAVE_CONTENT_FAILED", "保存小说内容失败")
	}

	project.Title = &title
	project.Outline = novel.StringPtr(req.Outline)
	project.Status = novel.ProjectStatusInProgress
	project.AddGeneratedTitle(title)

	if err := s.projects.Update(ctx, project); err != nil {
		return fail("save_content", err, "NOVEL_NOT_FOUND", "SAVE_CONTENT_FAILED", "保存小说内容失败")
	}
	observe("save_content", nil)
	return http.OK("小说内容保存成功", project)
}

// GetNovelDetails 项目详情，附带章节列表与活跃会话
func (s *novelService) GetNovelDetails(ctx context.Context, novelID string) *http.Outcome {
	project, err := s.projects.FindByID(ctx, novelID)
	if err != nil {
		return fail("get_novel", err, "NOVEL_NOT_FOUND", "GET_NOVEL_FAILED", "获取小说详情失败")
	}
	chapters, err := s.chapters.FindByNovelID(ctx, novelID)
	if err != nil {
		return fail("get_novel", err, "", "GET_NOVEL_FAILED", "获取小说详情失败")
	}

	var session *novel.Session
	active, err := s.sessions.FindActiveByNovelID(ctx, novelID)
	switch {
	case err == nil:
		session = active
	case !errors.Is(err, novelrepo.ErrNotFound):
		return fail("get_novel", err, "", "GET_NOVEL_FAILED", "获取小说详情失败")
	}

	observe("get_novel", nil)
	return http.OK("获取小说详情成功", map[string]any{
		"novel":    project,
		"chapters": chapters,
		"session":  session,
	})
}

// ListNovels 列出最近更新的项目
func (s *novelService) ListNovels(ctx context.Context, limit int) *http.Outcome {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	projects, err := s.projects.List(ctx, limit)
	if err != nil {
		return fail("list_novels", err, "", "LIST_NOVELS_FAILED", "获取小说列表失败")
	}
	observe("list_novels", nil)
	return http.OK("获取小说列表成功", map[string]any{
		"novels": projects,
		"total":  len(projects),
	})
}

// DeleteProject 删除项目，章节级联删除，会话保留
func (s *novelService) DeleteProject(ctx context.Context, novelID string) *http.Outcome {
	removed, err := s.projects.Delete(ctx, novelID)
	if err != nil {
		return fail("delete_novel", err, "NOVEL_NOT_FOUND", "DELETE_NOVEL_FAILED", "删除小说项目失败")
	}
	if !removed {
		observe("delete_novel", novelrepo.ErrNotFound)
		return http.Fail("NOVEL_NOT_FOUND", "小说项目不存在")
	}
	observe("delete_novel", nil)
	log.Info().Str("novel_id", novelID).Msg("novel project deleted")
	return http.OK("小说项目已删除", map[string]any{"novel_id": novelID})
}

// UpdateSessionStep 根据动作更新创作会话
func (s *novelService) UpdateSessionStep(ctx context.Context, sessionID string, req *model.SessionStepRequest) *http.Outcome {
	switch req.Action {
	case ActionNext, ActionPrev, ActionUpdate, ActionSave:
	default:
		return invalid("不支持的会话动作: " + req.Action)
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return fail("update_session", err, "SESSION_NOT_FOUND", "UPDATE_SESSION_FAILED", "更新会话失败")
	}

	now := session.UpdatedAt
	switch req.Action {
	case ActionNext:
		session.NextStep(now)
	case ActionPrev:
		session.PrevStep(now)
	case ActionUpdate:
		if len(req.Data) > 0 {
			session.SetData(req.Data, now)
		}
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return fail("update_session", err, "SESSION_NOT_FOUND", "UPDATE_SESSION_FAILED", "更新会话失败")
	}
	observe("update_session", nil)
	return http.OK("会话更新成功", session)
}
