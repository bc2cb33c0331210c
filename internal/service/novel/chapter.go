package novel

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"conovel/internal/model"
	"conovel/internal/model/novel"
	"conovel/internal/pkg/http"
	novelrepo "conovel/internal/repository/novel"
)

// SaveChapter 按项目ID与序号保存章节，同序号已存在时覆盖内容
func (s *novelService) SaveChapter(ctx context.Context, novelID string, chapterNumber int, req *model.SaveChapterRequest) *http.Outcome {
	if chapterNumber < 1 {
		return invalid("章节序号必须大于0")
	}
	if strings.TrimSpace(req.Content) == "" {
		return invalid("章节内容不能为空")
	}
	if _, err := s.projects.FindByID(ctx, novelID); err != nil {
		return fail("save_chapter", err, "NOVEL_NOT_FOUND", "SAVE_CHAPTER_FAILED", "保存章节失败")
	}

	ch, err := s.upsertChapter(ctx, novelID, chapterNumber, req.Title, req.Content)
	return s.chapterSaved(ch, err)
}

// SaveChapterByTitle 前端保存接口：按 (标题, 主题) 找到项目，找不到则新建
func (s *novelService) SaveChapterByTitle(ctx context.Context, req *model.SaveChapterByTitleRequest) *http.Outcome {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return invalid("小说标题不能为空")
	}
	if req.ChapterNumber < 1 {
		return invalid("章节序号必须大于0")
	}
	if strings.TrimSpace(req.Content) == "" {
		return invalid("章节内容不能为空")
	}
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		theme = DefaultTheme
	}

	project, err := s.projects.FindByTitleAndTheme(ctx, title, theme)
	switch {
	case errors.Is(err, novelrepo.ErrNotFound):
		project = novel.NewProject(novel.ParseGenreOrDefault(req.Genre), theme)
		project.Title = &title
		project.Outline = novel.StringPtr(req.Outline)
		project.Status = novel.ProjectStatusInProgress
		project.AddGeneratedTitle(title)
		if err := s.projects.Create(ctx, project); err != nil {
			return fail("save_chapter", err, "", "SAVE_CHAPTER_FAILED", "保存章节失败")
		}
		log.Info().Str("novel_id", project.ID).Str("title", title).Msg("novel project created for chapter save")
	case err != nil:
		return fail("save_chapter", err, "", "SAVE_CHAPTER_FAILED", "保存章节失败")
	}

	ch, err := s.upsertChapter(ctx, project.ID, req.ChapterNumber, req.CustomTitle, req.Content)
	return s.chapterSaved(ch, err)
}

// upsertChapter 同序号章节存在则更新，否则创建
func (s *novelService) upsertChapter(ctx context.Context, novelID string, number int, title, content string) (*novel.Chapter, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = novel.DefaultChapterTitle(number)
	}
	modelName := s.generator.Model()

	ch, err := s.chapters.FindByNumber(ctx, novelID, number)
	switch {
	case err == nil:
		ch.Title = &title
		ch.Content = &content
		ch.Status = novel.ChapterStatusCompleted
		ch.GeneratedByAI = true
		ch.AIModelUsed = novel.StringPtr(modelName)
		return ch, s.chapters.Update(ctx, ch)
	case errors.Is(err, novelrepo.ErrNotFound):
		ch = &novel.Chapter{
			NovelID:       novelID,
			ChapterNumber: number,
			Title:         &title,
			Content:       &content,
			Status:        novel.ChapterStatusCompleted,
			GeneratedByAI: true,
			AIModelUsed:   novel.StringPtr(modelName),
		}
		return ch, s.chapters.Create(ctx, ch)
	default:
		return nil, err
	}
}

// chapterSaved 把章节保存结果转成响应；汇总失败时仍视为成功
func (s *novelService) chapterSaved(ch *novel.Chapter, err error) *http.Outcome {
	data := func(ch *novel.Chapter) map[string]any {
		return map[string]any{
			"chapter_id": ch.ID,
			"novel_id":   ch.NovelID,
			"chapter":    ch,
		}
	}

	var rollupErr *novelrepo.RollupError
	switch {
	case err == nil:
		observe("save_chapter", nil)
		log.Info().Str("chapter_id", ch.ID).Str("novel_id", ch.NovelID).Int("chapter_number", ch.ChapterNumber).
			Int("word_count", ch.WordCount).Msg("chapter saved")
		return http.OK("章节保存成功", data(ch))
	case errors.As(err, &rollupErr):
		observe("save_chapter", err)
		log.Warn().Err(rollupErr.Err).Str("chapter_id", ch.ID).Str("novel_id", ch.NovelID).Msg("chapter saved but project totals are stale")
		return http.Partial("章节保存成功，但小说字数统计未能更新", http.CodeRollupStale, data(rollupErr.Chapter))
	default:
		return fail("save_chapter", err, "NOVEL_NOT_FOUND", "SAVE_CHAPTER_FAILED", "保存章节失败")
	}
}

// ListSavedChapters 全部已保存章节，附带所属小说信息，按创建时间倒序
// 所属项目已不存在的章节不列出。
func (s *novelService) ListSavedChapters(ctx context.Context) *http.Outcome {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return fail("list_chapters", err, "", "GET_CHAPTERS_FAILED", "获取章节列表失败")
	}
	chapters, err := s.chapters.ListAll(ctx)
	if err != nil {
		return fail("list_chapters", err, "", "GET_CHAPTERS_FAILED", "获取章节列表失败")
	}

	byID := make(map[string]*novel.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	saved := make([]*model.SavedChapter, 0, len(chapters))
	for _, ch := range chapters {
		p, ok := byID[ch.NovelID]
		if !ok {
			continue
		}
		saved = append(saved, &model.SavedChapter{
			ChapterID:     ch.ID,
			NovelID:       p.ID,
			Title:         ch.Title,
			ChapterNumber: ch.ChapterNumber,
			WordCount:     ch.WordCount,
			CreatedAt:     ch.CreatedAt,
			NovelTitle:    p.DisplayTitle(),
			Genre:         p.Genre.String(),
			Theme:         p.Theme,
		})
	}
	sort.SliceStable(saved, func(i, j int) bool {
		return saved[i].CreatedAt.After(saved[j].CreatedAt)
	})

	observe("list_chapters", nil)
	return http.OK("获取章节列表成功", saved)
}

// GetChapterContent 章节完整内容
func (s *novelService) GetChapterContent(ctx context.Context, chapterID string) *http.Outcome {
	ch, err := s.chapters.FindByID(ctx, chapterID)
	if err != nil {
		return fail("get_chapter", err, "CHAPTER_NOT_FOUND", "GET_CHAPTER_FAILED", "获取章节内容失败")
	}
	p, err := s.projects.FindByID(ctx, ch.NovelID)
	if err != nil {
		return fail("get_chapter", err, "NOVEL_NOT_FOUND", "GET_CHAPTER_FAILED", "获取章节内容失败")
	}

	observe("get_chapter", nil)
	return http.OK("获取章节内容成功", &model.ChapterContent{
		ChapterID:     ch.ID,
		NovelID:       p.ID,
		Title:         ch.Title,
		Content:       ch.Content,
		ChapterNumber: ch.ChapterNumber,
		WordCount:     ch.WordCount,
		CreatedAt:     ch.CreatedAt,
		UpdatedAt:     ch.UpdatedAt,
		NovelTitle:    p.DisplayTitle(),
		Genre:         p.Genre.String(),
		Theme:         p.Theme,
		Outline:       p.Outline,
	})
}

// RepositionChapter 调整章节序号，目标位置被占用或越界时拒绝
func (s *novelService) RepositionChapter(ctx context.Context, chapterID string, position int) *http.Outcome {
	ch, err := s.chapters.Reposition(ctx, chapterID, position)
	switch {
	case err == nil:
		observe("reposition_chapter", nil)
		log.Info().Str("chapter_id", chapterID).Int("position", position).Msg("chapter repositioned")
		return http.OK("章节位置更新成功", ch)
	case errors.Is(err, novelrepo.ErrConflict):
		observe("reposition_chapter", err)
		log.Warn().Err(err).Str("chapter_id", chapterID).Int("position", position).Msg("chapter reposition rejected")
		return http.Fail("CHAPTER_POSITION_CONFLICT", "章节位置更新失败，目标位置无效或已被占用")
	default:
		return fail("reposition_chapter", err, "CHAPTER_NOT_FOUND", "UPDATE_POSITION_FAILED", "章节位置更新失败")
	}
}
