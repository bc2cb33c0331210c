package novel

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"conovel/internal/ai"
	"conovel/internal/model"
	"conovel/internal/pkg/chatstream"
	"conovel/internal/pkg/http"
	"conovel/internal/pkg/jsonfile"
	"conovel/internal/pkg/metrics"
	novelrepo "conovel/internal/repository/novel"
)

// 默认值
const (
	DefaultListLimit   = 20
	DefaultCacheMaxAge = 7 * 24 * time.Hour
	DefaultTheme       = "默认主题"
)

// NovelService 小说创作服务接口
// 所有方法都返回统一响应信封，不向调用方抛出错误
type NovelService interface {
	// CreateProject 创建小说项目及其创作会话
	CreateProject(ctx context.Context, req *model.CreateProjectRequest) *http.Outcome
	// SaveNovelContent 保存标题与大纲，项目进入创作中
	SaveNovelContent(ctx context.Context, novelID string, req *model.SaveContentRequest) *http.Outcome
	// SaveChapter 按项目ID与章节序号保存章节（存在则覆盖）
	SaveChapter(ctx context.Context, novelID string, chapterNumber int, req *model.SaveChapterRequest) *http.Outcome
	// SaveChapterByTitle 按小说标题与主题找到或创建项目，再保存章节
	SaveChapterByTitle(ctx context.Context, req *model.SaveChapterByTitleRequest) *http.Outcome
	// GetNovelDetails 项目、章节与活跃会话
	GetNovelDetails(ctx context.Context, novelID string) *http.Outcome
	// ListNovels 最近更新的项目
	ListNovels(ctx context.Context, limit int) *http.Outcome
	// DeleteProject 删除项目（级联删除章节）
	DeleteProject(ctx context.Context, novelID string) *http.Outcome
	// UpdateSessionStep 推进、回退或更新创作会话
	UpdateSessionStep(ctx context.Context, sessionID string, req *model.SessionStepRequest) *http.Outcome
	// GetStatistics 全局统计
	GetStatistics(ctx context.Context) *http.Outcome
	// CleanupResources 清理过期生成缓存
	CleanupResources(ctx context.Context) *http.Outcome
	// ListSavedChapters 全部已保存章节（按创建时间倒序）
	ListSavedChapters(ctx context.Context) *http.Outcome
	// GetChapterContent 章节完整内容
	GetChapterContent(ctx context.Context, chapterID string) *http.Outcome
	// RepositionChapter 调整章节序号
	RepositionChapter(ctx context.Context, chapterID string, position int) *http.Outcome

	// GenerateTitles 生成候选标题（带缓存）
	GenerateTitles(ctx context.Context, req *model.TitleGenerationRequest) *http.Outcome
	// GenerateOutline 生成大纲（带缓存）
	GenerateOutline(ctx context.Context, req *model.OutlineGenerationRequest) *http.Outcome
	// GenerateChapter 生成章节正文
	GenerateChapter(ctx context.Context, req *model.ChapterGenerationRequest) *http.Outcome
	// StreamOutline 准备大纲的流式生成
	StreamOutline(ctx context.Context, req *model.OutlineGenerationRequest) (*GenerationStream, *http.Outcome)
	// StreamChapter 准备章节正文的流式生成
	StreamChapter(ctx context.Context, req *model.ChapterGenerationRequest) (*GenerationStream, *http.Outcome)

	// RecomputeProjectTotals 从章节重新汇总项目的章节数与总字数
	RecomputeProjectTotals(ctx context.Context, novelID string) (chapterCount, totalWords int, err error)
	// Statistics 计算全局统计
	Statistics(ctx context.Context) (*model.Statistics, error)
}

// Repositories 服务依赖的仓库
type Repositories struct {
	Projects novelrepo.ProjectRepository
	Chapters novelrepo.ChapterRepository
	Sessions novelrepo.SessionRepository
	Caches   novelrepo.CacheRepository
}

// RepositoriesFromStore 用文档存储构造全部仓库
func RepositoriesFromStore(store *novelrepo.Store) Repositories {
	return Repositories{
		Projects: store.Projects(),
		Chapters: store.Chapters(),
		Sessions: store.Sessions(),
		Caches:   store.Caches(),
	}
}

// Options 服务参数
type Options struct {
	CacheMaxAge     time.Duration // 清理缓存的年龄阈值
	GenerateTimeout time.Duration // 单次同步生成超时
}

// novelService 小说创作服务实现
type novelService struct {
	projects novelrepo.ProjectRepository
	chapters novelrepo.ChapterRepository
	sessions novelrepo.SessionRepository
	caches   novelrepo.CacheRepository

	generator ai.Generator
	group     singleflight.Group
	opts      Options
}

// NewNovelService 创建小说创作服务
func NewNovelService(repos Repositories, generator ai.Generator, opts Options) NovelService {
	if opts.CacheMaxAge <= 0 {
		opts.CacheMaxAge = DefaultCacheMaxAge
	}
	return &novelService{
		projects:  repos.Projects,
		chapters:  repos.Chapters,
		sessions:  repos.Sessions,
		caches:    repos.Caches,
		generator: generator,
		opts:      opts,
	}
}

// GenerationStream 一次流式生成所需的提示词与片段来源
type GenerationStream struct {
	Kind     string
	Prompt   string
	Source   chatstream.Source
	Cached   bool
	complete func(ctx context.Context, text string)
}

// Complete 流正常结束后回调（如写入缓存）
func (g *GenerationStream) Complete(ctx context.Context, text string) {
	if g.complete != nil && text != "" {
		g.complete(ctx, text)
	}
}

var notFoundMessages = map[string]string{
	"NOVEL_NOT_FOUND":   "小说项目不存在",
	"SESSION_NOT_FOUND": "创作会话不存在",
	"CHAPTER_NOT_FOUND": "章节不存在",
}

// fail 把仓库错误映射为响应信封
// notFoundCode 为空时使用通用 NOT_FOUND
func fail(op string, err error, notFoundCode, failedCode, message string) *http.Outcome {
	observe(op, err)
	switch {
	case errors.Is(err, novelrepo.ErrNotFound):
		if msg, ok := notFoundMessages[notFoundCode]; ok {
			return http.Fail(notFoundCode, msg)
		}
		return http.Fail(http.CodeNotFound, message+": 记录不存在")
	case errors.Is(err, novelrepo.ErrConflict):
		return http.Fail(http.CodeConflict, message+": "+err.Error())
	case errors.Is(err, novelrepo.ErrInvalid):
		return http.Fail(http.CodeValidation, message+": "+err.Error())
	case errors.Is(err, jsonfile.ErrTimeout):
		log.Error().Err(err).Str("op", op).Msg("store operation timed out")
		return http.Fail(http.CodeTimeout, message+": 存储读写超时")
	default:
		log.Error().Err(err).Str("op", op).Msg("store operation failed")
		return http.Fail(failedCode, message+": "+err.Error())
	}
}

// invalid 参数校验失败
func invalid(message string) *http.Outcome {
	return http.Fail(http.CodeValidation, message)
}

// observe 记录一次编排操作的结果
func observe(op string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.StoreOperationsTotal.WithLabelValues(op, status).Inc()
}
