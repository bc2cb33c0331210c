package novel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"conovel/internal/ai"
	"conovel/internal/model"
	"conovel/internal/model/novel"
	"conovel/internal/pkg/http"
	"conovel/internal/pkg/metrics"
	novelrepo "conovel/internal/repository/novel"
)

// 生成类型（也是缓存内容类型与指标标签）
const (
	KindTitle   = novel.ContentTypeTitle
	KindOutline = novel.ContentTypeOutline
	KindChapter = novel.ContentTypeChapter
)

// 各类生成的 token 上限
const (
	titleMaxTokens   = 500
	outlineMaxTokens = 2000
)

var failedCodes = map[string]string{
	KindTitle:   "TITLE_GENERATION_FAILED",
	KindOutline: "OUTLINE_GENERATION_FAILED",
	KindChapter: "CHAPTER_GENERATION_FAILED",
}

var kindNames = map[string]string{
	KindTitle:   "标题",
	KindOutline: "大纲",
	KindChapter: "章节",
}

// generation 一次带缓存的生成请求
type generation struct {
	kind      string
	params    map[string]string
	genre     novel.Genre
	theme     string
	prompt    string
	maxTokens int
}

func (g *generation) cacheKey() string {
	return novel.CacheKey(g.kind, g.params)
}

// GenerateTitles 生成候选标题
func (s *novelService) GenerateTitles(ctx context.Context, req *model.TitleGenerationRequest) *http.Outcome {
	req.ApplyDefaults()
	genre, ok := novel.ParseGenre(req.Genre)
	if !ok {
		return invalid("不支持的小说类型: " + req.Genre)
	}
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		return invalid("主题不能为空")
	}
	if req.Count < model.MinTitleCount || req.Count > model.MaxTitleCount {
		return invalid(fmt.Sprintf("标题数量必须在%d到%d之间", model.MinTitleCount, model.MaxTitleCount))
	}

	g := &generation{
		kind:      KindTitle,
		params:    map[string]string{"genre": genre.String(), "theme": theme, "count": strconv.Itoa(req.Count)},
		genre:     genre,
		theme:     theme,
		prompt:    ai.TitlePrompt(genre.String(), theme, req.Count),
		maxTokens: titleMaxTokens,
	}
	text, err := s.cachedGenerate(ctx, g, func(text string) (string, error) {
		titles := ai.ParseTitles(text, req.Count)
		if len(titles) == 0 {
			return "", ai.ErrEmptyResult
		}
		return strings.Join(titles, "\n"), nil
	})
	if err != nil {
		return generationFailed(KindTitle, err)
	}
	return http.OK("标题生成成功", map[string]any{"titles": ai.ParseTitles(text, req.Count)})
}

// GenerateOutline 生成大纲
func (s *novelService) GenerateOutline(ctx context.Context, req *model.OutlineGenerationRequest) *http.Outcome {
	g, out := outlineGeneration(req)
	if out != nil {
		return out
	}
	text, err := s.cachedGenerate(ctx, g, nil)
	if err != nil {
		return generationFailed(KindOutline, err)
	}
	return http.OK("大纲生成成功", map[string]any{"outline": text})
}

// GenerateChapter 生成章节正文（不缓存）
func (s *novelService) GenerateChapter(ctx context.Context, req *model.ChapterGenerationRequest) *http.Outcome {
	prompt, out := chapterPrompt(req)
	if out != nil {
		return out
	}

	start := time.Now()
	gctx, cancel := s.generateContext(ctx)
	defer cancel()
	text, err := s.generator.Generate(gctx, prompt, req.WordCountTarget*2)
	observeGeneration(KindChapter, start, err)
	if err != nil {
		return generationFailed(KindChapter, err)
	}
	return http.OK("章节生成成功", &model.GeneratedChapter{
		Content:       text,
		ChapterNumber: req.ChapterNumber,
		ChapterTitle:  chapterTitle(req),
	})
}

// StreamOutline 准备大纲的流式生成；缓存命中时回放缓存内容
func (s *novelService) StreamOutline(ctx context.Context, req *model.OutlineGenerationRequest) (*GenerationStream, *http.Outcome) {
	g, out := outlineGeneration(req)
	if out != nil {
		return nil, out
	}

	if entry := s.lookup(ctx, g); entry != nil {
		return &GenerationStream{
			Kind:   KindOutline,
			Prompt: g.prompt,
			Source: ai.NewSliceStream(entry.GeneratedContent),
			Cached: true,
		}, nil
	}

	src, err := s.generator.GenerateStream(ctx, g.prompt, g.maxTokens)
	if err != nil {
		observeGeneration(KindOutline, time.Now(), err)
		return nil, generationFailed(KindOutline, err)
	}
	return &GenerationStream{
		Kind:   KindOutline,
		Prompt: g.prompt,
		Source: src,
		complete: func(ctx context.Context, text string) {
			s.store(ctx, g, text)
		},
	}, nil
}

// StreamChapter 准备章节正文的流式生成
func (s *novelService) StreamChapter(ctx context.Context, req *model.ChapterGenerationRequest) (*GenerationStream, *http.Outcome) {
	prompt, out := chapterPrompt(req)
	if out != nil {
		return nil, out
	}
	src, err := s.generator.GenerateStream(ctx, prompt, req.WordCountTarget*2)
	if err != nil {
		observeGeneration(KindChapter, time.Now(), err)
		return nil, generationFailed(KindChapter, err)
	}
	return &GenerationStream{Kind: KindChapter, Prompt: prompt, Source: src}, nil
}

// cachedGenerate 查缓存，未命中时生成并写入缓存
// 相同缓存键的并发请求只调用一次生成服务；normalize 可在写缓存前整理生成结果。
func (s *novelService) cachedGenerate(ctx context.Context, g *generation, normalize func(string) (string, error)) (string, error) {
	key := g.cacheKey()
	v, err, shared := s.group.Do(key, func() (any, error) {
		if entry := s.lookup(ctx, g); entry != nil {
			return entry.GeneratedContent, nil
		}

		// 共享调用不随单个请求取消
		gctx, cancel := s.generateContext(context.WithoutCancel(ctx))
		defer cancel()

		start := time.Now()
		text, err := s.generator.Generate(gctx, g.prompt, g.maxTokens)
		if err == nil && normalize != nil {
			text, err = normalize(text)
		}
		observeGeneration(g.kind, start, err)
		if err != nil {
			return nil, err
		}
		s.store(context.WithoutCancel(ctx), g, text)
		return text, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		log.Debug().Str("kind", g.kind).Str("cache_key", key).Msg("generation shared with concurrent request")
	}
	return v.(string), nil
}

// lookup 查缓存；读失败只记日志，按未命中处理
func (s *novelService) lookup(ctx context.Context, g *generation) *novel.GenerationCache {
	entry, err := s.caches.Get(ctx, g.cacheKey())
	switch {
	case err == nil:
		metrics.GenerationCacheTotal.WithLabelValues(g.kind, "hit").Inc()
		return entry
	case !errors.Is(err, novelrepo.ErrNotFound):
		log.Warn().Err(err).Str("kind", g.kind).Msg("generation cache lookup failed")
	}
	metrics.GenerationCacheTotal.WithLabelValues(g.kind, "miss").Inc()
	return nil
}

// store 写缓存；失败只记日志
func (s *novelService) store(ctx context.Context, g *generation, text string) {
	entry := &novel.GenerationCache{
		CacheKey:         g.cacheKey(),
		ContentType:      g.kind,
		GeneratedContent: text,
		Genre:            novel.StringPtr(g.genre.String()),
		Theme:            novel.StringPtr(g.theme),
	}
	if err := s.caches.Save(ctx, entry); err != nil {
		log.Warn().Err(err).Str("kind", g.kind).Msg("failed to save generation cache")
	}
}

// generateContext 同步生成的超时
func (s *novelService) generateContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.GenerateTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.GenerateTimeout)
	}
	return context.WithCancel(ctx)
}

func outlineGeneration(req *model.OutlineGenerationRequest) (*generation, *http.Outcome) {
	req.ApplyDefaults()
	genre, ok := novel.ParseGenre(req.Genre)
	if !ok {
		return nil, invalid("不支持的小说类型: " + req.Genre)
	}
	theme := strings.TrimSpace(req.Theme)
	title := strings.TrimSpace(req.Title)
	if theme == "" || title == "" {
		return nil, invalid("主题和标题不能为空")
	}
	if req.ChapterCount < model.MinOutlineChapters || req.ChapterCount > model.MaxOutlineChapters {
		return nil, invalid(fmt.Sprintf("章节数量必须在%d到%d之间", model.MinOutlineChapters, model.MaxOutlineChapters))
	}
	return &generation{
		kind: KindOutline,
		params: map[string]string{
			"genre":         genre.String(),
			"theme":         theme,
			"title":         title,
			"chapter_count": strconv.Itoa(req.ChapterCount),
		},
		genre:     genre,
		theme:     theme,
		prompt:    ai.OutlinePrompt(genre.String(), theme, title, req.ChapterCount),
		maxTokens: outlineMaxTokens,
	}, nil
}

func chapterPrompt(req *model.ChapterGenerationRequest) (string, *http.Outcome) {
	req.ApplyDefaults()
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Outline) == "" {
		return "", invalid("标题和大纲不能为空")
	}
	if req.ChapterNumber < 1 {
		return "", invalid("章节序号必须大于0")
	}
	if req.WordCountTarget < model.MinWordCountTarget || req.WordCountTarget > model.MaxWordCountTarget {
		return "", invalid(fmt.Sprintf("目标字数必须在%d到%d之间", model.MinWordCountTarget, model.MaxWordCountTarget))
	}
	return ai.ChapterPrompt(req.Title, req.Outline, req.ChapterNumber, chapterTitle(req), req.WordCountTarget), nil
}

// chapterTitle 自定义标题优先，否则为「第N章」
func chapterTitle(req *model.ChapterGenerationRequest) string {
	if t := strings.TrimSpace(req.CustomTitle); t != "" {
		return t
	}
	return novel.DefaultChapterTitle(req.ChapterNumber)
}

// generationFailed 生成失败的响应；超时单独给出 TIMEOUT
func generationFailed(kind string, err error) *http.Outcome {
	log.Error().Err(err).Str("kind", kind).Msg("generation failed")
	name := kindNames[kind]
	if errors.Is(err, context.DeadlineExceeded) {
		return http.Fail(http.CodeTimeout, name+"生成超时")
	}
	return http.Fail(failedCodes[kind], fmt.Sprintf("%s生成失败: %v", name, err))
}

func observeGeneration(kind string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.GenerationTotal.WithLabelValues(kind, status).Inc()
	metrics.GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
