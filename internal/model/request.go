package model

// 生成请求的取值范围
const (
	MinTitleCount      = 1
	MaxTitleCount      = 10
	DefaultTitleCount  = 3
	MinOutlineChapters = 3
	MaxOutlineChapters = 20
	DefaultOutlineCh   = 8
	MinWordCountTarget = 500
	MaxWordCountTarget = 3000
	DefaultWordTarget  = 1500
)

// CreateProjectRequest 创建小说项目请求
type CreateProjectRequest struct {
	Genre string `json:"genre" binding:"required"`
	Theme string `json:"theme" binding:"required"`
}

// SaveContentRequest 保存小说标题与大纲请求
type SaveContentRequest struct {
	Title   string `json:"title" binding:"required"`
	Outline string `json:"outline"`
}

// SaveChapterRequest 按项目ID保存章节请求（章节序号来自路径）
type SaveChapterRequest struct {
	Content string `json:"content" binding:"required"`
	Title   string `json:"title,omitempty"`
}

// SaveChapterByTitleRequest 按小说标题与主题保存章节请求（前端保存接口）
type SaveChapterByTitleRequest struct {
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	ChapterNumber int    `json:"chapter_number" binding:"required"`
	CustomTitle   string `json:"custom_title,omitempty"`
	Genre         string `json:"genre,omitempty"`
	Theme         string `json:"theme,omitempty"`
	Outline       string `json:"outline,omitempty"`
}

// SessionStepRequest 创作会话步骤请求
type SessionStepRequest struct {
	Action string         `json:"action" binding:"required"` // next, prev, update, save
	Data   map[string]any `json:"data,omitempty"`
}

// RepositionRequest 调整章节序号请求
type RepositionRequest struct {
	NewPosition int `json:"new_position"` // 越界由仓库层按冲突处理
}

// TitleGenerationRequest 标题生成请求
type TitleGenerationRequest struct {
	Genre string `json:"genre" binding:"required"`
	Theme string `json:"theme" binding:"required"`
	Count int    `json:"count,omitempty"`
}

// OutlineGenerationRequest 大纲生成请求
type OutlineGenerationRequest struct {
	Genre        string `json:"genre" binding:"required"`
	Theme        string `json:"theme" binding:"required"`
	Title        string `json:"title" binding:"required"`
	ChapterCount int    `json:"chapter_count,omitempty"`
}

// ChapterGenerationRequest 章节生成请求
type ChapterGenerationRequest struct {
	Title           string `json:"title" binding:"required"`
	Outline         string `json:"outline" binding:"required"`
	ChapterNumber   int    `json:"chapter_number" binding:"required"`
	CustomTitle     string `json:"custom_title,omitempty"`
	WordCountTarget int    `json:"word_count_target,omitempty"`
}

// ApplyDefaults 填充未给出的可选字段
func (r *TitleGenerationRequest) ApplyDefaults() {
	if r.Count == 0 {
		r.Count = DefaultTitleCount
	}
}

// ApplyDefaults 填充未给出的可选字段
func (r *OutlineGenerationRequest) ApplyDefaults() {
	if r.ChapterCount == 0 {
		r.ChapterCount = DefaultOutlineCh
	}
}

// ApplyDefaults 填充未给出的可选字段
func (r *ChapterGenerationRequest) ApplyDefaults() {
	if r.WordCountTarget == 0 {
		r.WordCountTarget = DefaultWordTarget
	}
}
