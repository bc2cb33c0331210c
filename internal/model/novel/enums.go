package novel

import "strings"

// Genre 小说类型
type Genre string

const (
	GenreFantasy Genre = "玄幻"
	GenreUrban   Genre = "都市"
	GenreSciFi   Genre = "科幻"
	GenreWuxia   Genre = "武侠"
	GenreRomance Genre = "言情"
)

// genreNames 枚举名到取值的映射（接受 FANTASY 这类写法）
var genreNames = map[string]Genre{
	"FANTASY": GenreFantasy,
	"URBAN":   GenreUrban,
	"SCIFI":   GenreSciFi,
	"WUXIA":   GenreWuxia,
	"ROMANCE": GenreRomance,
}

// Genres 全部小说类型，顺序固定
var Genres = []Genre{GenreFantasy, GenreUrban, GenreSciFi, GenreWuxia, GenreRomance}

// ParseGenre 解析小说类型，接受中文取值或枚举名
func ParseGenre(s string) (Genre, bool) {
	s = strings.TrimSpace(s)
	for _, g := range Genres {
		if string(g) == s {
			return g, true
		}
	}
	g, ok := genreNames[strings.ToUpper(s)]
	return g, ok
}

// ParseGenreOrDefault 无法识别时回退为玄幻
func ParseGenreOrDefault(s string) Genre {
	if g, ok := ParseGenre(s); ok {
		return g
	}
	return GenreFantasy
}

// String 返回类型的字符串表示
func (g Genre) String() string {
	return string(g)
}

// ProjectStatus 小说项目状态
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "草稿"
	ProjectStatusInProgress ProjectStatus = "创作中"
	ProjectStatusCompleted  ProjectStatus = "已完成"
	ProjectStatusPublished  ProjectStatus = "已发布"
)

// String 返回状态的字符串表示
func (s ProjectStatus) String() string {
	return string(s)
}

// ChapterStatus 章节状态
type ChapterStatus string

const (
	ChapterStatusDraft      ChapterStatus = "草稿"
	ChapterStatusGenerating ChapterStatus = "生成中"
	ChapterStatusCompleted  ChapterStatus = "已完成"
	ChapterStatusReviewed   ChapterStatus = "已审阅"
)

// String 返回状态的字符串表示
func (s ChapterStatus) String() string {
	return string(s)
}

// CreationStep 创作步骤，按数值有序
type CreationStep int

const (
	StepBasicSetup        CreationStep = 0 // 基础设置
	StepTitleGeneration   CreationStep = 1 // 标题生成
	StepOutlineCreation   CreationStep = 2 // 大纲创建
	StepContentReview     CreationStep = 3 // 内容确认
	StepChapterGeneration CreationStep = 4 // 章节生成
)

// FirstStep / LastStep 步骤边界
const (
	FirstStep = StepBasicSetup
	LastStep  = StepChapterGeneration
)

// String 返回步骤名称
func (s CreationStep) String() string {
	switch s {
	case StepBasicSetup:
		return "BASIC_SETUP"
	case StepTitleGeneration:
		return "TITLE_GENERATION"
	case StepOutlineCreation:
		return "OUTLINE_CREATION"
	case StepContentReview:
		return "CONTENT_REVIEW"
	case StepChapterGeneration:
		return "CHAPTER_GENERATION"
	default:
		return "UNKNOWN"
	}
}
