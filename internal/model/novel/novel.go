package novel

import "time"

// Project 小说项目（projects 集合）
// total_word_count / chapter_count 是派生字段，只由仓库层在章节变更后重算
type Project struct {
	ID    string  `json:"id"`
	Title *string `json:"title"`
	Genre Genre   `json:"genre"`
	Theme string  `json:"theme"`

	Outline *string       `json:"outline"`
	Status  ProjectStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GeneratedTitles []string       `json:"generated_titles"`
	UserEdits       map[string]any `json:"user_edits"`

	TotalWordCount int `json:"total_word_count"`
	ChapterCount   int `json:"chapter_count"`
}

// NewProject 构造草稿状态的新项目（id 与时间戳由仓库层写入）
func NewProject(genre Genre, theme string) *Project {
	return &Project{
		Genre:           genre,
		Theme:           theme,
		Status:          ProjectStatusDraft,
		GeneratedTitles: []string{},
		UserEdits:       map[string]any{},
	}
}

// TitleText 返回标题，未设置时为空串
func (p *Project) TitleText() string {
	if p.Title == nil {
		return ""
	}
	return *p.Title
}

// DisplayTitle 列表展示用标题，未设置时用「类型+小说」
func (p *Project) DisplayTitle() string {
	if t := p.TitleText(); t != "" {
		return t
	}
	return string(p.Genre) + "小说"
}

// AddGeneratedTitle 追加候选标题（去重）
func (p *Project) AddGeneratedTitle(title string) {
	for _, t := range p.GeneratedTitles {
		if t == title {
			return
		}
	}
	p.GeneratedTitles = append(p.GeneratedTitles, title)
}

// Clone 深拷贝，避免调用方修改仓库内部数据
func (p *Project) Clone() *Project {
	cp := *p
	if p.Title != nil {
		t := *p.Title
		cp.Title = &t
	}
	if p.Outline != nil {
		o := *p.Outline
		cp.Outline = &o
	}
	cp.GeneratedTitles = append([]string{}, p.GeneratedTitles...)
	cp.UserEdits = cloneMap(p.UserEdits)
	return &cp
}

// StringPtr 返回字符串指针，空串返回 nil
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
