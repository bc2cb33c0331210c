package novel

import (
	"fmt"
	"strings"
	"time"
)

// Chapter 章节实体
// 说明：novel_id 指向 Project；同一 novel_id 下 chapter_number 唯一，由仓库层在创建与调整序号时保证。
type Chapter struct {
	ID string `json:"id"` // 章节ID（UUID）

	NovelID       string  `json:"novel_id"`
	ChapterNumber int     `json:"chapter_number"` // 章节序号，从1开始
	Title         *string `json:"title"`
	Content       *string `json:"content"`

	Status    ChapterStatus `json:"status"`
	WordCount int           `json:"word_count"` // 不含空格与换行的字符数，只由仓库层计算

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GeneratedByAI    bool    `json:"generated_by_ai"`
	AIModelUsed      *string `json:"ai_model_used"`
	GenerationPrompt *string `json:"generation_prompt"`
}

// DefaultChapterTitle 默认章节标题
func DefaultChapterTitle(number int) string {
	return fmt.Sprintf("第%d章", number)
}

// CountWords 统计字数：去掉空格与换行后的字符数
func CountWords(content string) int {
	n := 0
	for _, r := range content {
		if r == ' ' || r == '\n' {
			continue
		}
		n++
	}
	return n
}

// RecountWords 按当前内容重算字数
func (c *Chapter) RecountWords() {
	if c.Content == nil {
		c.WordCount = 0
		return
	}
	c.WordCount = CountWords(*c.Content)
}

// TitleText 返回标题，未设置时为空串
func (c *Chapter) TitleText() string {
	if c.Title == nil {
		return ""
	}
	return *c.Title
}

// ContentText 返回正文，未设置时为空串
func (c *Chapter) ContentText() string {
	if c.Content == nil {
		return ""
	}
	return *c.Content
}

// HasDefaultTitle 标题为空或仍是当前序号的默认标题
func (c *Chapter) HasDefaultTitle() bool {
	t := strings.TrimSpace(c.TitleText())
	return t == "" || t == DefaultChapterTitle(c.ChapterNumber)
}

// Preview 正文前 n 个字符，超出时追加省略号
func (c *Chapter) Preview(n int) string {
	runes := []rune(c.ContentText())
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}

// Clone 深拷贝
func (c *Chapter) Clone() *Chapter {
	cp := *c
	cp.Title = clonePtr(c.Title)
	cp.Content = clonePtr(c.Content)
	cp.AIModelUsed = clonePtr(c.AIModelUsed)
	cp.GenerationPrompt = clonePtr(c.GenerationPrompt)
	return &cp
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
