package ai

import (
	"fmt"
	"regexp"
	"strings"
)

// TitlePrompt 标题生成提示词
func TitlePrompt(genre, theme string, count int) string {
	return fmt.Sprintf("请为一部%s类型、主题为「%s」的小说生成%d个吸引人的标题。每行一个标题，不要添加任何解释。", genre, theme, count)
}

// OutlinePrompt 大纲生成提示词
func OutlinePrompt(genre, theme, title string, chapterCount int) string {
	return fmt.Sprintf(`请为小说《%s》创作大纲。
类型：%s
主题：%s
要求：
1. 先用一段话概括故事梗概与主要人物；
2. 然后列出%d个章节，每章一行，格式为「第N章 章节名：本章要点」。`, title, genre, theme, chapterCount)
}

// ChapterPrompt 章节正文提示词
func ChapterPrompt(title, outline string, chapterNumber int, chapterTitle string, wordCountTarget int) string {
	return fmt.Sprintf(`请根据以下大纲，为小说《%s》创作第%d章「%s」的正文。
大纲：
%s

要求：正文约%d字，情节连贯，人物鲜明，直接输出正文。`, title, chapterNumber, chapterTitle, outline, wordCountTarget)
}

var titlePrefix = regexp.MustCompile(`^\s*(\d+[\.\)、:：]|[-*•])\s*`)

// ParseTitles 从生成结果中解析标题列表：去掉序号与书名号，去重，最多 count 个
func ParseTitles(text string, count int) []string {
	seen := make(map[string]bool)
	titles := make([]string, 0, count)
	for _, line := range strings.Split(text, "\n") {
		t := titlePrefix.ReplaceAllString(line, "")
		t = strings.Trim(strings.TrimSpace(t), "《》\"“”")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		titles = append(titles, t)
		if len(titles) == count {
			break
		}
	}
	return titles
}
