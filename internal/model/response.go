package model

import "time"

// SavedChapter 已保存章节列表项
type SavedChapter struct {
	ChapterID     string    `json:"chapter_id"`
	NovelID       string    `json:"novel_id"`
	Title         *string   `json:"title"`
	ChapterNumber int       `json:"chapter_number"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
	NovelTitle    string    `json:"novel_title"`
	Genre         string    `json:"genre"`
	Theme         string    `json:"theme"`
}

// ChapterContent 章节完整内容（含所属小说信息）
type ChapterContent struct {
	ChapterID     string    `json:"chapter_id"`
	NovelID       string    `json:"novel_id"`
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	ChapterNumber int       `json:"chapter_number"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	NovelTitle    string    `json:"novel_title"`
	Genre         string    `json:"genre"`
	Theme         string    `json:"theme"`
	Outline       *string   `json:"outline"`
}

// Statistics 全局统计
type Statistics struct {
	TotalNovels       int            `json:"total_novels"`
	TotalChapters     int            `json:"total_chapters"`
	TotalWords        int            `json:"total_words"`
	ActiveSessions    int            `json:"active_sessions"`
	CacheEntries      int            `json:"cache_entries"`
	CacheEfficiency   float64        `json:"cache_efficiency"`
	GenreDistribution map[string]int `json:"genre_distribution"`
	LastUpdated       time.Time      `json:"last_updated"`
}

// GeneratedChapter 章节生成结果
type GeneratedChapter struct {
	Content       string `json:"content"`
	ChapterNumber int    `json:"chapter_number"`
	ChapterTitle  string `json:"chapter_title"`
}
