package novel

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// 缓存内容类型
const (
	ContentTypeTitle   = "title"
	ContentTypeOutline = "outline"
	ContentTypeChapter = "chapter"
)

// GenerationCache AI 生成内容缓存
type GenerationCache struct {
	ID               string    `json:"id"`
	CacheKey         string    `json:"cache_key"`
	ContentType      string    `json:"content_type"`
	GeneratedContent string    `json:"generated_content"`
	Genre            *string   `json:"genre"`
	Theme            *string   `json:"theme"`
	CreatedAt        time.Time `json:"created_at"`
	HitCount         int       `json:"hit_count"`
	LastHit          time.Time `json:"last_hit"`
}

// CacheKey 生成缓存键
// 参数按键名排序后拼成 content_type:k1=v1:k2=v2，再取 MD5（32位十六进制）
func CacheKey(contentType string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	sum := md5.Sum([]byte(contentType + ":" + strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}

// IncrementHit 记录一次命中
func (c *GenerationCache) IncrementHit(now time.Time) {
	c.HitCount++
	c.LastHit = now
}

// Clone 深拷贝
func (c *GenerationCache) Clone() *GenerationCache {
	cp := *c
	cp.Genre = clonePtr(c.Genre)
	cp.Theme = clonePtr(c.Theme)
	return &cp
}
