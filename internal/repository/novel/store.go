// Package novel 基于 JSON 文件的文档存储：项目、章节、创作会话、生成缓存四个集合。
//
// 每个集合对应一个文件，所有修改都是整文件读-改-写，并由集合级互斥锁串行化。
// 同一时刻最多持有一把集合锁，跨集合操作（如删除项目级联章节）分步完成。
// 项目汇总的重算另有一把 rollupMu，只在它内部依次获取章节锁与项目锁。
package novel

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"conovel/internal/model/novel"
)

// 集合文件名
const (
	ProjectsFile = "novels.json"
	ChaptersFile = "chapters.json"
	SessionsFile = "sessions.json"
	CacheFile    = "ai_cache.json"
)

// CollectionFiles 全部集合文件，顺序固定
var CollectionFiles = []string{ProjectsFile, ChaptersFile, SessionsFile, CacheFile}

type storeOptions struct {
	ioTimeout time.Duration
}

// Store 四个集合的持有者
type Store struct {
	dataDir string

	projects *collection[novel.Project]
	chapters *collection[novel.Chapter]
	sessions *collection[novel.Session]
	caches   *collection[novel.GenerationCache]

	// rollupMu 串行化「读章节-写项目汇总」，保证最后一次汇总看到全部已完成的章节写入
	rollupMu sync.Mutex

	now func() time.Time
}

// New 创建文档存储；ioTimeout<=0 表示不限制单次文件读写时间
func New(dataDir string, ioTimeout time.Duration) *Store {
	opts := storeOptions{ioTimeout: ioTimeout}
	return &Store{
		dataDir:  dataDir,
		projects: newCollection[novel.Project]("projects", filepath.Join(dataDir, ProjectsFile), opts),
		chapters: newCollection[novel.Chapter]("chapters", filepath.Join(dataDir, ChaptersFile), opts),
		sessions: newCollection[novel.Session]("sessions", filepath.Join(dataDir, SessionsFile), opts),
		caches:   newCollection[novel.GenerationCache]("cache", filepath.Join(dataDir, CacheFile), opts),
		now:      time.Now,
	}
}

// Init 创建数据目录，缺失的集合文件写入空集合
func (s *Store) Init() error {
	if err := s.projects.codec.Init(); err != nil {
		return fmt.Errorf("init projects: %w", err)
	}
	if err := s.chapters.codec.Init(); err != nil {
		return fmt.Errorf("init chapters: %w", err)
	}
	if err := s.sessions.codec.Init(); err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}
	if err := s.caches.codec.Init(); err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	return nil
}

// DataDir 数据目录
func (s *Store) DataDir() string {
	return s.dataDir
}

// SetClock 替换时间来源（测试用）
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Projects 项目仓库
func (s *Store) Projects() *ProjectRepo {
	return &ProjectRepo{store: s}
}

// Chapters 章节仓库
func (s *Store) Chapters() *ChapterRepo {
	return &ChapterRepo{store: s}
}

// Sessions 会话仓库
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{store: s}
}

// Caches 缓存仓库
func (s *Store) Caches() *CacheRepo {
	return &CacheRepo{store: s}
}
