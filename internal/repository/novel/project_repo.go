package novel

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"conovel/internal/model/novel"
	"conovel/internal/pkg/id"
)

// ProjectRepository 项目仓库接口（供 service 层依赖）
type ProjectRepository interface {
	Create(ctx context.Context, p *novel.Project) error
	FindByID(ctx context.Context, id string) (*novel.Project, error)
	FindByTitleAndTheme(ctx context.Context, title, theme string) (*novel.Project, error)
	Update(ctx context.Context, p *novel.Project) error
	List(ctx context.Context, limit int) ([]*novel.Project, error)
	ListAll(ctx context.Context) ([]*novel.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProjectRepo 项目仓库
type ProjectRepo struct {
	store *Store
}

// NewProjectRepo 创建项目仓库
func NewProjectRepo(store *Store) *ProjectRepo {
	return store.Projects()
}

// Create 创建项目：生成 id 与时间戳，汇总字段归零
func (r *ProjectRepo) Create(ctx context.Context, p *novel.Project) error {
	if strings.TrimSpace(p.Theme) == "" {
		return fmt.Errorf("theme is required: %w", ErrInvalid)
	}
	now := r.store.now()
	p.ID = id.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.TotalWordCount = 0
	p.ChapterCount = 0
	if p.Status == "" {
		p.Status = novel.ProjectStatusDraft
	}
	if p.GeneratedTitles == nil {
		p.GeneratedTitles = []string{}
	}
	if p.UserEdits == nil {
		p.UserEdits = map[string]any{}
	}

	return r.store.projects.mutate(ctx, func(records []*novel.Project) ([]*novel.Project, bool, error) {
		return append(records, p.Clone()), true, nil
	})
}

// FindByID 根据ID查询项目
func (r *ProjectRepo) FindByID(ctx context.Context, projectID string) (*novel.Project, error) {
	records, err := r.store.projects.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range records {
		if p.ID == projectID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
}

// FindByTitleAndTheme 按标题与主题精确匹配，返回第一个命中的项目
func (r *ProjectRepo) FindByTitleAndTheme(ctx context.Context, title, theme string) (*novel.Project, error) {
	records, err := r.store.projects.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range records {
		if p.TitleText() == title && p.Theme == theme {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %q/%q: %w", title, theme, ErrNotFound)
}

// Update 按 id 整体替换项目；created_at 与汇总字段以存储中的为准
func (r *ProjectRepo) Update(ctx context.Context, p *novel.Project) error {
	return r.store.projects.mutate(ctx, func(records []*novel.Project) ([]*novel.Project, bool, error) {
		for i, existing := range records {
			if existing.ID != p.ID {
				continue
			}
			p.CreatedAt = existing.CreatedAt
			p.TotalWordCount = existing.TotalWordCount
			p.ChapterCount = existing.ChapterCount
			p.UpdatedAt = r.store.now()
			records[i] = p.Clone()
			return records, true, nil
		}
		return nil, false, fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	})
}

// List 按 updated_at 倒序列出项目，limit<=0 表示不限
func (r *ProjectRepo) List(ctx context.Context, limit int) ([]*novel.Project, error) {
	records, err := r.store.projects.read(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ListAll 按文件顺序返回全部项目
func (r *ProjectRepo) ListAll(ctx context.Context) ([]*novel.Project, error) {
	return r.store.projects.read(ctx)
}

// Delete 删除项目并级联删除其章节；会话不级联
func (r *ProjectRepo) Delete(ctx context.Context, projectID string) (bool, error) {
	removed := false
	err := r.store.projects.mutate(ctx, func(records []*novel.Project) ([]*novel.Project, bool, error) {
		kept := records[:0]
		for _, p := range records {
			if p.ID == projectID {
				removed = true
				continue
			}
			kept = append(kept, p)
		}
		return kept, removed, nil
	})
	if err != nil || !removed {
		return false, err
	}

	if _, err := r.store.Chapters().DeleteByNovelID(ctx, projectID); err != nil {
		return true, fmt.Errorf("cascade delete chapters of %s: %w", projectID, err)
	}
	return true, nil
}

// applyRollup 写入汇总字段，返回项目是否存在；项目已删除时不写入
func (r *ProjectRepo) applyRollup(ctx context.Context, projectID string, chapterCount, totalWords int) (bool, error) {
	found := false
	err := r.store.projects.mutate(ctx, func(records []*novel.Project) ([]*novel.Project, bool, error) {
		for _, p := range records {
			if p.ID != projectID {
				continue
			}
			p.ChapterCount = chapterCount
			p.TotalWordCount = totalWords
			p.UpdatedAt = r.store.now()
			found = true
			return records, true, nil
		}
		return nil, false, nil
	})
	return found, err
}
