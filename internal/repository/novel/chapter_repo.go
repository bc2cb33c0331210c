package novel

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"conovel/internal/model/novel"
	"conovel/internal/pkg/id"
)

// 章节序号允许范围（调整序号时校验）
const (
	MinChapterPosition = 1
	MaxChapterPosition = 99
)

// ChapterRepository 章节仓库接口（供 service 层依赖）
type ChapterRepository interface {
	Create(ctx context.Context, ch *novel.Chapter) error
	FindByID(ctx context.Context, id string) (*novel.Chapter, error)
	FindByNovelID(ctx context.Context, novelID string) ([]*novel.Chapter, error)
	FindByNumber(ctx context.Context, novelID string, number int) (*novel.Chapter, error)
	Update(ctx context.Context, ch *novel.Chapter) error
	Reposition(ctx context.Context, chapterID string, position int) (*novel.Chapter, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByNovelID(ctx context.Context, novelID string) (int, error)
	ListAll(ctx context.Context) ([]*novel.Chapter, error)
}

// ChapterRepo 章节仓库
type ChapterRepo struct {
	store *Store
}

// NewChapterRepo 创建章节仓库
func NewChapterRepo(store *Store) *ChapterRepo {
	return store.Chapters()
}

// Create 创建章节
// 序号必须 >=1，novel_id 必须指向已存在的项目，同一小说内序号不能重复。
// 写入后重算项目汇总，汇总失败时返回 *RollupError（章节已保存）。
func (r *ChapterRepo) Create(ctx context.Context, ch *novel.Chapter) error {
	if ch.ChapterNumber < 1 {
		return fmt.Errorf("chapter_number %d: %w", ch.ChapterNumber, ErrInvalid)
	}
	if _, err := r.store.Projects().FindByID(ctx, ch.NovelID); err != nil {
		return err
	}

	now := r.store.now()
	ch.ID = id.New()
	ch.CreatedAt = now
	ch.UpdatedAt = now
	if ch.Status == "" {
		ch.Status = novel.ChapterStatusDraft
	}
	ch.RecountWords()

	err := r.store.chapters.mutate(ctx, func(records []*novel.Chapter) ([]*novel.Chapter, bool, error) {
		for _, existing := range records {
			if existing.NovelID == ch.NovelID && existing.ChapterNumber == ch.ChapterNumber {
				return nil, false, fmt.Errorf("chapter %d of novel %s already exists: %w", ch.ChapterNumber, ch.NovelID, ErrConflict)
			}
		}
		return append(records, ch.Clone()), true, nil
	})
	if err != nil {
		return err
	}
	return r.rollup(ctx, ch)
}

// FindByID 根据ID查询章节
func (r *ChapterRepo) FindByID(ctx context.Context, chapterID string) (*novel.Chapter, error) {
	records, err := r.store.chapters.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, ch := range records {
		if ch.ID == chapterID {
			return ch, nil
		}
	}
	return nil, fmt.Errorf("chapter %s: %w", chapterID, ErrNotFound)
}

// FindByNovelID 查询某小说的章节（按序号升序）
func (r *ChapterRepo) FindByNovelID(ctx context.Context, novelID string) ([]*novel.Chapter, error) {
	records, err := r.store.chapters.read(ctx)
	if err != nil {
		return nil, err
	}
	chapters := make([]*novel.Chapter, 0)
	for _, ch := range records {
		if ch.NovelID == novelID {
			chapters = append(chapters, ch)
		}
	}
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].ChapterNumber < chapters[j].ChapterNumber
	})
	return chapters, nil
}

// FindByNumber 按小说与序号查询章节
func (r *ChapterRepo) FindByNumber(ctx context.Context, novelID string, number int) (*novel.Chapter, error) {
	records, err := r.store.chapters.read(ctx)
	if err != nil {
		return nil, err
	}
	for _, ch := range records {
		if ch.NovelID == novelID && ch.ChapterNumber == number {
			return ch, nil
		}
	}
	return nil, fmt.Errorf("chapter %d of novel %s: %w", number, novelID, ErrNotFound)
}

// Update 按 id 整体替换章节，重算字数并更新项目汇总
// 序号必须 >=1，novel_id 必须指向已存在的项目；序号唯一性不在此处校验，调整序号请用 Reposition。
func (r *ChapterRepo) Update(ctx context.Context, ch *novel.Chapter) error {
	if ch.ChapterNumber < 1 {
		return fmt.Errorf("chapter_number %d: %w", ch.ChapterNumber, ErrInvalid)
	}
	if _, err := r.store.Projects().FindByID(ctx, ch.NovelID); err != nil {
		return err
	}

	var previousNovel string
	err := r.store.chapters.mutate(ctx, func(records []*novel.Chapter) ([]*novel.Chapter, bool, error) {
		for i, existing := range records {
			if existing.ID != ch.ID {
				continue
			}
			previousNovel = existing.NovelID
			ch.CreatedAt = existing.CreatedAt
			ch.UpdatedAt = r.store.now()
			ch.RecountWords()
			records[i] = ch.Clone()
			return records, true, nil
		}
		return nil, false, fmt.Errorf("chapter %s: %w", ch.ID, ErrNotFound)
	})
	if err != nil {
		return err
	}
	if previousNovel != ch.NovelID {
		if _, err := r.recomputeRollups(ctx, previousNovel); err != nil {
			return &RollupError{Chapter: ch, Err: err}
		}
	}
	return r.rollup(ctx, ch)
}

// Reposition 调整章节序号
// 目标序号越界或已被同一小说的其他章节占用时返回 ErrConflict，不做交换。
// 标题仍是旧序号的默认标题（或为空）时按新序号重新生成，自定义标题保持不变。
func (r *ChapterRepo) Reposition(ctx context.Context, chapterID string, position int) (*novel.Chapter, error) {
	if position < MinChapterPosition || position > MaxChapterPosition {
		return nil, fmt.Errorf("position %d out of range [%d,%d]: %w", position, MinChapterPosition, MaxChapterPosition, ErrConflict)
	}

	var moved *novel.Chapter
	err := r.store.chapters.mutate(ctx, func(records []*novel.Chapter) ([]*novel.Chapter, bool, error) {
		var target *novel.Chapter
		for _, ch := range records {
			if ch.ID == chapterID {
				target = ch
				break
			}
		}
		if target == nil {
			return nil, false, fmt.Errorf("chapter %s: %w", chapterID, ErrNotFound)
		}
		if target.ChapterNumber == position {
			moved = target.Clone()
			return nil, false, nil
		}
		for _, ch := range records {
			if ch.ID != chapterID && ch.NovelID == target.NovelID && ch.ChapterNumber == position {
				return nil, false, fmt.Errorf("position %d of novel %s is occupied by %s: %w", position, target.NovelID, ch.ID, ErrConflict)
			}
		}

		if target.HasDefaultTitle() {
			title := novel.DefaultChapterTitle(position)
			target.Title = &title
		}
		target.ChapterNumber = position
		target.UpdatedAt = r.store.now()
		moved = target.Clone()
		return records, true, nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// Delete 删除单个章节并更新项目汇总
func (r *ChapterRepo) Delete(ctx context.Context, chapterID string) (bool, error) {
	var removed *novel.Chapter
	err := r.store.chapters.mutate(ctx, func(records []*novel.Chapter) ([]*novel.Chapter, bool, error) {
		kept := records[:0]
		for _, ch := range records {
			if ch.ID == chapterID {
				removed = ch
				continue
			}
			kept = append(kept, ch)
		}
		return kept, removed != nil, nil
	})
	if err != nil || removed == nil {
		return false, err
	}
	if _, err := r.recomputeRollups(ctx, removed.NovelID); err != nil {
		return true, &RollupError{Chapter: removed, Err: err}
	}
	return true, nil
}

// DeleteByNovelID 删除某小说的全部章节，返回删除数量
func (r *ChapterRepo) DeleteByNovelID(ctx context.Context, novelID string) (int, error) {
	deleted := 0
	err := r.store.chapters.mutate(ctx, func(records []*novel.Chapter) ([]*novel.Chapter, bool, error) {
		kept := records[:0]
		for _, ch := range records {
			if ch.NovelID == novelID {
				deleted++
				continue
			}
			kept = append(kept, ch)
		}
		return kept, deleted > 0, nil
	})
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		if _, err := r.recomputeRollups(ctx, novelID); err != nil {
			return deleted, fmt.Errorf("%w: %w", ErrRollupStale, err)
		}
	}
	return deleted, nil
}

// ListAll 按文件顺序返回全部章节
func (r *ChapterRepo) ListAll(ctx context.Context) ([]*novel.Chapter, error) {
	return r.store.chapters.read(ctx)
}

// rollup 重算章节所属项目的汇总，失败时包装为 *RollupError
// 项目在章节写入期间被删除时撤回该章节并返回 ErrNotFound。
func (r *ChapterRepo) rollup(ctx context.Context, ch *novel.Chapter) error {
	found, err := r.recomputeRollups(ctx, ch.NovelID)
	if err != nil {
		return &RollupError{Chapter: ch, Err: err}
	}
	if !found {
		return r.discardOrphan(ctx, ch)
	}
	return nil
}

// discardOrphan 删除指向不存在项目的章节
func (r *ChapterRepo) discardOrphan(ctx context.Context, ch *novel.Chapter) error {
	err := r.store.chapters.mutate(ctx, func(records []*novel.Chapter) ([]*novel.Chapter, bool, error) {
		kept := records[:0]
		removed := false
		for _, existing := range records {
			if existing.ID == ch.ID {
				removed = true
				continue
			}
			kept = append(kept, existing)
		}
		return kept, removed, nil
	})
	if err != nil {
		return fmt.Errorf("discard orphan chapter %s: %w", ch.ID, err)
	}
	return fmt.Errorf("novel %s: %w", ch.NovelID, ErrNotFound)
}

// recomputeRollups 从章节集合重新汇总并写回项目，返回项目是否存在
// 先读章节（章节锁）再写项目（项目锁），两把集合锁不同时持有。
func (r *ChapterRepo) recomputeRollups(ctx context.Context, novelID string) (bool, error) {
	r.store.rollupMu.Lock()
	defer r.store.rollupMu.Unlock()

	chapters, err := r.FindByNovelID(ctx, novelID)
	if err != nil {
		return false, err
	}
	count, words := Totals(chapters)
	return r.store.Projects().applyRollup(ctx, novelID, count, words)
}

// Totals 汇总章节数与总字数
func Totals(chapters []*novel.Chapter) (count, words int) {
	for _, ch := range chapters {
		count++
		words += ch.WordCount
	}
	return count, words
}

// IsRollupStale 判断错误是否仅为汇总失败
func IsRollupStale(err error) bool {
	return errors.Is(err, ErrRollupStale)
}
