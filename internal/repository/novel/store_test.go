package novel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"conovel/internal/model/novel"
)

func newTestStore(t *testing.T) *Store {
	store := New(t.TempDir(), time.Second)
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func mustProject(ctx context.Context, store *Store, genre novel.Genre, theme string) *novel.Project {
	p := novel.NewProject(genre, theme)
	So(store.Projects().Create(ctx, p), ShouldBeNil)
	return p
}

func mustChapter(ctx context.Context, store *Store, novelID string, number int, content string) *novel.Chapter {
	ch := &novel.Chapter{NovelID: novelID, ChapterNumber: number, Content: novel.StringPtr(content)}
	So(store.Chapters().Create(ctx, ch), ShouldBeNil)
	return ch
}

func TestStore_Init(t *testing.T) {
	Convey("Init 为四个集合写入空文件", t, func() {
		dir := filepath.Join(t.TempDir(), "data")
		store := New(dir, 0)
		So(store.Init(), ShouldBeNil)
		for _, name := range CollectionFiles {
			raw, err := os.ReadFile(filepath.Join(dir, name))
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, "[]")
		}
	})
}

func TestProjectRepo(t *testing.T) {
	Convey("项目仓库", t, func() {
		ctx := context.Background()
		store := newTestStore(t)
		repo := store.Projects()

		Convey("创建后读取除服务端字段外保持一致", func() {
			p := novel.NewProject(novel.GenreWuxia, "江湖")
			p.Title = novel.StringPtr("剑来")
			p.UserEdits["note"] = "草稿"
			So(repo.Create(ctx, p), ShouldBeNil)
			So(p.ID, ShouldNotBeEmpty)
			So(p.CreatedAt.IsZero(), ShouldBeFalse)

			got, err := repo.FindByID(ctx, p.ID)
			So(err, ShouldBeNil)
			So(got.TitleText(), ShouldEqual, "剑来")
			So(got.Genre, ShouldEqual, novel.GenreWuxia)
			So(got.Theme, ShouldEqual, "江湖")
			So(got.Status, ShouldEqual, novel.ProjectStatusDraft)
			So(got.UserEdits["note"], ShouldEqual, "草稿")

			again, err := repo.FindByID(ctx, p.ID)
			So(err, ShouldBeNil)
			So(again, ShouldResemble, got)
		})

		Convey("主题为空时拒绝创建", func() {
			err := repo.Create(ctx, novel.NewProject(novel.GenreUrban, "  "))
			So(errors.Is(err, ErrInvalid), ShouldBeTrue)
		})

		Convey("查询不存在的项目返回 ErrNotFound", func() {
			_, err := repo.FindByID(ctx, "missing")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			err = repo.Update(ctx, &novel.Project{ID: "missing", Theme: "x"})
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("List 按 updated_at 倒序并受 limit 约束", func() {
			base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			var ids []string
			for i := 0; i < 3; i++ {
				at := base.Add(time.Duration(i) * time.Hour)
				store.SetClock(func() time.Time { return at })
				ids = append(ids, mustProject(ctx, store, novel.GenreFantasy, "主题").ID)
			}

			list, err := repo.List(ctx, 2)
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 2)
			So(list[0].ID, ShouldEqual, ids[2])
			So(list[1].ID, ShouldEqual, ids[1])

			all, err := repo.List(ctx, 0)
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 3)
		})

		Convey("Update 不覆盖汇总字段", func() {
			p := mustProject(ctx, store, novel.GenreFantasy, "主题")
			mustChapter(ctx, store, p.ID, 1, "一二三")

			stale := p.Clone()
			stale.TotalWordCount = 999
			stale.Status = novel.ProjectStatusInProgress
			So(repo.Update(ctx, stale), ShouldBeNil)

			got, _ := repo.FindByID(ctx, p.ID)
			So(got.Status, ShouldEqual, novel.ProjectStatusInProgress)
			So(got.TotalWordCount, ShouldEqual, 3)
			So(got.ChapterCount, ShouldEqual, 1)
		})

		Convey("按标题与主题精确匹配", func() {
			p := novel.NewProject(novel.GenreFantasy, "修仙")
			p.Title = novel.StringPtr("问道")
			So(repo.Create(ctx, p), ShouldBeNil)

			got, err := repo.FindByTitleAndTheme(ctx, "问道", "修仙")
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, p.ID)

			_, err = repo.FindByTitleAndTheme(ctx, "问道", "都市")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestProjectRepo_DeleteCascade(t *testing.T) {
	Convey("删除项目级联删除章节，不删除会话", t, func() {
		ctx := context.Background()
		store := newTestStore(t)

		doomed := mustProject(ctx, store, novel.GenreFantasy, "甲")
		other := mustProject(ctx, store, novel.GenreUrban, "乙")
		mustChapter(ctx, store, doomed.ID, 1, "a")
		mustChapter(ctx, store, doomed.ID, 2, "b")
		kept := mustChapter(ctx, store, other.ID, 1, "c")

		session := novel.NewSession(doomed.ID)
		So(store.Sessions().Create(ctx, session), ShouldBeNil)

		removed, err := store.Projects().Delete(ctx, doomed.ID)
		So(err, ShouldBeNil)
		So(removed, ShouldBeTrue)

		_, err = store.Projects().FindByID(ctx, doomed.ID)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)

		chapters, err := store.Chapters().FindByNovelID(ctx, doomed.ID)
		So(err, ShouldBeNil)
		So(chapters, ShouldBeEmpty)

		survivor, err := store.Chapters().FindByID(ctx, kept.ID)
		So(err, ShouldBeNil)
		So(survivor.NovelID, ShouldEqual, other.ID)

		orphan, err := store.Sessions().FindByID(ctx, session.ID)
		So(err, ShouldBeNil)
		So(orphan.NovelID, ShouldEqual, doomed.ID)

		Convey("重复删除返回 false", func() {
			removed, err := store.Projects().Delete(ctx, doomed.ID)
			So(err, ShouldBeNil)
			So(removed, ShouldBeFalse)
		})
	})
}

func TestChapterRepo(t *testing.T) {
	Convey("章节仓库", t, func() {
		ctx := context.Background()
		store := newTestStore(t)
		repo := store.Chapters()
		p := mustProject(ctx, store, novel.GenreFantasy, "主题")

		Convey("创建时计算字数并更新项目汇总", func() {
			mustChapter(ctx, store, p.ID, 1, "天地 玄黄\n宇宙")
			ch := mustChapter(ctx, store, p.ID, 2, "洪荒")
			So(ch.WordCount, ShouldEqual, 2)

			got, _ := store.Projects().FindByID(ctx, p.ID)
			So(got.ChapterCount, ShouldEqual, 2)
			So(got.TotalWordCount, ShouldEqual, 8)
		})

		Convey("同一小说内序号重复时拒绝", func() {
			mustChapter(ctx, store, p.ID, 1, "a")
			err := repo.Create(ctx, &novel.Chapter{NovelID: p.ID, ChapterNumber: 1})
			So(errors.Is(err, ErrConflict), ShouldBeTrue)

			chapters, _ := repo.FindByNovelID(ctx, p.ID)
			So(len(chapters), ShouldEqual, 1)
		})

		Convey("序号非法或项目不存在时拒绝", func() {
			err := repo.Create(ctx, &novel.Chapter{NovelID: p.ID, ChapterNumber: 0})
			So(errors.Is(err, ErrInvalid), ShouldBeTrue)

			err = repo.Create(ctx, &novel.Chapter{NovelID: "missing", ChapterNumber: 1})
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("按小说查询时序号升序", func() {
			mustChapter(ctx, store, p.ID, 3, "c")
			mustChapter(ctx, store, p.ID, 1, "a")
			mustChapter(ctx, store, p.ID, 2, "b")

			chapters, err := repo.FindByNovelID(ctx, p.ID)
			So(err, ShouldBeNil)
			So(len(chapters), ShouldEqual, 3)
			for i, ch := range chapters {
				So(ch.ChapterNumber, ShouldEqual, i+1)
			}
		})

		Convey("Update 忽略调用方给出的字数并重算", func() {
			ch := mustChapter(ctx, store, p.ID, 1, "一二")
			ch.Content = novel.StringPtr("一二三四五")
			ch.WordCount = 100
			So(repo.Update(ctx, ch), ShouldBeNil)

			got, _ := repo.FindByID(ctx, ch.ID)
			So(got.WordCount, ShouldEqual, 5)

			proj, _ := store.Projects().FindByID(ctx, p.ID)
			So(proj.TotalWordCount, ShouldEqual, 5)
		})

		Convey("Update 拒绝指向不存在项目或非法序号的章节", func() {
			ch := mustChapter(ctx, store, p.ID, 1, "一二")

			moved := ch.Clone()
			moved.NovelID = "ghost-project"
			So(errors.Is(repo.Update(ctx, moved), ErrNotFound), ShouldBeTrue)

			zero := ch.Clone()
			zero.ChapterNumber = 0
			So(errors.Is(repo.Update(ctx, zero), ErrInvalid), ShouldBeTrue)

			got, _ := repo.FindByID(ctx, ch.ID)
			So(got.NovelID, ShouldEqual, p.ID)
			So(got.ChapterNumber, ShouldEqual, 1)
		})

		Convey("章节写入后项目已被删除时撤回章节", func() {
			orphan := &novel.Chapter{ID: "orphan", NovelID: p.ID, ChapterNumber: 1}
			So(store.chapters.mutate(ctx, func(records []*novel.Chapter) ([]*novel.Chapter, bool, error) {
				return append(records, orphan.Clone()), true, nil
			}), ShouldBeNil)
			// 只删除项目记录，模拟删除发生在存在性检查与章节写入之间
			So(store.projects.mutate(ctx, func(records []*novel.Project) ([]*novel.Project, bool, error) {
				return records[:0], true, nil
			}), ShouldBeNil)

			err := repo.rollup(ctx, orphan)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(IsRollupStale(err), ShouldBeFalse)

			_, err = repo.FindByID(ctx, "orphan")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Delete 删除章节后汇总同步", func() {
			mustChapter(ctx, store, p.ID, 1, "一二")
			ch := mustChapter(ctx, store, p.ID, 2, "三四五")

			removed, err := repo.Delete(ctx, ch.ID)
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)

			proj, _ := store.Projects().FindByID(ctx, p.ID)
			So(proj.ChapterCount, ShouldEqual, 1)
			So(proj.TotalWordCount, ShouldEqual, 2)
		})

		Convey("两个章节字数 100 与 250 时项目总字数为 350", func() {
			mustChapter(ctx, store, p.ID, 1, repeat("字", 100))
			mustChapter(ctx, store, p.ID, 2, repeat("字", 250))

			chapters, _ := repo.FindByNovelID(ctx, p.ID)
			count, words := Totals(chapters)
			So(count, ShouldEqual, 2)
			So(words, ShouldEqual, 350)

			proj, _ := store.Projects().FindByID(ctx, p.ID)
			So(proj.TotalWordCount, ShouldEqual, 350)
		})
	})
}

func TestChapterRepo_Reposition(t *testing.T) {
	Convey("调整章节序号", t, func() {
		ctx := context.Background()
		store := newTestStore(t)
		repo := store.Chapters()
		p := mustProject(ctx, store, novel.GenreFantasy, "主题")

		first := mustChapter(ctx, store, p.ID, 1, "a")
		second := mustChapter(ctx, store, p.ID, 2, "b")
		mustChapter(ctx, store, p.ID, 3, "c")

		Convey("目标序号被占用时失败且不改变任何章节", func() {
			_, err := repo.Reposition(ctx, first.ID, 2)
			So(errors.Is(err, ErrConflict), ShouldBeTrue)

			got, _ := repo.FindByID(ctx, first.ID)
			So(got.ChapterNumber, ShouldEqual, 1)
			other, _ := repo.FindByID(ctx, second.ID)
			So(other.ChapterNumber, ShouldEqual, 2)
		})

		Convey("序号越界时失败", func() {
			_, err := repo.Reposition(ctx, first.ID, 0)
			So(errors.Is(err, ErrConflict), ShouldBeTrue)
			_, err = repo.Reposition(ctx, first.ID, 100)
			So(errors.Is(err, ErrConflict), ShouldBeTrue)
		})

		Convey("章节不存在时返回 ErrNotFound", func() {
			_, err := repo.Reposition(ctx, "missing", 5)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("默认标题随序号重新生成", func() {
			first.Title = novel.StringPtr("第1章")
			So(repo.Update(ctx, first), ShouldBeNil)

			moved, err := repo.Reposition(ctx, first.ID, 7)
			So(err, ShouldBeNil)
			So(moved.ChapterNumber, ShouldEqual, 7)
			So(moved.TitleText(), ShouldEqual, "第7章")
		})

		Convey("自定义标题保持不变", func() {
			second.Title = novel.StringPtr("风起")
			So(repo.Update(ctx, second), ShouldBeNil)

			moved, err := repo.Reposition(ctx, second.ID, 9)
			So(err, ShouldBeNil)
			So(moved.TitleText(), ShouldEqual, "风起")

			got, _ := repo.FindByNumber(ctx, p.ID, 9)
			So(got.ID, ShouldEqual, second.ID)
		})

		Convey("不同小说的同一序号不冲突", func() {
			q := mustProject(ctx, store, novel.GenreUrban, "另一个")
			foreign := mustChapter(ctx, store, q.ID, 1, "x")
			moved, err := repo.Reposition(ctx, foreign.ID, 2)
			So(err, ShouldBeNil)
			So(moved.ChapterNumber, ShouldEqual, 2)
		})
	})
}

func TestSessionRepo(t *testing.T) {
	Convey("会话仓库", t, func() {
		ctx := context.Background()
		store := newTestStore(t)
		repo := store.Sessions()
		p := mustProject(ctx, store, novel.GenreFantasy, "主题")

		Convey("项目不存在时拒绝创建", func() {
			err := repo.Create(ctx, novel.NewSession("missing"))
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Update 刷新活动时间", func() {
			created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			store.SetClock(func() time.Time { return created })
			s := novel.NewSession(p.ID)
			So(repo.Create(ctx, s), ShouldBeNil)

			later := created.Add(time.Hour)
			store.SetClock(func() time.Time { return later })
			s.NextStep(later)
			So(repo.Update(ctx, s), ShouldBeNil)

			got, err := repo.FindByID(ctx, s.ID)
			So(err, ShouldBeNil)
			So(got.CurrentStep, ShouldEqual, novel.StepTitleGeneration)
			So(got.LastActivity.Equal(later), ShouldBeTrue)
			So(got.CreatedAt.Equal(created), ShouldBeTrue)
		})

		Convey("停用后不再作为活跃会话返回", func() {
			s := novel.NewSession(p.ID)
			So(repo.Create(ctx, s), ShouldBeNil)

			active, err := repo.FindActiveByNovelID(ctx, p.ID)
			So(err, ShouldBeNil)
			So(active.ID, ShouldEqual, s.ID)

			ok, err := repo.Deactivate(ctx, s.ID)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			_, err = repo.FindActiveByNovelID(ctx, p.ID)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestCacheRepo(t *testing.T) {
	Convey("缓存仓库", t, func() {
		ctx := context.Background()
		store := newTestStore(t)
		repo := store.Caches()
		key := novel.CacheKey(novel.ContentTypeTitle, map[string]string{"genre": "玄幻", "theme": "X"})

		Convey("未命中返回 ErrNotFound", func() {
			_, err := repo.Get(ctx, key)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("每次命中累加 hit_count", func() {
			So(repo.Save(ctx, &novel.GenerationCache{CacheKey: key, ContentType: novel.ContentTypeTitle, GeneratedContent: "长夜"}), ShouldBeNil)

			first, err := repo.Get(ctx, key)
			So(err, ShouldBeNil)
			So(first.HitCount, ShouldEqual, 2)
			So(first.GeneratedContent, ShouldEqual, "长夜")

			second, _ := repo.Get(ctx, key)
			So(second.HitCount, ShouldEqual, 3)
		})

		Convey("相同缓存键再次保存时替换而不重复", func() {
			So(repo.Save(ctx, &novel.GenerationCache{CacheKey: key, GeneratedContent: "旧"}), ShouldBeNil)
			So(repo.Save(ctx, &novel.GenerationCache{CacheKey: key, GeneratedContent: "新"}), ShouldBeNil)

			all, err := repo.ListAll(ctx)
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 1)
			So(all[0].GeneratedContent, ShouldEqual, "新")
		})

		Convey("Cleanup 删除过期条目", func() {
			old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			store.SetClock(func() time.Time { return old })
			So(repo.Save(ctx, &novel.GenerationCache{CacheKey: "old", GeneratedContent: "a"}), ShouldBeNil)

			fresh := old.Add(10 * 24 * time.Hour)
			store.SetClock(func() time.Time { return fresh })
			So(repo.Save(ctx, &novel.GenerationCache{CacheKey: "fresh", GeneratedContent: "b"}), ShouldBeNil)

			deleted, err := repo.Cleanup(ctx, 7*24*time.Hour)
			So(err, ShouldBeNil)
			So(deleted, ShouldEqual, 1)

			all, _ := repo.ListAll(ctx)
			So(len(all), ShouldEqual, 1)
			So(all[0].CacheKey, ShouldEqual, "fresh")
		})
	})
}

func TestStore_ConcurrentWriters(t *testing.T) {
	Convey("并发创建章节不会丢失写入", t, func() {
		ctx := context.Background()
		store := newTestStore(t)
		p := mustProject(ctx, store, novel.GenreFantasy, "主题")

		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for i := 1; i <= 20; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				errs <- store.Chapters().Create(ctx, &novel.Chapter{NovelID: p.ID, ChapterNumber: n, Content: novel.StringPtr("字")})
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			So(err, ShouldBeNil)
		}

		chapters, _ := store.Chapters().FindByNovelID(ctx, p.ID)
		So(len(chapters), ShouldEqual, 20)

		proj, _ := store.Projects().FindByID(ctx, p.ID)
		So(proj.ChapterCount, ShouldEqual, 20)
		So(proj.TotalWordCount, ShouldEqual, 20)
	})
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
