package novel

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseGenre(t *testing.T) {
	Convey("ParseGenre 接受中文取值与枚举名", t, func() {
		g, ok := ParseGenre("武侠")
		So(ok, ShouldBeTrue)
		So(g, ShouldEqual, GenreWuxia)

		g, ok = ParseGenre("scifi")
		So(ok, ShouldBeTrue)
		So(g, ShouldEqual, GenreSciFi)

		_, ok = ParseGenre("仙侠")
		So(ok, ShouldBeFalse)

		Convey("无法识别时回退为玄幻", func() {
			So(ParseGenreOrDefault("unknown"), ShouldEqual, GenreFantasy)
			So(ParseGenreOrDefault(" 都市 "), ShouldEqual, GenreUrban)
		})
	})
}

func TestChapterWordCount(t *testing.T) {
	Convey("字数统计不含空格与换行", t, func() {
		So(CountWords(""), ShouldEqual, 0)
		So(CountWords("天地 玄黄\n宇宙洪荒"), ShouldEqual, 8)
		So(CountWords("a b\tc"), ShouldEqual, 4)

		ch := &Chapter{Content: StringPtr("第一句。\n第二句。")}
		ch.RecountWords()
		So(ch.WordCount, ShouldEqual, 8)

		ch.Content = nil
		ch.RecountWords()
		So(ch.WordCount, ShouldEqual, 0)
	})

	Convey("默认标题判断", t, func() {
		ch := &Chapter{ChapterNumber: 3}
		So(ch.HasDefaultTitle(), ShouldBeTrue)
		ch.Title = StringPtr("第3章")
		So(ch.HasDefaultTitle(), ShouldBeTrue)
		ch.Title = StringPtr("风起")
		So(ch.HasDefaultTitle(), ShouldBeFalse)
		So(DefaultChapterTitle(12), ShouldEqual, "第12章")
	})

	Convey("Preview 按字符截断", t, func() {
		ch := &Chapter{Content: StringPtr("一二三四五")}
		So(ch.Preview(3), ShouldEqual, "一二三...")
		So(ch.Preview(10), ShouldEqual, "一二三四五")
	})
}

func TestSessionSteps(t *testing.T) {
	Convey("会话步骤在边界处保持不变", t, func() {
		now := time.Now()
		s := NewSession("novel-1")
		So(s.CurrentStep, ShouldEqual, StepBasicSetup)

		s.PrevStep(now)
		So(s.CurrentStep, ShouldEqual, StepBasicSetup)
		So(s.LastActivity, ShouldEqual, now)

		for i := 0; i < 10; i++ {
			s.NextStep(now)
		}
		So(s.CurrentStep, ShouldEqual, StepChapterGeneration)

		s.PrevStep(now)
		So(s.CurrentStep, ShouldEqual, StepContentReview)

		later := now.Add(time.Minute)
		s.SetData(map[string]any{"title": "长夜"}, later)
		So(s.SessionData["title"], ShouldEqual, "长夜")
		So(s.UpdatedAt, ShouldEqual, later)
	})
}

func TestCacheKey(t *testing.T) {
	Convey("CacheKey 与参数顺序无关，与内容类型相关", t, func() {
		a := CacheKey("outline", map[string]string{"genre": "玄幻", "theme": "X"})
		b := CacheKey("outline", map[string]string{"theme": "X", "genre": "玄幻"})
		c := CacheKey("title", map[string]string{"genre": "玄幻", "theme": "X"})

		So(a, ShouldEqual, b)
		So(a, ShouldNotEqual, c)
		So(len(a), ShouldEqual, 32)
	})

	Convey("IncrementHit 累加命中次数", t, func() {
		now := time.Now()
		entry := &GenerationCache{HitCount: 1}
		entry.IncrementHit(now)
		So(entry.HitCount, ShouldEqual, 2)
		So(entry.LastHit, ShouldEqual, now)
	})
}

func TestProjectJSON(t *testing.T) {
	Convey("项目序列化使用中文枚举值，可选字段为 null", t, func() {
		p := NewProject(GenreRomance, "重逢")
		raw, err := json.Marshal(p)
		So(err, ShouldBeNil)
		So(string(raw), ShouldContainSubstring, `"genre":"言情"`)
		So(string(raw), ShouldContainSubstring, `"title":null`)
		So(string(raw), ShouldContainSubstring, `"generated_titles":[]`)

		p.AddGeneratedTitle("长夜")
		p.AddGeneratedTitle("长夜")
		So(p.GeneratedTitles, ShouldResemble, []string{"长夜"})
		So(p.DisplayTitle(), ShouldEqual, "言情小说")

		cp := p.Clone()
		cp.GeneratedTitles[0] = "改"
		So(p.GeneratedTitles[0], ShouldEqual, "长夜")
	})
}
