package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func TestCodec(t *testing.T) {
	Convey("Codec 读写单个集合文件", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "items.json")
		codec := New[item](path, time.Second)

		Convey("Init 写入空集合且不覆盖已有文件", func() {
			So(codec.Init(), ShouldBeNil)
			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "[]")

			So(os.WriteFile(path, []byte(`[{"id":"a"}]`), 0o644), ShouldBeNil)
			So(codec.Init(), ShouldBeNil)
			data, _ = os.ReadFile(path)
			So(string(data), ShouldEqual, `[{"id":"a"}]`)
		})

		Convey("文件缺失时返回空集合", func() {
			records, err := codec.Load(ctx)
			So(err, ShouldBeNil)
			So(records, ShouldNotBeNil)
			So(records, ShouldBeEmpty)
		})

		Convey("无法解析时返回空集合并保留原文件副本", func() {
			So(os.WriteFile(path, []byte("{not json"), 0o644), ShouldBeNil)
			records, err := codec.Load(ctx)
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)

			preserved, err := os.ReadFile(path + ".corrupt")
			So(err, ShouldBeNil)
			So(string(preserved), ShouldEqual, "{not json")
		})

		Convey("保存后读取保持顺序与时间戳", func() {
			created := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
			in := []*item{
				{ID: "2", Name: "第二", CreatedAt: created},
				{ID: "1", Name: "第一", CreatedAt: created.Add(time.Hour)},
			}
			So(codec.Save(ctx, in), ShouldBeNil)

			out, err := codec.Load(ctx)
			So(err, ShouldBeNil)
			So(len(out), ShouldEqual, 2)
			So(out[0].ID, ShouldEqual, "2")
			So(out[1].Name, ShouldEqual, "第一")
			So(out[1].CreatedAt.Equal(created.Add(time.Hour)), ShouldBeTrue)

			raw, _ := os.ReadFile(path)
			So(string(raw), ShouldContainSubstring, "2024-05-01T08:30:00Z")
			So(string(raw), ShouldContainSubstring, "第二")
			So(strings.HasPrefix(string(raw), "[\n  {"), ShouldBeTrue)

			leftovers, _ := filepath.Glob(path + ".*.tmp")
			So(leftovers, ShouldBeEmpty)
		})

		Convey("保存 nil 写入空数组", func() {
			So(codec.Save(ctx, nil), ShouldBeNil)
			raw, _ := os.ReadFile(path)
			So(strings.TrimSpace(string(raw)), ShouldEqual, "[]")
		})

		Convey("超时的写入不会落盘", func() {
			So(codec.Save(ctx, []*item{{ID: "kept"}}), ShouldBeNil)

			slow := New[item](path, time.Nanosecond)
			for i := 0; i < 20; i++ {
				err := slow.Save(ctx, []*item{{ID: "late"}})
				So(errors.Is(err, ErrTimeout), ShouldBeTrue)
			}

			raw, _ := os.ReadFile(path)
			So(string(raw), ShouldContainSubstring, `"kept"`)
			So(string(raw), ShouldNotContainSubstring, `"late"`)

			leftovers, _ := filepath.Glob(path + ".*.tmp")
			So(leftovers, ShouldBeEmpty)
		})

		Convey("超时的读取返回 ErrTimeout", func() {
			So(codec.Init(), ShouldBeNil)
			_, err := New[item](path, time.Nanosecond).Load(ctx)
			So(errors.Is(err, ErrTimeout), ShouldBeTrue)
		})

		Convey("已取消的 ctx 直接返回错误", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := codec.Load(cctx)
			So(err, ShouldEqual, context.Canceled)
			So(codec.Save(cctx, nil), ShouldEqual, context.Canceled)
		})
	})
}
