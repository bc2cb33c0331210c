package storagefactory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"conovel/internal/config"
	"conovel/internal/pkg/storage"
)

func TestNewStorage(t *testing.T) {
	Convey("NewStorage 按类型创建存储", t, func() {
		ctx := context.Background()

		Convey("local 缺少配置时报错", func() {
			s, err := NewStorage(ctx, &config.StorageConfig{Type: "local"})
			So(err, ShouldNotBeNil)
			So(s, ShouldBeNil)
		})

		Convey("oss 缺少配置时报错", func() {
			_, err := NewStorage(ctx, &config.StorageConfig{Type: "oss"})
			So(err, ShouldNotBeNil)
		})

		Convey("不支持的类型", func() {
			_, err := NewStorage(ctx, &config.StorageConfig{Type: "s3"})
			So(err.Error(), ShouldContainSubstring, "unsupported storage type")
		})

		Convey("local 上传、列出、下载", func() {
			s, err := NewStorage(ctx, &config.StorageConfig{
				Type:  "local",
				Local: &config.LocalConfig{BasePath: t.TempDir()},
			})
			So(err, ShouldBeNil)
			So(s.GetStorageType(), ShouldEqual, "local")

			So(s.Upload(ctx, "backups/b/novels.json", strings.NewReader("[]"), "application/json"), ShouldBeNil)
			So(s.Upload(ctx, "backups/a/novels.json", strings.NewReader(`[{"id":"1"}]`), "application/json"), ShouldBeNil)
			So(s.Upload(ctx, "other/x.json", strings.NewReader("{}"), "application/json"), ShouldBeNil)

			objects, err := s.List(ctx, "backups/")
			So(err, ShouldBeNil)
			So(len(objects), ShouldEqual, 2)
			So(objects[0].Key, ShouldEqual, "backups/a/novels.json")
			So(objects[0].Size, ShouldEqual, int64(12))

			ok, err := s.Exists(ctx, "backups/a/novels.json")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			rc, err := s.Download(ctx, "backups/a/novels.json")
			So(err, ShouldBeNil)
			data, _ := io.ReadAll(rc)
			rc.Close()
			So(string(data), ShouldEqual, `[{"id":"1"}]`)

			_, err = s.Download(ctx, "backups/missing.json")
			So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)
		})
	})
}
