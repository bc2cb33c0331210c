package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"conovel/internal/pkg/storage/local"
	novelrepo "conovel/internal/repository/novel"
)

func TestBackupService(t *testing.T) {
	Convey("备份与恢复集合文件", t, func() {
		ctx := context.Background()
		dataDir := t.TempDir()
		store, err := local.NewLocalStorage(t.TempDir())
		So(err, ShouldBeNil)

		svc := NewBackupService(store, dataDir, "/backups/").(*backupService)
		svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

		novels := filepath.Join(dataDir, novelrepo.ProjectsFile)
		So(os.WriteFile(novels, []byte(`[{"id":"n1"}]`), 0o644), ShouldBeNil)

		snapshot, err := svc.Backup(ctx)
		So(err, ShouldBeNil)
		So(snapshot, ShouldEqual, "20240601-120000.000")

		Convey("缺失的集合文件以空数组备份", func() {
			ok, err := store.Exists(ctx, "backups/20240601-120000.000/"+novelrepo.CacheFile)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("列出快照", func() {
			svc.now = func() time.Time { return time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC) }
			_, err := svc.Backup(ctx)
			So(err, ShouldBeNil)

			snapshots, err := svc.Snapshots(ctx)
			So(err, ShouldBeNil)
			So(snapshots, ShouldResemble, []string{"20240601-120000.000", "20240602-080000.000"})
		})

		Convey("恢复覆盖本地文件", func() {
			So(os.WriteFile(novels, []byte(`[]`), 0o644), ShouldBeNil)
			So(svc.Restore(ctx, snapshot), ShouldBeNil)

			data, err := os.ReadFile(novels)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `[{"id":"n1"}]`)

			chapters, err := os.ReadFile(filepath.Join(dataDir, novelrepo.ChaptersFile))
			So(err, ShouldBeNil)
			So(string(chapters), ShouldEqual, "[]")
		})

		Convey("不存在的快照不改动本地文件", func() {
			err := svc.Restore(ctx, "20230101-000000.000")
			So(errors.Is(err, ErrSnapshotNotFound), ShouldBeTrue)

			data, _ := os.ReadFile(novels)
			So(string(data), ShouldEqual, `[{"id":"n1"}]`)
		})

		Convey("同一时刻再次备份不覆盖已有快照", func() {
			So(os.WriteFile(novels, []byte(`[]`), 0o644), ShouldBeNil)
			_, err := svc.Backup(ctx)
			So(errors.Is(err, ErrSnapshotExists), ShouldBeTrue)

			So(svc.Restore(ctx, snapshot), ShouldBeNil)
			data, _ := os.ReadFile(novels)
			So(string(data), ShouldEqual, `[{"id":"n1"}]`)
		})

		Convey("毫秒不同的两次备份各自保留", func() {
			svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, int(5*time.Millisecond), time.UTC) }
			second, err := svc.Backup(ctx)
			So(err, ShouldBeNil)
			So(second, ShouldEqual, "20240601-120000.005")

			snapshots, _ := svc.Snapshots(ctx)
			So(len(snapshots), ShouldEqual, 2)
		})

		Convey("快照名格式错误", func() {
			So(svc.Restore(ctx, "../etc"), ShouldNotBeNil)
		})
	})
}
