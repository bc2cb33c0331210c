// Package backup 把数据目录下的集合文件快照到对象存储，并可从快照恢复。
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"conovel/internal/pkg/jsonfile"
	"conovel/internal/pkg/storage"
	novelrepo "conovel/internal/repository/novel"
)

// SnapshotLayout 快照名的时间格式（毫秒精度）
const SnapshotLayout = "20060102-150405.000"

var (
	// ErrSnapshotNotFound 快照不存在或不完整
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrSnapshotExists 同名快照已存在，不覆盖
	ErrSnapshotExists = errors.New("snapshot already exists")
)

// BackupService 备份服务接口
type BackupService interface {
	// Backup 上传全部集合文件，返回快照名
	Backup(ctx context.Context) (string, error)
	// Restore 用快照覆盖本地集合文件
	Restore(ctx context.Context, snapshot string) error
	// Snapshots 已有快照名，按时间升序
	Snapshots(ctx context.Context) ([]string, error)
}

type backupService struct {
	store   storage.Storage
	dataDir string
	prefix  string
	now     func() time.Time
}

// NewBackupService 创建备份服务
func NewBackupService(store storage.Storage, dataDir, prefix string) BackupService {
	return &backupService{
		store:   store,
		dataDir: dataDir,
		prefix:  strings.Trim(prefix, "/"),
		now:     time.Now,
	}
}

func (s *backupService) key(snapshot, file string) string {
	if s.prefix == "" {
		return path.Join(snapshot, file)
	}
	return path.Join(s.prefix, snapshot, file)
}

func (s *backupService) Backup(ctx context.Context) (string, error) {
	snapshot := s.now().UTC().Format(SnapshotLayout)
	for _, file := range novelrepo.CollectionFiles {
		exists, err := s.store.Exists(ctx, s.key(snapshot, file))
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("%s: %w", snapshot, ErrSnapshotExists)
		}
	}

	// 集合文件总是整体 rename 替换，单个文件读到的是某次完整写入；
	// 四个文件之间不保证同一时刻，恢复前应停止服务。
	for _, file := range novelrepo.CollectionFiles {
		data, err := os.ReadFile(filepath.Join(s.dataDir, file))
		if errors.Is(err, os.ErrNotExist) {
			data = []byte("[]")
		} else if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		if err := s.store.Upload(ctx, s.key(snapshot, file), bytes.NewReader(data), "application/json"); err != nil {
			return "", err
		}
	}
	log.Info().Str("snapshot", snapshot).Str("storage", s.store.GetStorageType()).Msg("backup uploaded")
	return snapshot, nil
}

func (s *backupService) Restore(ctx context.Context, snapshot string) error {
	if _, err := time.Parse(SnapshotLayout, snapshot); err != nil {
		return fmt.Errorf("invalid snapshot name %q: %w", snapshot, err)
	}

	// 先全部下载，任何一个缺失都不改动本地文件
	contents := make(map[string][]byte, len(novelrepo.CollectionFiles))
	for _, file := range novelrepo.CollectionFiles {
		data, err := s.download(ctx, s.key(snapshot, file))
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s/%s: %w", snapshot, file, ErrSnapshotNotFound)
		}
		if err != nil {
			return err
		}
		contents[file] = data
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	for _, file := range novelrepo.CollectionFiles {
		if err := jsonfile.WriteFile(filepath.Join(s.dataDir, file), contents[file]); err != nil {
			return err
		}
	}
	log.Info().Str("snapshot", snapshot).Msg("backup restored")
	return nil
}

func (s *backupService) download(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *backupService) Snapshots(ctx context.Context) ([]string, error) {
	listPrefix := ""
	if s.prefix != "" {
		listPrefix = s.prefix + "/"
	}
	objects, err := s.store.List(ctx, listPrefix)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, obj := range objects {
		rest := strings.TrimPrefix(obj.Key, listPrefix)
		snapshot, _, ok := strings.Cut(rest, "/")
		if !ok {
			continue
		}
		if _, err := time.Parse(SnapshotLayout, snapshot); err == nil {
			seen[snapshot] = true
		}
	}

	snapshots := make([]string, 0, len(seen))
	for name := range seen {
		snapshots = append(snapshots, name)
	}
	sort.Strings(snapshots)
	return snapshots, nil
}
