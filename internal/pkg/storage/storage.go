package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound 对象不存在
var ErrNotFound = errors.New("object not found")

// Storage 备份对象存储接口
type Storage interface {
	// Upload 上传对象
	Upload(ctx context.Context, key string, data io.Reader, contentType string) error

	// Download 下载对象，不存在时返回 ErrNotFound
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists 检查对象是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// List 列出指定前缀下的对象，按 key 升序
	List(ctx context.Context, prefix string) ([]*ObjectInfo, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// ObjectInfo 对象信息
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)
