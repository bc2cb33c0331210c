// Package jsonfile 把一个同构记录集合整体映射到单个 JSON 文件。
//
// 读取是宽松的：文件缺失或无法解析时返回空集合；写入总是整文件替换。
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrTimeout 文件读写超时
var ErrTimeout = errors.New("collection file i/o timed out")

// emptyArtifact 空集合的文件内容
var emptyArtifact = []byte("[]")

// Codec 单个集合文件的编解码器
type Codec[T any] struct {
	path    string
	timeout time.Duration
}

// New 创建编解码器，timeout<=0 表示不限制
func New[T any](path string, timeout time.Duration) *Codec[T] {
	return &Codec[T]{path: path, timeout: timeout}
}

// Path 返回集合文件路径
func (c *Codec[T]) Path() string {
	return c.path
}

// Init 文件不存在时写入空集合
func (c *Codec[T]) Init() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", c.path, err)
	}
	return writeAtomic(context.Background(), c.path, emptyArtifact)
}

// Load 读取整个集合，保持文件中的顺序
func (c *Codec[T]) Load(ctx context.Context) ([]*T, error) {
	var records []*T
	err := c.bounded(ctx, func(ctx context.Context) error {
		data, err := os.ReadFile(c.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("failed to read %s: %w", c.path, err)
		}
		if err := expired(ctx); err != nil {
			return err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, &records); err != nil {
			c.quarantine(data, err)
			records = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*T{}
	}
	return records, nil
}

// Save 整文件替换写入
// 超时在提交前检查：返回 ErrTimeout 时文件保持原样。
func (c *Codec[T]) Save(ctx context.Context, records []*T) error {
	if records == nil {
		records = []*T{}
	}
	data, err := marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.path, err)
	}
	return c.bounded(ctx, func(ctx context.Context) error {
		return writeAtomic(ctx, c.path, data)
	})
}

// bounded 在 ctx 与 timeout 约束下同步执行一次文件操作
// 返回时操作已结束，不会有仍在进行的写入。
func (c *Codec[T]) bounded(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := fn(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", c.path, ErrTimeout)
	}
	return err
}

// expired 截止时间已过或 ctx 已取消
func expired(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return ctx.Err()
}

// quarantine 把无法解析的文件另存为 .corrupt，便于事后排查
func (c *Codec[T]) quarantine(data []byte, cause error) {
	corrupt := c.path + ".corrupt"
	logger := log.With().Str("path", c.path).Logger()
	if err := os.WriteFile(corrupt, data, 0o644); err != nil {
		logger.Error().Err(err).Msg("failed to preserve unparseable collection file")
	}
	logger.Warn().Err(cause).Str("preserved_as", corrupt).Msg("collection file unparseable, treating as empty")
}

// marshal 两空格缩进，不转义 HTML 与非 ASCII 字符
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile 原子地写入原始字节（用于备份恢复）
func WriteFile(path string, data []byte) error {
	return writeAtomic(context.Background(), path, data)
}

// writeAtomic 写入同目录下的唯一临时文件再 rename
// rename 前 ctx 已过期则删除临时文件并放弃提交。
func writeAtomic(ctx context.Context, path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	discard := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		discard()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		discard()
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		discard()
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := expired(ctx); err != nil {
		discard()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		discard()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
