package novel

import (
	"errors"
	"fmt"

	"conovel/internal/model/novel"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrConflict 唯一性冲突（章节序号已被占用、序号越界）
	ErrConflict = errors.New("record conflict")
	// ErrInvalid 参数不合法
	ErrInvalid = errors.New("invalid record")
	// ErrPersistence 集合文件读写失败
	ErrPersistence = errors.New("persistence failure")
	// ErrRollupStale 章节已写入，但项目汇总字段未能更新
	ErrRollupStale = errors.New("project rollup is stale")
)

// RollupError 章节写入成功而汇总更新失败时返回，携带已保存的章节
type RollupError struct {
	Chapter *novel.Chapter
	Err     error
}

func (e *RollupError) Error() string {
	return fmt.Sprintf("chapter %s saved but rollup of novel %s failed: %v", e.Chapter.ID, e.Chapter.NovelID, e.Err)
}

// Is 让 errors.Is(err, ErrRollupStale) 成立
func (e *RollupError) Is(target error) bool {
	return target == ErrRollupStale
}

func (e *RollupError) Unwrap() error {
	return e.Err
}

// persistenceErr 同时保留 ErrPersistence 与底层原因（如 jsonfile.ErrTimeout）
func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
