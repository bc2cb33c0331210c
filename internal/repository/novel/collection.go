package novel

import (
	"context"
	"sync"

	"conovel/internal/pkg/jsonfile"
)

// collection 一个集合文件加一把互斥锁，读-改-写在锁内完成
type collection[T any] struct {
	name  string
	mu    sync.Mutex
	codec *jsonfile.Codec[T]
}

func newCollection[T any](name, path string, cfg storeOptions) *collection[T] {
	return &collection[T]{name: name, codec: jsonfile.New[T](path, cfg.ioTimeout)}
}

// read 加锁读取整个集合
func (c *collection[T]) read(ctx context.Context) ([]*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.codec.Load(ctx)
	if err != nil {
		return nil, persistenceErr("load "+c.name, err)
	}
	return records, nil
}

// mutate 加锁读取，交给 fn 修改；fn 返回 changed=false 或 error 时不写回
func (c *collection[T]) mutate(ctx context.Context, fn func(records []*T) ([]*T, bool, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.codec.Load(ctx)
	if err != nil {
		return persistenceErr("load "+c.name, err)
	}
	out, changed, err := fn(records)
	if err != nil || !changed {
		return err
	}
	if err := c.codec.Save(ctx, out); err != nil {
		return persistenceErr("save "+c.name, err)
	}
	return nil
}
