package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"conovel/internal/ai"
	"conovel/internal/config"
	novelRepo "conovel/internal/repository/novel"
	novelService "conovel/internal/service/novel"
)

// openNovelService 离线命令使用的服务实例，生成器固定为 mock
func openNovelService(cfg *config.Config) (novelService.NovelService, error) {
	store := novelRepo.New(cfg.Store.DataDir, cfg.Store.IOTimeout)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}
	return novelService.NewNovelService(novelService.RepositoriesFromStore(store), ai.NewMockGenerator(), novelService.Options{
		CacheMaxAge: cfg.Store.CacheMaxAge,
	}), nil
}

// printJSON 以缩进 JSON 输出到 stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
