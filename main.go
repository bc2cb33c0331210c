package main

import (
	"os"

	"conovel/cmd"
)

// @title           co-novel API
// @version         2.0.0
// @description     AI 辅助小说创作服务：标题、大纲、章节生成与作品管理
// @BasePath        /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
