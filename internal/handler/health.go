package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"conovel/internal/model"
)

// StatisticsSource 健康检查所需的统计来源
type StatisticsSource interface {
	Statistics(ctx context.Context) (*model.Statistics, error)
}

// Pinger 就绪检查依赖（如 Redis）
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	stats   StatisticsSource
	deps    map[string]Pinger
}

// NewHealthHandler 创建健康检查处理器；deps 中值为 nil 的依赖视为未启用
func NewHealthHandler(version string, stats StatisticsSource, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, stats: stats, deps: deps}
}

// Health 健康检查，附带全局统计；统计失败时返回 503
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "{\"status\": \"healthy\", ...}"
// @Failure      503  {object}  map[string]interface{}  "{\"status\": \"unhealthy\", ...}"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	stats, err := h.stats.Statistics(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   h.version,
		"timestamp": time.Now(),
		"services": gin.H{
			"api":  "healthy",
			"ai":   "healthy",
			"data": "healthy",
		},
		"statistics": stats,
	})
}

// Ready 就绪检查
// @Summary      就绪检查
// @Tags         系统
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "{\"status\": \"ready\"}"
// @Failure      503  {object}  map[string]interface{}  "{\"status\": \"not_ready\"}"
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true
	for name, dep := range h.deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
