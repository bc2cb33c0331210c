package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "conovel/docs"
	"conovel/internal/ai"
	"conovel/internal/config"
	"conovel/internal/handler"
	novelHandler "conovel/internal/handler/novel"
	"conovel/internal/pkg/cache"
	"conovel/internal/pkg/chatstream"
	novelRepo "conovel/internal/repository/novel"
	"conovel/internal/server/middleware"
	novelService "conovel/internal/service/novel"
)

// Version 服务版本
const Version = "2.0.0"

// Server HTTP 服务器
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	store    *novelRepo.Store
	redis    *cache.RedisCache
	novelSvc novelService.NovelService
	adapter  *chatstream.Adapter
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化文件存储
	store := novelRepo.New(cfg.Store.DataDir, cfg.Store.IOTimeout)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}
	log.Info().Str("data_dir", cfg.Store.DataDir).Msg("document store initialized")

	// 初始化生成器（未配置 API Key 时为 mock）
	generator, err := ai.NewGenerator(context.Background(), &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to init generator: %w", err)
	}

	// 初始化 Redis (可选)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without rate limiting")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	streamModel := cfg.Stream.Model
	if streamModel == "" {
		streamModel = generator.Model()
	}

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
		store:  store,
		redis:  redisCache,
		novelSvc: novelService.NewNovelService(novelService.RepositoriesFromStore(store), generator, novelService.Options{
			CacheMaxAge:     cfg.Store.CacheMaxAge,
			GenerateTimeout: cfg.AI.Timeout,
		}),
		adapter: chatstream.NewAdapter(streamModel, cfg.Stream.PullTimeout),
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger("/metrics", "/health", "/ready"))
	s.engine.Use(middleware.Metrics())
	s.engine.Use(middleware.CORS(s.cfg.CORS.AllowedOrigins))

	// 健康检查
	deps := map[string]handler.Pinger{}
	if s.redis != nil {
		deps["redis"] = s.redis
	}
	healthHandler := handler.NewHealthHandler(Version, s.novelSvc, deps)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// 指标与 Swagger 文档
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	novelHdl := novelHandler.NewHandler(s.novelSvc, s.adapter)

	// 生成接口限流（需要 Redis）
	limit := middleware.RateLimit(nil, 0, 0)
	if s.cfg.RateLimit.Enabled && s.redis != nil {
		limit = middleware.RateLimit(s.redis, s.cfg.RateLimit.Limit, s.cfg.RateLimit.Window)
	}

	// 前端兼容接口
	aiGroup := s.engine.Group("/api/ai")
	{
		aiGroup.GET("/health", novelHdl.AIHealth)

		aiGroup.POST("/generate-title", limit, novelHdl.GenerateTitle)
		aiGroup.POST("/generate-outline", limit, novelHdl.GenerateOutline)
		aiGroup.POST("/generate-outline-stream", limit, novelHdl.GenerateOutlineStream)
		aiGroup.POST("/generate-chapter", limit, novelHdl.GenerateChapter)
		aiGroup.POST("/generate-chapter-stream", limit, novelHdl.GenerateChapterStream)

		aiGroup.POST("/save-chapter", novelHdl.SaveChapterByTitle)
		aiGroup.GET("/saved-chapters", novelHdl.ListSavedChapters)
		aiGroup.GET("/chapter/:chapter_id", novelHdl.GetChapter)
		aiGroup.PUT("/chapter/:chapter_id/position", novelHdl.UpdateChapterPosition)
	}

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		novels := v1.Group("/novels")
		novels.POST("", novelHdl.CreateNovel)
		novels.GET("", novelHdl.ListNovels)
		novels.GET("/statistics", novelHdl.GetStatistics)
		novels.POST("/cleanup", novelHdl.Cleanup)
		novels.PUT("/sessions/:session_id/step", novelHdl.UpdateSessionStep)
		novels.GET("/:novel_id", novelHdl.GetNovel)
		novels.PUT("/:novel_id/content", novelHdl.UpdateNovelContent)
		novels.PUT("/:novel_id/chapters/:number", novelHdl.SaveChapter)
		novels.DELETE("/:novel_id", novelHdl.DeleteNovel)
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}
		return err
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
