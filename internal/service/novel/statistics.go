package novel

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"conovel/internal/model"
	"conovel/internal/pkg/http"
	novelrepo "conovel/internal/repository/novel"
)

// Statistics 每次调用都从四个集合重新计算
func (s *novelService) Statistics(ctx context.Context) (*model.Statistics, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	chapters, err := s.chapters.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	caches, err := s.caches.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.Statistics{
		TotalNovels:       len(projects),
		TotalChapters:     len(chapters),
		CacheEntries:      len(caches),
		GenreDistribution: make(map[string]int),
		LastUpdated:       time.Now(),
	}
	_, stats.TotalWords = novelrepo.Totals(chapters)
	for _, sess := range sessions {
		if sess.IsActive {
			stats.ActiveSessions++
		}
	}
	for _, p := range projects {
		stats.GenreDistribution[p.Genre.String()]++
	}
	if len(caches) > 0 {
		hits := 0
		for _, c := range caches {
			hits += c.HitCount
		}
		stats.CacheEfficiency = math.Round(float64(hits)/float64(len(caches))*100) / 100
	}
	return stats, nil
}

// GetStatistics 全局统计
func (s *novelService) GetStatistics(ctx context.Context) *http.Outcome {
	stats, err := s.Statistics(ctx)
	if err != nil {
		return fail("get_statistics", err, "", "GET_STATISTICS_FAILED", "获取统计信息失败")
	}
	observe("get_statistics", nil)
	return http.OK("获取统计信息成功", stats)
}

// RecomputeProjectTotals 从章节集合计算项目的章节数与总字数
func (s *novelService) RecomputeProjectTotals(ctx context.Context, novelID string) (int, int, error) {
	if _, err := s.projects.FindByID(ctx, novelID); err != nil {
		return 0, 0, err
	}
	chapters, err := s.chapters.FindByNovelID(ctx, novelID)
	if err != nil {
		return 0, 0, err
	}
	count, words := novelrepo.Totals(chapters)
	return count, words, nil
}

// CleanupResources 清理超过保留期的生成缓存
func (s *novelService) CleanupResources(ctx context.Context) *http.Outcome {
	deleted, err := s.caches.Cleanup(ctx, s.opts.CacheMaxAge)
	if err != nil {
		return fail("cleanup", err, "", "CLEANUP_FAILED", "资源清理失败")
	}
	observe("cleanup", nil)
	log.Info().Int("deleted", deleted).Dur("max_age", s.opts.CacheMaxAge).Msg("generation cache cleaned up")
	return http.OK("资源清理完成", map[string]any{"deleted_cache_entries": deleted})
}
