package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"pressroom/internal/lib/logger/sl"
	"pressroom/internal/repository"
	"pressroom/internal/transport/http/dto"
)

// StatsService derives the admin dashboard metrics. Everything is recomputed
// on every call from the current collection snapshot; there is no caching
// layer in front of it.
type StatsService struct {
	log  *slog.Logger
	repo repository.BlogRepository
}

func NewStatsService(log *slog.Logger, repo repository.BlogRepository) *StatsService {
	return &StatsService{log: log, repo: repo}
}

func (s *StatsService) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	const op = "stats_service.GetDashboardStats"
	log := s.log.With(slog.String("op", op))

	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		log.Error("failed to count posts by status", sl.Err(err))
		return nil, fmt.Errorf("failed to count posts by status: %w", err)
	}

	totalViews, err := s.repo.SumViews(ctx)
	if err != nil {
		log.Error("failed to sum views", sl.Err(err))
		return nil, fmt.Errorf("failed to sum views: %w", err)
	}

	totalTags, err := s.repo.CountDistinctTags(ctx)
	if err != nil {
		log.Error("failed to count distinct tags", sl.Err(err))
		return nil, fmt.Errorf("failed to count distinct tags: %w", err)
	}

	blogs := dto.BlogCounts{
		Published:     statusCounts["published"],
		Draft:         statusCounts["draft"],
		Review:        statusCounts["review"],
		PendingReview: statusCounts["pending_review"],
	}
	// unrecognized status values stay retrievable per status but are
	// excluded from the total
	blogs.Total = blogs.Published + blogs.Draft + blogs.Review + blogs.PendingReview

	stats := &dto.DashboardStats{
		Blogs: blogs,
		Views: dto.ViewStats{
			Total:     totalViews,
			Formatted: FormatViewCount(totalViews),
		},
		Tags:           dto.TagStats{Total: totalTags},
		PendingReviews: blogs.Review + blogs.PendingReview,
	}

	log.Info("dashboard stats computed",
		slog.Int64("total_blogs", blogs.Total),
		slog.Int64("total_views", totalViews),
	)

	return stats, nil
}

// FormatViewCount renders a view total the way the dashboard displays it:
// 2500000 -> "2.5M", 1500 -> "1.5k", 999 -> "999".
func FormatViewCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "k"
	default:
		return strconv.FormatInt(n, 10)
	}
}
