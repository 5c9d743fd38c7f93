package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pressroom/internal/apperr"
	"pressroom/internal/domain/models"
	"pressroom/internal/lib/logger/sl"
	"pressroom/internal/repository"
	"pressroom/internal/storage"
	"pressroom/internal/transport/http/dto"
)

const (
	relatedPostsLimit = 3

	relatedCacheTTL = time.Minute
	viewDedupeTTL   = 30 * time.Minute
)

// ViewDeduper grants a one-shot slot per key within a TTL window.
type ViewDeduper interface {
	AcquireOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type BlogService struct {
	log    *slog.Logger
	repo   repository.BlogRepository
	dedupe ViewDeduper
	cache  *gocache.Cache
}

func NewBlogService(log *slog.Logger, repo repository.BlogRepository, dedupe ViewDeduper) *BlogService {
	return &BlogService{
		log:    log,
		repo:   repo,
		dedupe: dedupe,
		cache:  gocache.New(relatedCacheTTL, 5*time.Minute),
	}
}

// ListPublished returns the public reader feed, newest first.
func (s *BlogService) ListPublished(ctx context.Context, page, perPage int) (*dto.BlogPostListResponse, error) {
	const op = "blog_service.ListPublished"
	log := s.log.With(slog.String("op", op), slog.Int("page", page))

	posts, total, err := s.repo.FindPublished(ctx, page, perPage)
	if err != nil {
		log.Error("failed to list published posts", sl.Err(err))
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}

	resp := &dto.BlogPostListResponse{
		Success: true,
		Posts:   make([]dto.BlogPostResponse, 0, len(posts)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for _, post := range posts {
		resp.Posts = append(resp.Posts, mapToPostResponse(post))
	}

	return resp, nil
}

// GetPublishedBySlug serves the public single-post page. Drafts and posts in
// review are invisible to the reader.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*dto.BlogPostResponse, error) {
	const op = "blog_service.GetPublishedBySlug"
	log := s.log.With(slog.String("op", op), slog.String("slug", slug))

	post, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		log.Error("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if post.Status != models.StatusPublished {
		return nil, apperr.NotFound("post not found")
	}

	resp := mapToPostResponse(*post)
	return &resp, nil
}

// GetRelatedPosts finds up to three other posts sharing at least one tag
// reference with the target, in natural collection order. An unknown slug or
// a tagless post yields an empty sequence, not an error.
func (s *BlogService) GetRelatedPosts(ctx context.Context, slug string) ([]dto.BlogPostResponse, error) {
	const op = "blog_service.GetRelatedPosts"
	log := s.log.With(slog.String("op", op), slog.String("slug", slug))

	if cached, ok := s.cache.Get(relatedCacheKey(slug)); ok {
		return cached.([]dto.BlogPostResponse), nil
	}

	post, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return []dto.BlogPostResponse{}, nil
		}
		log.Error("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if len(post.Tags) == 0 {
		return []dto.BlogPostResponse{}, nil
	}

	related, err := s.repo.FindRelatedPosts(ctx, post.ID, post.Tags, relatedPostsLimit)
	if err != nil {
		log.Error("failed to find related posts", sl.Err(err))
		return nil, fmt.Errorf("failed to find related posts: %w", err)
	}

	out := make([]dto.BlogPostResponse, 0, len(related))
	for _, p := range related {
		out = append(out, mapToPostResponse(p))
	}

	s.cache.Set(relatedCacheKey(slug), out, relatedCacheTTL)

	log.Info("related posts resolved", slog.Int("count", len(out)))
	return out, nil
}

// RecordView bumps a post's view counter. Repeat hits from the same client
// within the dedupe window are dropped via a redis SETNX slot; when redis is
// unavailable the view is counted anyway.
func (s *BlogService) RecordView(ctx context.Context, slug, clientIP string) error {
	const op = "blog_service.RecordView"
	log := s.log.With(slog.String("op", op), slog.String("slug", slug))

	post, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return apperr.NotFound("post not found")
		}
		log.Error("failed to get post", sl.Err(err))
		return fmt.Errorf("failed to get post: %w", err)
	}

	key := fmt.Sprintf("view:%s:%s", post.ID.Hex(), clientIP)
	won, err := s.dedupe.AcquireOnce(ctx, key, viewDedupeTTL)
	if err != nil {
		log.Warn("view dedupe unavailable, counting view", sl.Err(err))
		won = true
	}
	if !won {
		return nil
	}

	if err := s.repo.IncrementViewCount(ctx, post.ID); err != nil {
		log.Error("failed to increment view count", sl.Err(err))
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

func relatedCacheKey(slug string) string {
	return "related:" + slug
}

func mapToPostResponse(post models.BlogPost) dto.BlogPostResponse {
	return dto.BlogPostResponse{
		ID:          post.ID.Hex(),
		Title:       post.Title,
		Slug:        post.Slug,
		Summary:     post.Summary,
		Content:     post.Content,
		Status:      post.Status,
		ViewCount:   post.ViewCount,
		LikeCount:   post.LikeCount,
		Tags:        post.Tags,
		Author:      post.Author,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
