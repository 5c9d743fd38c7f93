package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pressroom/internal/apperr"
	"pressroom/internal/domain/models"
	"pressroom/internal/lib/logger/sl"
	"pressroom/internal/repository"
	"pressroom/internal/storage"
	"pressroom/internal/transport/http/dto"
)

type TagService struct {
	log      *slog.Logger
	repo     repository.TagRepository
	blogRepo repository.BlogRepository
}

func NewTagService(log *slog.Logger, repo repository.TagRepository, blogRepo repository.BlogRepository) *TagService {
	return &TagService{log: log, repo: repo, blogRepo: blogRepo}
}

// ListTags returns all tags, name ascending, each with its published-article
// count. The counts come from one grouped aggregation over the posts rather
// than a query per tag.
func (s *TagService) ListTags(ctx context.Context) ([]dto.TagResponse, error) {
	const op = "tag_service.ListTags"
	log := s.log.With(slog.String("op", op))

	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		log.Error("failed to list tags", sl.Err(err))
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	refCounts, err := s.blogRepo.PublishedTagRefCounts(ctx)
	if err != nil {
		log.Error("failed to count tag references", sl.Err(err))
		return nil, fmt.Errorf("failed to count tag references: %w", err)
	}

	out := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, s.mapToTagResponse(tag, articleCount(refCounts, tag)))
	}

	log.Info("tags listed", slog.Int("count", len(out)))
	return out, nil
}

func (s *TagService) GetTag(ctx context.Context, id string) (*dto.TagResponse, error) {
	const op = "tag_service.GetTag"
	log := s.log.With(slog.String("op", op), slog.String("tag_id", id))

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	tag, err := s.repo.GetTagByID(ctx, oid)
	if err != nil {
		if errors.Is(err, storage.ErrTagNotFound) {
			return nil, apperr.NotFound("tag not found")
		}
		log.Error("failed to get tag", sl.Err(err))
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	refCounts, err := s.blogRepo.PublishedTagRefCounts(ctx)
	if err != nil {
		log.Error("failed to count tag references", sl.Err(err))
		return nil, fmt.Errorf("failed to count tag references: %w", err)
	}

	resp := s.mapToTagResponse(*tag, articleCount(refCounts, *tag))
	return &resp, nil
}

func (s *TagService) CreateTag(ctx context.Context, req dto.CreateTagRequest) (*dto.TagResponse, error) {
	const op = "tag_service.CreateTag"
	log := s.log.With(slog.String("op", op), slog.String("slug", req.Slug))

	if req.Name == "" || req.Slug == "" {
		return nil, apperr.Validation("name and slug are required")
	}

	tag := models.Tag{
		Name:        req.Name,
		Slug:        req.Slug,
		Color:       req.Color,
		Description: req.Description,
	}
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}

	id, err := s.repo.SaveTag(ctx, tag)
	if err != nil {
		if errors.Is(err, storage.ErrTagSlugTaken) {
			log.Warn("slug conflict on create")
			return nil, apperr.Conflict("tag slug already exists")
		}
		log.Error("failed to create tag", sl.Err(err))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	log.Info("tag created", slog.String("tag_id", id.Hex()))
	return s.toTagResponse(ctx, id)
}

func (s *TagService) UpdateTag(ctx context.Context, id string, req dto.UpdateTagRequest) (*dto.TagResponse, error) {
	const op = "tag_service.UpdateTag"
	log := s.log.With(slog.String("op", op), slog.String("tag_id", id))

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	// updatedAt is refreshed by the repository even when nothing else changed
	if err := s.repo.UpdateTagFields(ctx, oid, updates); err != nil {
		switch {
		case errors.Is(err, storage.ErrTagSlugTaken):
			log.Warn("slug conflict on update")
			return nil, apperr.Conflict("tag slug already exists")
		case errors.Is(err, storage.ErrTagNotFound):
			return nil, apperr.NotFound("tag not found")
		}
		log.Error("failed to update tag", sl.Err(err))
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	log.Info("tag updated")
	return s.toTagResponse(ctx, oid)
}

func (s *TagService) DeleteTag(ctx context.Context, id string) error {
	const op = "tag_service.DeleteTag"
	log := s.log.With(slog.String("op", op), slog.String("tag_id", id))

	oid, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTag(ctx, oid); err != nil {
		if errors.Is(err, storage.ErrTagNotFound) {
			return apperr.NotFound("tag not found")
		}
		log.Error("failed to delete tag", sl.Err(err))
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	log.Info("tag deleted")
	return nil
}

// articleCount resolves a tag's published-article count from the grouped
// reference counts. Posts may reference the tag by slug or by display name;
// both buckets are summed, once when the two coincide.
func articleCount(refCounts map[string]int64, tag models.Tag) int64 {
	count := refCounts[tag.Slug]
	if tag.Name != tag.Slug {
		count += refCounts[tag.Name]
	}
	return count
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid tag id format")
	}
	return oid, nil
}

func (s *TagService) toTagResponse(ctx context.Context, id primitive.ObjectID) (*dto.TagResponse, error) {
	tag, err := s.repo.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refCounts, err := s.blogRepo.PublishedTagRefCounts(ctx)
	if err != nil {
		return nil, err
	}

	resp := s.mapToTagResponse(*tag, articleCount(refCounts, *tag))
	return &resp, nil
}

func (s *TagService) mapToTagResponse(tag models.Tag, count int64) dto.TagResponse {
	return dto.TagResponse{
		ID:           tag.ID.Hex(),
		Name:         tag.Name,
		Slug:         tag.Slug,
		Color:        tag.Color,
		Description:  tag.Description,
		ArticleCount: count,
		CreatedAt:    tag.CreatedAt,
		UpdatedAt:    tag.UpdatedAt,
	}
}
