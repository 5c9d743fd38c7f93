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

type ProviderService struct {
	log  *slog.Logger
	repo repository.ProviderRepository
}

func NewProviderService(log *slog.Logger, repo repository.ProviderRepository) *ProviderService {
	return &ProviderService{log: log, repo: repo}
}

func (s *ProviderService) ListProviders(ctx context.Context) (*dto.ProviderListResponse, error) {
	const op = "provider_service.ListProviders"
	log := s.log.With(slog.String("op", op))

	providers, err := s.repo.ListProviders(ctx)
	if err != nil {
		log.Error("failed to list providers", sl.Err(err))
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	resp := &dto.ProviderListResponse{
		Success:   true,
		Providers: make([]dto.ProviderResponse, 0, len(providers)),
	}
	for _, p := range providers {
		resp.Providers = append(resp.Providers, dto.ToProviderResponse(p))
	}

	return resp, nil
}

func (s *ProviderService) CreateProvider(ctx context.Context, req dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	const op = "provider_service.CreateProvider"
	log := s.log.With(slog.String("op", op), slog.String("name", req.Name))

	if req.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	id, err := s.repo.SaveProvider(ctx, models.AiProvider{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		log.Error("failed to save provider", sl.Err(err))
		return nil, fmt.Errorf("failed to save provider: %w", err)
	}

	log.Info("provider created", slog.String("id", id.Hex()))
	return &dto.ProviderResponse{
		ID:          id.Hex(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, nil
}

// UpdateProvider applies only the fields present in the request body.
func (s *ProviderService) UpdateProvider(ctx context.Context, req dto.UpdateProviderRequest) error {
	const op = "provider_service.UpdateProvider"
	log := s.log.With(slog.String("op", op), slog.String("id", req.ID))

	if req.ID == "" {
		return apperr.Validation("_id is required")
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return apperr.Validation("invalid provider id format")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["isActive"] = *req.IsActive
	}
	if len(updates) == 0 {
		return apperr.Validation("no fields to update")
	}

	if err := s.repo.UpdateProviderFields(ctx, id, updates); err != nil {
		if errors.Is(err, storage.ErrProviderNotFound) {
			return apperr.NotFound("provider not found")
		}
		log.Error("failed to update provider", sl.Err(err))
		return fmt.Errorf("failed to update provider: %w", err)
	}

	log.Info("provider updated")
	return nil
}
