package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pressroom/internal/apperr"
	"pressroom/internal/domain/models"
	"pressroom/internal/lib/logger/sl"
	"pressroom/internal/repository"
	"pressroom/internal/storage"
	"pressroom/internal/transport/http/dto"
)

type UserService struct {
	log  *slog.Logger
	repo repository.UserRepository
}

func NewUserService(log *slog.Logger, repo repository.UserRepository) *UserService {
	return &UserService{log: log, repo: repo}
}

// UpsertUser records a sign-in: it creates the profile on first contact and
// refreshes the mutable fields on every later one.
func (s *UserService) UpsertUser(ctx context.Context, req dto.UpsertUserRequest) (*dto.UserResponse, error) {
	const op = "user_service.UpsertUser"
	log := s.log.With(slog.String("op", op), slog.String("uid", req.UID))

	if req.UID == "" {
		return nil, apperr.Validation("uid is required")
	}

	user, err := s.repo.UpsertByUID(ctx, models.User{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        req.Role,
	})
	if err != nil {
		log.Error("failed to upsert user", sl.Err(err))
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	log.Info("user upserted")
	resp := dto.ToUserResponse(*user)
	return &resp, nil
}

func (s *UserService) GetUser(ctx context.Context, uid string) (*dto.UserResponse, error) {
	const op = "user_service.GetUser"
	log := s.log.With(slog.String("op", op), slog.String("uid", uid))

	if uid == "" {
		return nil, apperr.Validation("uid is required")
	}

	user, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		log.Error("failed to get user", sl.Err(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := dto.ToUserResponse(*user)
	return &resp, nil
}
