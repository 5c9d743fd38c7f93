package dto

import (
	"time"

	"pressroom/internal/domain/models"
)

type UpsertUserRequest struct {
	UID         string `json:"uid" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Role        string `json:"role,omitempty"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SingleUserResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

func ToUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID.Hex(),
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
