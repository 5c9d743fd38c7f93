package dto

import (
	"time"

	"pressroom/internal/domain/models"
)

type CreateProviderRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// UpdateProviderRequest addresses the record by its document id, matching
// the admin panel's PUT body.
type UpdateProviderRequest struct {
	ID          string  `json:"_id" validate:"required"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type ProviderResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProviderListResponse struct {
	Success   bool               `json:"success"`
	Providers []ProviderResponse `json:"providers"`
}

type SingleProviderResponse struct {
	Success  bool             `json:"success"`
	Provider ProviderResponse `json:"provider"`
}

func ToProviderResponse(p models.AiProvider) ProviderResponse {
	return ProviderResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
