package dto

import "time"

type CreateTagRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=1"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TagResponse is a tag augmented with its computed published-article count.
type TagResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Color        string    `json:"color"`
	Description  string    `json:"description"`
	ArticleCount int64     `json:"articleCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type TagListResponse struct {
	Success bool          `json:"success"`
	Tags    []TagResponse `json:"tags"`
}

type SingleTagResponse struct {
	Success bool        `json:"success"`
	Tag     TagResponse `json:"tag"`
}
