package dto

import (
	"time"

	"pressroom/internal/domain/models"
)

type BlogPostResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Summary     string         `json:"summary,omitempty"`
	Content     string         `json:"content,omitempty"`
	Status      string         `json:"status"`
	ViewCount   int64          `json:"viewCount"`
	LikeCount   int64          `json:"likeCount"`
	Tags        []string       `json:"tags"`
	Author      *models.Author `json:"author,omitempty"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type BlogPostListResponse struct {
	Success bool               `json:"success"`
	Posts   []BlogPostResponse `json:"posts"`
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"perPage"`
}

type SingleBlogPostResponse struct {
	Success bool             `json:"success"`
	Post    BlogPostResponse `json:"post"`
}

// RelatedPostsResponse lists at most three posts sharing a tag with the
// target, summaries only.
type RelatedPostsResponse struct {
	Success bool               `json:"success"`
	Posts   []BlogPostResponse `json:"posts"`
}
