package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses. Anything else found in the collection is tolerated but
// excluded from the dashboard totals.
const (
	StatusPublished     = "published"
	StatusDraft         = "draft"
	StatusReview        = "review"
	StatusPendingReview = "pending_review"
)

type BlogPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Summary     string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	Status      string             `bson:"status" json:"status"`
	ViewCount   int64              `bson:"viewCount,omitempty" json:"viewCount"`
	LikeCount   int64              `bson:"likeCount,omitempty" json:"likeCount"`
	// Tags holds tag references as written by the admin UI. Historical
	// records reference tags by display name, newer ones by slug; both
	// forms must be matched when counting.
	Tags        []string           `bson:"tags,omitempty" json:"tags"`
	Author      *Author            `bson:"author,omitempty" json:"author,omitempty"`
	PublishedAt *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Author struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	PhotoURL string `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role     string `bson:"role,omitempty" json:"role,omitempty"`
}
