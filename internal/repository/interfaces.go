package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pressroom/internal/domain/models"
)

type TagRepository interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTagByID(ctx context.Context, id primitive.ObjectID) (*models.Tag, error)
	SaveTag(ctx context.Context, tag models.Tag) (primitive.ObjectID, error)
	UpdateTagFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteTag(ctx context.Context, id primitive.ObjectID) error
}

type BlogRepository interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumViews(ctx context.Context) (int64, error)
	CountDistinctTags(ctx context.Context) (int64, error)
	PublishedTagRefCounts(ctx context.Context) (map[string]int64, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	FindRelatedPosts(ctx context.Context, excludeID primitive.ObjectID, tags []string, limit int64) ([]models.BlogPost, error)
	FindPublished(ctx context.Context, page, perPage int) ([]models.BlogPost, int64, error)
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) error
}

type UserRepository interface {
	UpsertByUID(ctx context.Context, user models.User) (*models.User, error)
	GetByUID(ctx context.Context, uid string) (*models.User, error)
}

type ProviderRepository interface {
	ListProviders(ctx context.Context) ([]models.AiProvider, error)
	SaveProvider(ctx context.Context, provider models.AiProvider) (primitive.ObjectID, error)
	UpdateProviderFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}
