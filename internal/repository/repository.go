package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names, shared with the admin UI that seeded the data.
const (
	blogCollection     = "blogs"
	tagCollection      = "tags"
	userCollection     = "users"
	providerCollection = "aiProviders"
)

type Repository struct {
	Tag      TagRepository
	Blog     BlogRepository
	User     UserRepository
	Provider ProviderRepository
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		Tag:      NewTagRepository(db),
		Blog:     NewBlogRepository(db),
		User:     NewUserRepository(db),
		Provider: NewProviderRepository(db),
	}
}
