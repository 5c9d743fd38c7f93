package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressroom/internal/domain/models"
	"pressroom/internal/storage"
)

type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection(userCollection)}
}

// UpsertByUID creates or refreshes the user record keyed by the external
// identity uid and returns the stored document.
func (r *UserRepo) UpsertByUID(ctx context.Context, user models.User) (*models.User, error) {
	const op = "repository.user_repository.UpsertByUID"

	now := time.Now().UTC()

	set := bson.M{
		"email":     user.Email,
		"updatedAt": now,
	}
	if user.DisplayName != "" {
		set["displayName"] = user.DisplayName
	}
	if user.PhotoURL != "" {
		set["photoURL"] = user.PhotoURL
	}
	if user.Role != "" {
		set["role"] = user.Role
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"uid": user.UID, "createdAt": now},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"uid": user.UID}, update, opts).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &stored, nil
}

func (r *UserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "repository.user_repository.GetByUID"

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}
