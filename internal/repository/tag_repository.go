package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressroom/internal/domain/models"
	"pressroom/internal/storage"
)

type TagRepo struct {
	col *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepo {
	return &TagRepo{col: db.Collection(tagCollection)}
}

// ListTags returns all tags ordered by name ascending.
func (r *TagRepo) ListTags(ctx context.Context) ([]models.Tag, error) {
	const op = "repository.tag_repository.ListTags"

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var tags []models.Tag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tags, nil
}

func (r *TagRepo) GetTagByID(ctx context.Context, id primitive.ObjectID) (*models.Tag, error) {
	const op = "repository.tag_repository.GetTagByID"

	var tag models.Tag
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&tag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrTagNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tag, nil
}

// SaveTag inserts a tag after checking that no other tag holds its slug.
func (r *TagRepo) SaveTag(ctx context.Context, tag models.Tag) (primitive.ObjectID, error) {
	const op = "repository.tag_repository.SaveTag"

	taken, err := r.slugTaken(ctx, tag.Slug, primitive.NilObjectID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, storage.ErrTagSlugTaken)
	}

	now := time.Now().UTC()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, tag)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}

	return id, nil
}

// UpdateTagFields applies only the supplied fields and always refreshes
// updatedAt. A slug change re-checks uniqueness excluding the tag itself.
func (r *TagRepo) UpdateTagFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	const op = "repository.tag_repository.UpdateTagFields"

	if slug, ok := updates["slug"].(string); ok {
		taken, err := r.slugTaken(ctx, slug, id)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return fmt.Errorf("%s: %w", op, storage.ErrTagSlugTaken)
		}
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for field, value := range updates {
		set[field] = value
	}

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTagNotFound)
	}

	return nil
}

// DeleteTag removes the record. Posts referencing the tag are left alone:
// dangling references simply stop matching in the counts.
func (r *TagRepo) DeleteTag(ctx context.Context, id primitive.ObjectID) error {
	const op = "repository.tag_repository.DeleteTag"

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTagNotFound)
	}

	return nil
}

func (r *TagRepo) slugTaken(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
