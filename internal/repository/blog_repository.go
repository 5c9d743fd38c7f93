package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressroom/internal/domain/models"
	"pressroom/internal/storage"
)

type BlogRepo struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepo {
	return &BlogRepo{col: db.Collection(blogCollection)}
}

// CountByStatus groups all posts by status and returns a count per observed
// status value, including values outside the recognized lifecycle.
func (r *BlogRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	const op = "repository.blog_repository.CountByStatus"

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

// SumViews totals viewCount across all posts; documents without the field
// contribute 0.
func (r *BlogRepo) SumViews(ctx context.Context) (int64, error) {
	const op = "repository.blog_repository.SumViews"

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$viewCount", 0}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	return rows[0].Total, nil
}

// CountDistinctTags flattens every post's tag array, drops nulls and counts
// the distinct references.
func (r *BlogRepo) CountDistinctTags(ctx context.Context) (int64, error) {
	const op = "repository.blog_repository.CountDistinctTags"

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$tags"}},
		bson.D{{Key: "$match", Value: bson.M{"tags": bson.M{"$ne": nil}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$tags"}}},
		bson.D{{Key: "$count", Value: "count"}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	return rows[0].Count, nil
}

// PublishedTagRefCounts counts published posts per tag reference in one
// grouped aggregation, so the per-tag article counts need no query per tag.
func (r *BlogRepo) PublishedTagRefCounts(ctx context.Context) (map[string]int64, error) {
	const op = "repository.blog_repository.PublishedTagRefCounts"

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.StatusPublished}}},
		bson.D{{Key: "$unwind", Value: "$tags"}},
		bson.D{{Key: "$match", Value: bson.M{"tags": bson.M{"$ne": nil}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$tags",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Ref   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Ref] = row.Count
	}

	return counts, nil
}

func (r *BlogRepo) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	const op = "repository.blog_repository.GetPostBySlug"

	var post models.BlogPost
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &post, nil
}

// FindRelatedPosts returns posts sharing at least one tag reference with the
// given set, excluding the post itself, in natural collection order.
func (r *BlogRepo) FindRelatedPosts(ctx context.Context, excludeID primitive.ObjectID, tags []string, limit int64) ([]models.BlogPost, error) {
	const op = "repository.blog_repository.FindRelatedPosts"

	filter := bson.M{
		"_id":  bson.M{"$ne": excludeID},
		"tags": bson.M{"$in": tags},
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var posts []models.BlogPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

// FindPublished lists published posts, newest first, with the total count
// for pagination.
func (r *BlogRepo) FindPublished(ctx context.Context, page, perPage int) ([]models.BlogPost, int64, error) {
	const op = "repository.blog_repository.FindPublished"

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	filter := bson.M{"status": models.StatusPublished}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var posts []models.BlogPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

func (r *BlogRepo) IncrementViewCount(ctx context.Context, id primitive.ObjectID) error {
	const op = "repository.blog_repository.IncrementViewCount"

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"viewCount": 1}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}
