package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pressroom/internal/domain/models"
	"pressroom/internal/storage"
)

type ProviderRepo struct {
	col *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepo {
	return &ProviderRepo{col: db.Collection(providerCollection)}
}

func (r *ProviderRepo) ListProviders(ctx context.Context) ([]models.AiProvider, error) {
	const op = "repository.provider_repository.ListProviders"

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var providers []models.AiProvider
	if err := cur.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return providers, nil
}

func (r *ProviderRepo) SaveProvider(ctx context.Context, provider models.AiProvider) (primitive.ObjectID, error) {
	const op = "repository.provider_repository.SaveProvider"

	now := time.Now().UTC()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, provider)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}

	return id, nil
}

func (r *ProviderRepo) UpdateProviderFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	const op = "repository.provider_repository.UpdateProviderFields"

	set := bson.M{"updatedAt": time.Now().UTC()}
	for field, value := range updates {
		set[field] = value
	}

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrProviderNotFound)
	}

	return nil
}
