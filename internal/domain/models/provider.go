package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AiProvider is an admin-managed configuration record, independent of the
// post/tag graph.
type AiProvider struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
