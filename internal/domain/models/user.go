package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is upserted on every login keyed by the external identity UID.
// There is no deletion path.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID         string             `bson:"uid" json:"uid"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role        string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
