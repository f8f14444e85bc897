package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Favorite bookmarks a community server for a user.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	ServerID  primitive.ObjectID `bson:"serverId" json:"serverId"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}
