package store

import (
	"context"
	"time"

	"homiefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FavoriteStore struct {
	coll *mongo.Collection
}

// Add bookmarks a server. Upsert on the (user, server) pair, so double
// taps are harmless. Returns false when it was already favorited.
func (s *FavoriteStore) Add(ctx context.Context, userID string, serverID primitive.ObjectID) (bool, error) {
	result, err := s.coll.UpdateOne(
		ctx,
		bson.M{"userId": userID, "serverId": serverID},
		bson.M{"$setOnInsert": bson.M{
			"userId":    userID,
			"serverId":  serverID,
			"createdAt": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount == 1, nil
}

func (s *FavoriteStore) Remove(ctx context.Context, userID string, serverID primitive.ObjectID) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"userId": userID, "serverId": serverID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}

func (s *FavoriteStore) ForUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}
