package store

import (
	"context"
	"time"

	"homiefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MatchStore struct {
	coll   *mongo.Collection
	swipes *mongo.Collection
}

// CheckMutual reads both directional swipes and reports whether the pair
// has mutually swiped right.
func (s *MatchStore) CheckMutual(ctx context.Context, a, b string) (bool, error) {
	ab, err := s.getSwipe(ctx, models.SwipeKey(a, b))
	if err != nil {
		return false, err
	}
	ba, err := s.getSwipe(ctx, models.SwipeKey(b, a))
	if err != nil {
		return false, err
	}
	return models.MutualRight(ab, ba), nil
}

func (s *MatchStore) getSwipe(ctx context.Context, key string) (*models.Swipe, error) {
	var swipe models.Swipe
	err := s.swipes.FindOne(ctx, bson.M{"_id": key}).Decode(&swipe)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

// Create upserts the canonical match document for the pair. The key is
// the sorted id pair and the payload is written with $setOnInsert, so two
// users swiping right at the same time converge on a single document.
func (s *MatchStore) Create(ctx context.Context, a, b string) (string, error) {
	lo, hi := models.SortPair(a, b)
	key := models.MatchKey(a, b)

	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": key},
		bson.M{"$setOnInsert": bson.M{
			"users":     []string{lo, hi},
			"createdAt": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

// Exists reports whether the pair has matched. Symmetric in its arguments.
func (s *MatchStore) Exists(ctx context.Context, a, b string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": models.MatchKey(a, b)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ForUser lists all matches the user is part of, newest first.
func (s *MatchStore) ForUser(ctx context.Context, userID string) ([]models.Match, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"users": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
