package store

import (
	"context"
	"time"

	"homiefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SwipeStore struct {
	coll *mongo.Collection
}

// Record upserts the directional decision keyed "from_to". Re-swiping the
// same target overwrites the previous direction.
func (s *SwipeStore) Record(ctx context.Context, from, to, direction string) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": models.SwipeKey(from, to)},
		bson.M{"$set": bson.M{
			"from":      from,
			"to":        to,
			"direction": direction,
			"createdAt": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Get returns the swipe from one user toward another, or nil when the
// actor has not swiped yet.
func (s *SwipeStore) Get(ctx context.Context, from, to string) (*models.Swipe, error) {
	var swipe models.Swipe
	err := s.coll.FindOne(ctx, bson.M{"_id": models.SwipeKey(from, to)}).Decode(&swipe)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}
