package store

import (
	"context"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PushSubscription stores one web-push endpoint per user.
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID string               `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

type PushStore struct {
	coll *mongo.Collection
}

// Save upserts the user's subscription; re-subscribing replaces the old
// endpoint.
func (s *PushStore) Save(ctx context.Context, userID string, sub webpush.Subscription) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"userId": userID, "sub": sub}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *PushStore) Get(ctx context.Context, userID string) (*PushSubscription, error) {
	var sub PushSubscription
	err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *PushStore) Delete(ctx context.Context, userID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
