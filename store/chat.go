package store

import (
	"context"
	"time"

	"homiefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatStore struct {
	coll *mongo.Collection
}

// GetOrCreate returns the single chat for a match, creating it only if
// absent. The chat shares the match id, so repeated match triggers cannot
// produce duplicate threads.
func (s *ChatStore) GetOrCreate(ctx context.Context, matchID string, participants []string) (*models.Chat, error) {
	now := time.Now().Unix()
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": matchID},
		bson.M{"$setOnInsert": bson.M{
			"participants":  participants,
			"lastMessage":   "",
			"lastMessageAt": now,
			"createdAt":     now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, matchID)
}

func (s *ChatStore) Get(ctx context.Context, chatID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.coll.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ForUser lists the user's chats, most recently active first.
func (s *ChatStore) ForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"participants": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (s *ChatStore) SetLastMessage(ctx context.Context, chatID, content string, at int64) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{
			"lastMessage":   content,
			"lastMessageAt": at,
		}},
	)
	return err
}
