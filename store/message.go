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

type MessageStore struct {
	coll *mongo.Collection
}

// Append writes a message with a server-assigned timestamp and returns the
// stored document.
func (s *MessageStore) Append(ctx context.Context, chatID, senderID, content, msgType string) (*models.Message, error) {
	msg := models.Message{
		ID:        primitive.NewObjectID(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Type:      msgType,
		IsRead:    false,
		CreatedAt: time.Now().Unix(),
	}

	if _, err := s.coll.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns the full thread ordered ascending by timestamp.
func (s *MessageStore) List(ctx context.Context, chatID string) ([]models.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"chatId": chatID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}

	// The query sorts server-side; this re-sort pins the ordering contract
	// locally so callers never depend on index behavior alone.
	models.SortMessages(msgs)
	return msgs, nil
}

// MarkRead flags every unread message from the reader's partner in the
// chat. Returns the number of messages updated.
func (s *MessageStore) MarkRead(ctx context.Context, chatID, readerID string) (int64, error) {
	result, err := s.coll.UpdateMany(
		ctx,
		bson.M{
			"chatId":   chatID,
			"senderId": bson.M{"$ne": readerID},
			"isRead":   false,
		},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *MessageStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var msg models.Message
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
