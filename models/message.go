package models

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MessageText  = "text"
	MessageImage = "image"
	MessageFile  = "file"
)

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    string             `bson:"chatId" json:"chatId"`
	SenderID  string             `bson:"senderId" json:"senderId"`
	Content   string             `bson:"content" json:"content"`
	Type      string             `bson:"type" json:"type"` // text, image, file
	IsRead    bool               `bson:"isRead" json:"isRead"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

func ValidMessageType(t string) bool {
	switch t {
	case MessageText, MessageImage, MessageFile:
		return true
	}
	return false
}

// SortMessages orders a thread ascending by timestamp. Stable so that
// messages sharing a timestamp keep their insertion order.
func SortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt < msgs[j].CreatedAt
	})
}
