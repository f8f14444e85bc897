package models

// Chat is the single message thread for a match. Its key is the match id,
// so provisioning is create-if-absent by construction.
type Chat struct {
	ID            string   `bson:"_id" json:"id"`
	Participants  []string `bson:"participants" json:"participants"`
	LastMessage   string   `bson:"lastMessage" json:"lastMessage"`
	LastMessageAt int64    `bson:"lastMessageAt" json:"lastMessageAt"`
	CreatedAt     int64    `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
