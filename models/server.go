package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"

	VisibilityListed   = "listed"
	VisibilityUnlisted = "unlisted"
)

// Server is a topical community. Invariant: memberCount always equals
// len(members); joins and leaves mutate both in one atomic update.
type Server struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Privacy     string             `bson:"privacy" json:"privacy"`       // public, private
	Visibility  string             `bson:"visibility" json:"visibility"` // listed, unlisted
	Tags        []string           `bson:"tags" json:"tags"`
	Skills      []string           `bson:"skills" json:"skills"`
	Location    string             `bson:"location" json:"location"`
	Rules       string             `bson:"rules" json:"rules"`
	MinAge      int                `bson:"minAge" json:"minAge"`
	MaxMembers  int                `bson:"maxMembers" json:"maxMembers"` // 0 = unlimited
	Members     []string           `bson:"members" json:"members"`
	MemberCount int                `bson:"memberCount" json:"memberCount"`
	OnlineCount int                `bson:"-" json:"onlineCount"`
	OwnerID     string             `bson:"ownerId" json:"ownerId"`
	InviteCode  string             `bson:"inviteCode,omitempty" json:"-"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
}

func (s *Server) IsMember(userID string) bool {
	for _, m := range s.Members {
		if m == userID {
			return true
		}
	}
	return false
}

func (s *Server) IsFull() bool {
	return s.MaxMembers > 0 && len(s.Members) >= s.MaxMembers
}
