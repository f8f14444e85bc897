package store

import "go.mongodb.org/mongo-driver/mongo"

// Stores bundles every collection-backed store. Constructed once in main
// from the connected database and injected into the handlers package.
type Stores struct {
	Profiles  *ProfileStore
	Swipes    *SwipeStore
	Matches   *MatchStore
	Chats     *ChatStore
	Messages  *MessageStore
	Servers   *ServerStore
	Events    *EventStore
	Favorites *FavoriteStore
	Push      *PushStore
}

func New(db *mongo.Database) *Stores {
	swipes := db.Collection("swipes")
	return &Stores{
		Profiles:  &ProfileStore{coll: db.Collection("users")},
		Swipes:    &SwipeStore{coll: swipes},
		Matches:   &MatchStore{coll: db.Collection("matches"), swipes: swipes},
		Chats:     &ChatStore{coll: db.Collection("chats")},
		Messages:  &MessageStore{coll: db.Collection("messages")},
		Servers:   &ServerStore{coll: db.Collection("servers")},
		Events:    &EventStore{coll: db.Collection("events")},
		Favorites: &FavoriteStore{coll: db.Collection("favorites")},
		Push:      &PushStore{coll: db.Collection("subscriptions")},
	}
}
