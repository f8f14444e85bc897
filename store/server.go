package store

import (
	"context"
	"time"

	"homiefinder/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServerStore struct {
	coll *mongo.Collection
}

// Create writes a new community server with the owner as its only member.
// Private servers get a generated invite code that join requests must
// present.
func (s *ServerStore) Create(ctx context.Context, ownerID string, srv *models.Server) error {
	srv.ID = primitive.NewObjectID()
	srv.OwnerID = ownerID
	srv.Members = []string{ownerID}
	srv.MemberCount = 1
	srv.CreatedAt = time.Now().Unix()
	if srv.Privacy == models.PrivacyPrivate {
		srv.InviteCode = uuid.NewString()
	}

	_, err := s.coll.InsertOne(ctx, srv)
	return err
}

// Join adds the user in a single atomic update: the filter rejects
// existing members and full servers, and the update grows the member list
// and count together. Concurrent joins cannot drift the count from the
// list length. Returns false when nothing changed (already a member, full,
// or gone).
func (s *ServerStore) Join(ctx context.Context, serverID primitive.ObjectID, userID string, maxMembers int) (bool, error) {
	filter := bson.M{
		"_id":     serverID,
		"members": bson.M{"$ne": userID},
	}
	if maxMembers > 0 {
		filter["$expr"] = bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, maxMembers}}
	}

	result, err := s.coll.UpdateOne(ctx, filter, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$inc":      bson.M{"memberCount": 1},
	})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// RemoveMember takes a user out of the server, shrinking list and count
// together. Returns false when the user was not a member.
func (s *ServerStore) RemoveMember(ctx context.Context, serverID primitive.ObjectID, userID string) (bool, error) {
	result, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": serverID, "members": userID},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$inc":  bson.M{"memberCount": -1},
		},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// Delete removes the server, but only when the caller owns it.
func (s *ServerStore) Delete(ctx context.Context, serverID primitive.ObjectID, ownerID string) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": serverID, "ownerId": ownerID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}

func (s *ServerStore) Get(ctx context.Context, serverID primitive.ObjectID) (*models.Server, error) {
	var srv models.Server
	err := s.coll.FindOne(ctx, bson.M{"_id": serverID}).Decode(&srv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

// ListAll returns every server document; category and membership filtering
// happens client-side on the full list.
func (s *ServerStore) ListAll(ctx context.Context) ([]models.Server, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var servers []models.Server
	if err := cursor.All(ctx, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// ByIDs fetches a batch of servers in one query.
func (s *ServerStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Server, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var servers []models.Server
	if err := cursor.All(ctx, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

func (s *ServerStore) UpdateSettings(ctx context.Context, serverID primitive.ObjectID, ownerID string, fields bson.M) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	result, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": serverID, "ownerId": ownerID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}
