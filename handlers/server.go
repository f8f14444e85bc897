package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"homiefinder/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateServerRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Privacy     string   `json:"privacy" binding:"required,oneof=public private"`
	Visibility  string   `json:"visibility" binding:"required,oneof=listed unlisted"`
	Tags        []string `json:"tags"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location"`
	Rules       string   `json:"rules"`
	MinAge      int      `json:"minAge" binding:"gte=0"`
	MaxMembers  int      `json:"maxMembers" binding:"gte=0"`
}

var (
	errAlreadyMember = errors.New("already a member")
	errServerFull    = errors.New("server is full")
	errTooYoung      = errors.New("below the minimum age")
	errBadInvite     = errors.New("invalid invite code")
)

// validateJoin applies the membership policy before the atomic join:
// duplicate membership, capacity, minimum age, and the invite code for
// private servers.
func validateJoin(srv *models.Server, user *models.User, inviteCode string, now time.Time) error {
	if srv.IsMember(user.ID.Hex()) {
		return errAlreadyMember
	}
	if srv.IsFull() {
		return errServerFull
	}
	if srv.MinAge > 0 && ageFromBirthDate(user.BirthDate, now) < srv.MinAge {
		return errTooYoung
	}
	if srv.Privacy == models.PrivacyPrivate && inviteCode != srv.InviteCode {
		return errBadInvite
	}
	return nil
}

// ageFromBirthDate returns whole years between the unix birth date and
// now. Zero birth date means unknown age, reported as 0.
func ageFromBirthDate(birthDate int64, now time.Time) int {
	if birthDate == 0 {
		return 0
	}
	born := time.Unix(birthDate, 0).UTC()
	now = now.UTC()
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func CreateServer(c *gin.Context) {
	var req CreateServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv := models.Server{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Privacy:     req.Privacy,
		Visibility:  req.Visibility,
		Tags:        req.Tags,
		Skills:      req.Skills,
		Location:    req.Location,
		Rules:       req.Rules,
		MinAge:      req.MinAge,
		MaxMembers:  req.MaxMembers,
	}
	if srv.Tags == nil {
		srv.Tags = []string{}
	}
	if srv.Skills == nil {
		srv.Skills = []string{}
	}

	if err := st.Servers.Create(ctx, userID, &srv); err != nil {
		log.Printf("[CreateServer] Insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create server"})
		return
	}

	response := gin.H{
		"id":      srv.ID.Hex(),
		"message": "Server created",
	}
	if srv.InviteCode != "" {
		// Only the creation response carries the invite code.
		response["inviteCode"] = srv.InviteCode
	}
	c.JSON(http.StatusCreated, response)
}

// ListServers returns every server; the client filters by category,
// membership or visibility on the full list. Online counts come from the
// presence cache.
func ListServers(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	servers, err := st.Servers.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch servers"})
		return
	}

	response := make([]map[string]interface{}, len(servers))
	for i, srv := range servers {
		response[i] = map[string]interface{}{
			"id":          srv.ID.Hex(),
			"name":        srv.Name,
			"description": srv.Description,
			"category":    srv.Category,
			"privacy":     srv.Privacy,
			"visibility":  srv.Visibility,
			"tags":        srv.Tags,
			"skills":      srv.Skills,
			"location":    srv.Location,
			"rules":       srv.Rules,
			"minAge":      srv.MinAge,
			"maxMembers":  srv.MaxMembers,
			"memberCount": srv.MemberCount,
			"onlineCount": presence.OnlineCount(ctx, srv.Members),
			"ownerId":     srv.OwnerID,
			"isMember":    srv.IsMember(userID),
			"isOwner":     srv.OwnerID == userID,
			"createdAt":   srv.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}

func GetServer(c *gin.Context) {
	serverID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, err := st.Servers.Get(ctx, serverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch server"})
		return
	}
	if srv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
		return
	}

	srv.OnlineCount = presence.OnlineCount(ctx, srv.Members)
	c.JSON(http.StatusOK, srv)
}

func JoinServer(c *gin.Context) {
	serverID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	var req struct {
		InviteCode string `json:"inviteCode"`
	}
	// Body is optional for public servers
	_ = c.ShouldBindJSON(&req)

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, err := st.Servers.Get(ctx, serverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch server"})
		return
	}
	if srv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
		return
	}

	user, err := st.Profiles.Get(ctx, userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	if err := validateJoin(srv, user, req.InviteCode, time.Now()); err != nil {
		status := http.StatusConflict
		if err == errBadInvite || err == errTooYoung {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	// The atomic update re-checks membership and capacity, so a racing
	// join cannot slip past the validation above.
	joined, err := st.Servers.Join(ctx, serverID, userID, srv.MaxMembers)
	if err != nil {
		log.Printf("[JoinServer] Update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join server"})
		return
	}
	if !joined {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not join server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined server"})
}

func LeaveServer(c *gin.Context) {
	serverID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	left, err := st.Servers.RemoveMember(ctx, serverID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave server"})
		return
	}
	if !left {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left server"})
}

// RemoveServerMember lets the owner kick a member.
func RemoveServerMember(c *gin.Context) {
	serverID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	var req struct {
		MemberID string `json:"memberId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, err := st.Servers.Get(ctx, serverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch server"})
		return
	}
	if srv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
		return
	}
	if srv.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can remove members"})
		return
	}
	if req.MemberID == srv.OwnerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Owner cannot be removed"})
		return
	}

	removed, err := st.Servers.RemoveMember(ctx, serverID, req.MemberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func DeleteServer(c *gin.Context) {
	serverID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deleted, err := st.Servers.Delete(ctx, serverID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete server"})
		return
	}
	if !deleted {
		c.JSON(http.StatusForbidden, gin.H{"error": "Server not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Server deleted"})
}

// UpdateServerSettings lets the owner edit the mutable server fields.
func UpdateServerSettings(c *gin.Context) {
	serverID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Rules       string `json:"rules"`
		Visibility  string `json:"visibility" binding:"omitempty,oneof=listed unlisted"`
		MinAge      *int   `json:"minAge"`
		MaxMembers  *int   `json:"maxMembers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Rules != "" {
		fields["rules"] = req.Rules
	}
	if req.Visibility != "" {
		fields["visibility"] = req.Visibility
	}
	if req.MinAge != nil {
		fields["minAge"] = *req.MinAge
	}
	if req.MaxMembers != nil {
		fields["maxMembers"] = *req.MaxMembers
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	updated, err := st.Servers.UpdateSettings(ctx, serverID, userID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update server"})
		return
	}
	if !updated {
		c.JSON(http.StatusForbidden, gin.H{"error": "Server not found or not owned by you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Server updated"})
}
