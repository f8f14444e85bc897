package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"homiefinder/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordSwipe persists the directional decision and, on a right swipe,
// resolves the match: if the reciprocal right swipe exists, the canonical
// match document and its chat are provisioned. Creation is idempotent on
// the sorted-pair key, so two users swiping each other at the same moment
// converge on the same match and the same chat.
func RecordSwipe(c *gin.Context) {
	var req struct {
		TargetUserID string `json:"targetUserId" binding:"required"`
		Direction    string `json:"direction" binding:"required,oneof=left right"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	if _, err := primitive.ObjectIDFromHex(req.TargetUserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}
	if userID == req.TargetUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot swipe on yourself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := st.Swipes.Record(ctx, userID, req.TargetUserID, req.Direction); err != nil {
		log.Printf("[RecordSwipe] Failed to record swipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record swipe"})
		return
	}

	if req.Direction != models.SwipeRight {
		c.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	mutual, err := st.Matches.CheckMutual(ctx, userID, req.TargetUserID)
	if err != nil {
		log.Printf("[RecordSwipe] Mutual check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for match"})
		return
	}
	if !mutual {
		c.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	matchID, err := st.Matches.Create(ctx, userID, req.TargetUserID)
	if err != nil {
		log.Printf("[RecordSwipe] Match creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create match"})
		return
	}

	lo, hi := models.SortPair(userID, req.TargetUserID)
	chat, err := st.Chats.GetOrCreate(ctx, matchID, []string{lo, hi})
	if err != nil {
		// The match stands; the chat will be provisioned on first open.
		log.Printf("[RecordSwipe] Chat provisioning failed for match %s: %v", matchID, err)
	}

	notifyMatch(ctx, userID, req.TargetUserID, matchID)

	response := gin.H{
		"matched": true,
		"matchId": matchID,
	}
	if chat != nil {
		response["chatId"] = chat.ID
	}
	c.JSON(http.StatusOK, response)
}

// notifyMatch fans the match out over push and the live event hub.
func notifyMatch(ctx context.Context, userID, targetID, matchID string) {
	me, err := st.Profiles.Get(ctx, userID)
	if err != nil || me == nil {
		log.Printf("[notifyMatch] Could not load swiper profile: %v", err)
		return
	}
	partner, err := st.Profiles.Get(ctx, targetID)
	if err != nil || partner == nil {
		log.Printf("[notifyMatch] Could not load partner profile: %v", err)
		return
	}

	SendMatchPush(targetID, me.Name)
	SendMatchPush(userID, partner.Name)

	if wsManager != nil {
		wsManager.SendToUser(targetID, "match_created", map[string]interface{}{
			"matchId": matchID,
			"partner": map[string]interface{}{
				"id":     me.ID.Hex(),
				"name":   me.Name,
				"avatar": me.Avatar,
			},
			"createdAt": time.Now().Unix(),
		})
		wsManager.SendToUser(userID, "match_created", map[string]interface{}{
			"matchId": matchID,
			"partner": map[string]interface{}{
				"id":     partner.ID.Hex(),
				"name":   partner.Name,
				"avatar": partner.Avatar,
			},
			"createdAt": time.Now().Unix(),
		})
	}
}
