package handlers

import (
	"context"
	"net/http"
	"time"

	"homiefinder/models"

	"github.com/gin-gonic/gin"
)

// partnerSummary resolves the other participant's display data with
// fallbacks, so a chat never renders with a null partner.
func partnerSummary(ctx context.Context, chat *models.Chat, userID string) map[string]interface{} {
	partner := map[string]interface{}{
		"id":     "",
		"name":   "Unknown",
		"avatar": fallbackAvatar,
		"status": "offline",
	}

	for _, p := range chat.Participants {
		if p == userID {
			continue
		}
		partner["id"] = p
		user, err := st.Profiles.Get(ctx, p)
		if err != nil || user == nil {
			break
		}
		if user.Name != "" {
			partner["name"] = user.Name
		}
		if user.Avatar != "" {
			partner["avatar"] = user.Avatar
		}
		if user.Status != "" {
			partner["status"] = user.Status
		}
		break
	}
	return partner
}

func GetChatList(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chats, err := st.Chats.ForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chats"})
		return
	}

	response := make([]map[string]interface{}, len(chats))
	for i, chat := range chats {
		response[i] = map[string]interface{}{
			"id":            chat.ID,
			"lastMessage":   chat.LastMessage,
			"lastMessageAt": chat.LastMessageAt,
			"partner":       partnerSummary(ctx, &chat, userID),
		}
	}

	c.JSON(http.StatusOK, response)
}

// OpenChat returns the single chat for a match, creating it only if
// absent. The caller must be part of the match.
func OpenChat(c *gin.Context) {
	var req struct {
		MatchID string `json:"matchId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match, err := st.Matches.ForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var participants []string
	for _, m := range match {
		if m.ID == req.MatchID {
			participants = m.Users
			break
		}
	}
	if participants == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No such match for this user"})
		return
	}

	chat, err := st.Chats.GetOrCreate(ctx, req.MatchID, participants)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open chat"})
		return
	}

	chatData := map[string]interface{}{
		"id":            chat.ID,
		"lastMessageAt": chat.LastMessageAt,
		"partner":       partnerSummary(ctx, chat, userID),
	}

	if wsManager != nil {
		wsManager.BroadcastChatCreated(chatData)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   chat.ID,
		"chat": chatData,
	})
}

func GetChat(c *gin.Context) {
	chatID := c.Param("id")
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chat, err := st.Chats.Get(ctx, chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat"})
		return
	}
	if chat == nil || !chat.HasParticipant(userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found or access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            chat.ID,
		"lastMessage":   chat.LastMessage,
		"lastMessageAt": chat.LastMessageAt,
		"createdAt":     chat.CreatedAt,
		"partner":       partnerSummary(ctx, chat, userID),
	})
}
