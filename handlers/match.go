package handlers

import (
	"context"
	"net/http"
	"time"

	"homiefinder/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetMatches lists the current user's matches with partner profile data
// attached, newest first.
func GetMatches(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	matches, err := st.Matches.ForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	if len(matches) == 0 {
		c.JSON(http.StatusOK, []map[string]interface{}{})
		return
	}

	var partnerIDs []string
	for _, m := range matches {
		partnerIDs = append(partnerIDs, partnerOf(m, userID))
	}

	partners, err := st.Profiles.ByIDs(ctx, partnerIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matched users"})
		return
	}

	partnerMap := make(map[string]map[string]interface{}, len(partners))
	for _, p := range partners {
		partnerMap[p.ID.Hex()] = map[string]interface{}{
			"id":     p.ID.Hex(),
			"name":   p.Name,
			"avatar": p.Avatar,
			"status": p.Status,
			"bio":    p.Bio,
		}
	}

	response := make([]map[string]interface{}, len(matches))
	for i, m := range matches {
		partnerID := partnerOf(m, userID)
		partner := map[string]interface{}{
			"id":     partnerID,
			"name":   "Unknown User",
			"avatar": fallbackAvatar,
			"status": "offline",
			"bio":    "",
		}
		if p, ok := partnerMap[partnerID]; ok {
			partner = p
		}
		response[i] = map[string]interface{}{
			"id":        m.ID,
			"createdAt": m.CreatedAt,
			"partner":   partner,
		}
	}

	c.JSON(http.StatusOK, response)
}

func partnerOf(m models.Match, userID string) string {
	for _, u := range m.Users {
		if u != userID {
			return u
		}
	}
	return userID
}

// CheckMatch reports whether the current user has matched with the given
// user. Symmetric: either side of the pair gets the same answer.
func CheckMatch(c *gin.Context) {
	otherID := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(otherID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := st.Matches.Exists(ctx, userID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check match"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matched": exists,
		"matchId": models.MatchKey(userID, otherID),
	})
}
