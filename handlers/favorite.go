package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddFavorite bookmarks a server for the current user.
func AddFavorite(c *gin.Context) {
	var req struct {
		ServerID string `json:"serverId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serverID, err := primitive.ObjectIDFromHex(req.ServerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, err := st.Servers.Get(ctx, serverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if srv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Server not found"})
		return
	}

	added, err := st.Favorites.Add(ctx, userID, serverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}
	if !added {
		c.JSON(http.StatusConflict, gin.H{"error": "Already favorited"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Favorite added"})
}

func RemoveFavorite(c *gin.Context) {
	var req struct {
		ServerID string `json:"serverId" binding:"required"`
	}

	// Query parameter wins, JSON body is the fallback
	serverIDHex := c.Query("serverId")
	if serverIDHex == "" {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "serverId is required"})
			return
		}
		serverIDHex = req.ServerID
	}

	serverID, err := primitive.ObjectIDFromHex(serverIDHex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server ID"})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	removed, err := st.Favorites.Remove(ctx, userID, serverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

// GetFavorites returns the user's bookmarked servers, newest first, with
// the server summary attached. Bookmarks whose server was deleted still
// appear, flagged as unavailable, so the client can offer cleanup.
func GetFavorites(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	favorites, err := st.Favorites.ForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	if len(favorites) == 0 {
		c.JSON(http.StatusOK, []map[string]interface{}{})
		return
	}

	var serverIDs []primitive.ObjectID
	for _, f := range favorites {
		serverIDs = append(serverIDs, f.ServerID)
	}

	servers, err := st.Servers.ByIDs(ctx, serverIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch servers"})
		return
	}

	serverMap := make(map[primitive.ObjectID]map[string]interface{}, len(servers))
	for _, srv := range servers {
		serverMap[srv.ID] = map[string]interface{}{
			"id":          srv.ID.Hex(),
			"name":        srv.Name,
			"description": srv.Description,
			"category":    srv.Category,
			"privacy":     srv.Privacy,
			"memberCount": srv.MemberCount,
			"isMember":    srv.IsMember(userID),
		}
	}

	response := make([]map[string]interface{}, len(favorites))
	for i, f := range favorites {
		entry := map[string]interface{}{
			"id":        f.ID.Hex(),
			"serverId":  f.ServerID.Hex(),
			"createdAt": f.CreatedAt,
			"available": false,
		}
		if srv, ok := serverMap[f.ServerID]; ok {
			entry["server"] = srv
			entry["available"] = true
		}
		response[i] = entry
	}

	c.JSON(http.StatusOK, response)
}
