package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"homiefinder/models"

	"github.com/gin-gonic/gin"
)

func CreateEvent(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Date        string `json:"date" binding:"required"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Host:        userID,
	}

	if err := st.Events.Create(ctx, &event); err != nil {
		log.Printf("[CreateEvent] Insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      event.ID.Hex(),
		"message": "Event created",
	})
}

// GetEvents lists every event, newest first, with host display data
// attached.
func GetEvents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := st.Events.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	if len(events) == 0 {
		c.JSON(http.StatusOK, []map[string]interface{}{})
		return
	}

	var hostIDs []string
	seen := make(map[string]bool)
	for _, e := range events {
		if !seen[e.Host] {
			seen[e.Host] = true
			hostIDs = append(hostIDs, e.Host)
		}
	}

	hosts, err := st.Profiles.ByIDs(ctx, hostIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hosts"})
		return
	}

	hostMap := make(map[string]map[string]interface{}, len(hosts))
	for _, h := range hosts {
		hostMap[h.ID.Hex()] = map[string]interface{}{
			"id":     h.ID.Hex(),
			"name":   h.Name,
			"avatar": h.Avatar,
		}
	}

	response := make([]map[string]interface{}, len(events))
	for i, e := range events {
		host, ok := hostMap[e.Host]
		if !ok {
			host = map[string]interface{}{
				"id":     e.Host,
				"name":   "Unknown",
				"avatar": fallbackAvatar,
			}
		}
		response[i] = map[string]interface{}{
			"id":          e.ID.Hex(),
			"title":       e.Title,
			"description": e.Description,
			"date":        e.Date,
			"location":    e.Location,
			"host":        host,
			"createdAt":   e.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}

func GetMyEvents(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := st.Events.ForHost(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	response := make([]map[string]interface{}, len(events))
	for i, e := range events {
		response[i] = map[string]interface{}{
			"id":          e.ID.Hex(),
			"title":       e.Title,
			"description": e.Description,
			"date":        e.Date,
			"location":    e.Location,
			"createdAt":   e.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}
