package handlers

import (
	"context"
	"log"
	"math"
	"net/http"
	"time"

	"homiefinder/config"
	"homiefinder/discovery"

	"github.com/gin-gonic/gin"
)

// GetDiscoverFeed returns swipe candidates for the current user: all
// visible profiles except their own, limited to the discovery radius when
// the viewer has shared coordinates. Without a location the radius filter
// is skipped and every visible profile comes back.
func GetDiscoverFeed(c *gin.Context) {
	log.Printf("[GetDiscoverFeed] Request received")

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	viewer, err := st.Profiles.Get(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch current user"})
		return
	}
	if viewer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	profiles, err := st.Profiles.AllExcept(ctx, userID)
	if err != nil {
		log.Printf("[GetDiscoverFeed] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	var viewerLat, viewerLon *float64
	if viewer.HasCoordinates() {
		viewerLat, viewerLon = viewer.Latitude, viewer.Longitude
	} else {
		log.Printf("[GetDiscoverFeed] Viewer has no location data, skipping radius filter")
	}

	radius := config.Envs.DiscoveryRadiusKm
	candidates := discovery.Filter(profiles, userID, viewerLat, viewerLon, radius)

	log.Printf("[GetDiscoverFeed] %d of %d profiles remain after filtering", len(candidates), len(profiles))

	response := make([]map[string]interface{}, 0, len(candidates))
	for _, p := range candidates {
		entry := map[string]interface{}{
			"id":        p.ID.Hex(),
			"name":      p.Name,
			"avatar":    p.Avatar,
			"status":    p.Status,
			"bio":       p.Bio,
			"interests": p.Interests,
			"skills":    p.Skills,
			"location":  p.Location,
		}
		if viewerLat != nil && p.HasCoordinates() {
			km := discovery.HaversineKm(*viewerLat, *viewerLon, *p.Latitude, *p.Longitude)
			entry["distance"] = math.Round(km * 1000) // meters
		}
		response = append(response, entry)
	}

	c.JSON(http.StatusOK, response)
}
