package handlers

import (
	"homiefinder/cache"
	"homiefinder/store"
	"homiefinder/websocket"
)

// Common constants and variables shared across all handler files
const fallbackAvatar = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"

var (
	st        *store.Stores
	wsManager *websocket.Manager
	presence  *cache.Presence
)

// SetStores injects the store layer. Must be called before the router
// serves traffic.
func SetStores(s *store.Stores) {
	st = s
}

// SetWebSocketManager sets the live-event hub used for chat delivery.
func SetWebSocketManager(manager *websocket.Manager) {
	wsManager = manager
}

// SetPresence sets the Redis presence tracker; nil disables online counts.
func SetPresence(p *cache.Presence) {
	presence = p
}
