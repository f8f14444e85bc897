package routes

import (
	"time"

	"homiefinder/handlers"
	"homiefinder/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "HomieFinder API is running",
			"time":    time.Now().Unix(),
			"ws":      "WebSocket available at /ws",
		})
	})

	// CORS configuration with WebSocket support
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:5500", "http://127.0.0.1:5500", "http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Auth endpoints get a tight limiter; swiping gets a looser one so a
	// burst of decisions does not lock a user out of the rest of the API.
	authLimiter := middleware.NewIPRateLimiter(10, time.Minute)
	swipeLimiter := middleware.NewIPRateLimiter(120, time.Minute)

	// Public routes (no auth required)
	router.POST("/api/signup", middleware.RateLimit(authLimiter), handlers.Signup)
	router.POST("/api/login", middleware.RateLimit(authLimiter), handlers.Login)
	router.GET("/api/vapid-public-key", handlers.GetVapidPublicKey)

	// Google OAuth routes
	router.GET("/api/google/auth-url", handlers.GetGoogleAuthURL)
	router.GET("/api/google/callback", handlers.GoogleOAuthCallback)
	router.POST("/api/google-auth", middleware.RateLimit(authLimiter), handlers.GoogleAuthWithCredential)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	// Profile
	protected.GET("/me", handlers.GetMyProfile)
	protected.PUT("/me", handlers.UpdateMyProfile)
	protected.GET("/user/:id", handlers.GetUser)
	protected.PUT("/me/status", handlers.UpdateUserStatus)
	protected.POST("/upload-photo", handlers.UploadPhoto)

	// Discovery
	protected.GET("/discover", handlers.GetDiscoverFeed)

	// Swipes and matches
	protected.POST("/swipe", middleware.RateLimit(swipeLimiter), handlers.RecordSwipe)
	protected.GET("/matches", handlers.GetMatches)
	protected.GET("/matches/check/:id", handlers.CheckMatch)

	// Chats
	protected.GET("/chats", handlers.GetChatList)
	protected.POST("/chats", handlers.OpenChat)
	protected.GET("/chats/:id", handlers.GetChat)

	// Messages
	protected.POST("/message", handlers.SendMessage)
	protected.GET("/messages/:chatId", handlers.GetMessages)
	protected.POST("/messages/:id/read", handlers.MarkAsRead)

	// Community servers
	protected.POST("/servers", handlers.CreateServer)
	protected.GET("/servers", handlers.ListServers)
	protected.GET("/servers/:id", handlers.GetServer)
	protected.PUT("/servers/:id", handlers.UpdateServerSettings)
	protected.DELETE("/servers/:id", handlers.DeleteServer)
	protected.POST("/servers/:id/join", handlers.JoinServer)
	protected.POST("/servers/:id/leave", handlers.LeaveServer)
	protected.POST("/servers/:id/kick", handlers.RemoveServerMember)

	// Server favorites
	protected.POST("/favorite", handlers.AddFavorite)
	protected.DELETE("/favorite", handlers.RemoveFavorite)
	protected.GET("/favorites", handlers.GetFavorites)

	// Events
	protected.POST("/events", handlers.CreateEvent)
	protected.GET("/events", handlers.GetEvents)
	protected.GET("/my/events", handlers.GetMyEvents)

	// Push subscriptions
	protected.POST("/subscribe", handlers.SubscribePush)
	protected.DELETE("/subscribe", handlers.UnsubscribePush)

	// Catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
