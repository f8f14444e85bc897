package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"homiefinder/config"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
)

// GetVapidPublicKey hands the browser the key it needs to subscribe.
func GetVapidPublicKey(c *gin.Context) {
	publicKey := config.Envs.VapidPublicKey
	if publicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"publicKey": publicKey})
}

func SubscribePush(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sub := webpush.Subscription{
		Endpoint: req.Endpoint,
		Keys: webpush.Keys{
			P256dh: req.Keys.P256dh,
			Auth:   req.Keys.Auth,
		},
	}

	if err := st.Push.Save(ctx, userID, sub); err != nil {
		log.Printf("Failed to save subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	log.Printf("Push subscription saved for user: %s", userID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Push subscription saved",
		"userId":  userID,
	})
}

func UnsubscribePush(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := st.Push.Delete(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push subscription removed"})
}

// SendPushNotification delivers a web push to one user in the background.
// Expired subscriptions (410) are pruned on the spot.
func SendPushNotification(userID, title, body, icon string) {
	if config.Envs.VapidPrivateKey == "" {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic in push notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sub, err := st.Push.Get(ctx, userID)
		if err != nil {
			log.Printf("Failed to find subscription for user %s: %v", userID, err)
			return
		}
		if sub == nil {
			return // No subscription
		}

		payload := map[string]interface{}{
			"title": title,
			"body":  body,
			"icon":  icon,
			"data": map[string]interface{}{
				"url":       "/chats",
				"timestamp": time.Now().Unix(),
			},
		}

		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Failed to marshal push payload: %v", err)
			return
		}

		resp, err := webpush.SendNotification(payloadBytes, &sub.Sub, &webpush.Options{
			Subscriber:      config.Envs.VapidSubscriber,
			VAPIDPublicKey:  config.Envs.VapidPublicKey,
			VAPIDPrivateKey: config.Envs.VapidPrivateKey,
			TTL:             30,
		})

		if err != nil {
			log.Printf("Failed to send push notification to user %s: %v", userID, err)

			if resp != nil {
				if resp.StatusCode == http.StatusGone {
					log.Printf("Push subscription expired for user %s, deleting...", userID)
					if delErr := st.Push.Delete(ctx, userID); delErr != nil {
						log.Printf("Failed to delete expired subscription: %v", delErr)
					}
				}
				resp.Body.Close()
			}
			return
		}

		resp.Body.Close()
	}()
}

// truncateMessage cuts a preview down to at most limit runes, never
// splitting a multi-byte character.
func truncateMessage(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// SendMessagePush notifies a participant about a new message.
func SendMessagePush(userID, messageContent, senderName string) {
	if senderName == "" {
		senderName = "Someone"
	}

	title := senderName + " sent a message"
	body := truncateMessage(messageContent, 100)

	SendPushNotification(userID, title, body, "")
}

// SendMatchPush notifies a user about a new match.
func SendMatchPush(userID, matchedUserName string) {
	title := "New match! 🎉"
	body := "You matched with " + matchedUserName
	SendPushNotification(userID, title, body, "")
}
