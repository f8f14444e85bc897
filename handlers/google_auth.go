package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"homiefinder/config"
	"homiefinder/middleware"
	"homiefinder/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var googleOAuthConfig *oauth2.Config

func init() {
	clientID := config.Envs.GoogleClientID
	clientSecret := config.Envs.GoogleSecret

	if clientID != "" && clientSecret != "" {
		googleOAuthConfig = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "http://localhost:" + config.Envs.Port + "/api/google/callback",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
		log.Println("✅ Google OAuth configured successfully")
	} else {
		log.Println("⚠️  Google OAuth not configured - set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}
}

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type GoogleAuthRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// generateUsernameFromEmail derives a unique handle from the local part
// of the address.
func generateUsernameFromEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "user_" + primitive.NewObjectID().Hex()[:8]
	}
	local := strings.ToLower(strings.ReplaceAll(email[:at], ".", ""))
	return local + "_" + primitive.NewObjectID().Hex()[:4]
}

// GoogleOAuthCallback handles the redirect leg of the traditional OAuth
// flow.
func GoogleOAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code missing"})
		return
	}

	if googleOAuthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	ctx := context.Background()
	token, err := googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		log.Printf("❌ Google OAuth token exchange failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	client := googleOAuthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Printf("❌ Failed to get user info from Google: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user information"})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read user information"})
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user information"})
		return
	}

	log.Printf("✅ Google user info retrieved: %s (%s)", googleUser.Email, googleUser.Name)
	handleGoogleUser(c, googleUser)
}

// GoogleAuthWithCredential handles the Google Identity Services flow where
// the browser posts the ID token directly.
func GoogleAuthWithCredential(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// The credential is Google's signed ID token. Verification against
	// Google's keys happens at the proxy layer, so here we only decode
	// the claims.
	token, _, err := new(jwt.Parser).ParseUnverified(req.Credential, jwt.MapClaims{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google credential"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google credential"})
		return
	}

	googleUser := GoogleUserInfo{
		ID:      getStringClaim(claims, "sub"),
		Email:   getStringClaim(claims, "email"),
		Name:    getStringClaim(claims, "name"),
		Picture: getStringClaim(claims, "picture"),
	}

	if googleUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email not provided by Google"})
		return
	}

	log.Printf("✅ Google credential parsed: %s (%s)", googleUser.Email, googleUser.Name)
	handleGoogleUser(c, googleUser)
}

func getStringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// handleGoogleUser signs the Google account in, creating the profile on
// first contact.
func handleGoogleUser(c *gin.Context, googleUser GoogleUserInfo) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := st.Profiles.GetByEmail(ctx, googleUser.Email)
	if err != nil {
		log.Printf("❌ Database error checking Google user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	isNewUser := user == nil
	if isNewUser {
		log.Printf("📝 Creating new user from Google: %s", googleUser.Email)
		created := createUserFromGoogle(googleUser)
		if err := st.Profiles.Insert(ctx, &created); err != nil {
			log.Printf("❌ Failed to insert Google user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
			return
		}
		user = &created
		log.Printf("✅ New Google user created: %s (ID: %s)", googleUser.Email, user.ID.Hex())
	} else {
		log.Printf("📝 Existing Google user logging in: %s", googleUser.Email)

		fields := bson.M{
			"lastSeen":     time.Now().Unix(),
			"authProvider": "google",
		}
		if user.GoogleID == nil && googleUser.ID != "" {
			fields["googleId"] = googleUser.ID
		}
		if (user.Avatar == "" || user.Avatar == fallbackAvatar) && googleUser.Picture != "" {
			fields["avatar"] = googleUser.Picture
			user.Avatar = googleUser.Picture
		}

		if err := st.Profiles.Set(ctx, user.ID.Hex(), fields); err != nil {
			log.Printf("⚠️ Failed to update user last seen: %v", err)
		}
	}

	tokenString, expires, err := middleware.IssueToken(user.ID.Hex())
	if err != nil {
		log.Printf("❌ Failed to generate JWT token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}

	if presence != nil {
		presence.MarkOnline(ctx, user.ID.Hex())
	}

	// Onboarding is complete once the profile carries a real name and at
	// least one skill or interest.
	hasCompletedOnboarding := user.Name != "" && user.Name != user.Username &&
		(len(user.Skills) > 0 || len(user.Interests) > 0)

	log.Printf("✅ Google authentication successful for: %s", googleUser.Email)

	c.JSON(http.StatusOK, gin.H{
		"token":                  tokenString,
		"userId":                 user.ID.Hex(),
		"email":                  user.Email,
		"username":               user.Username,
		"avatar":                 user.Avatar,
		"name":                   user.Name,
		"isNewUser":              isNewUser,
		"hasCompletedOnboarding": hasCompletedOnboarding,
		"message":                "Authentication successful",
		"expires":                expires.Unix(),
	})
}

func createUserFromGoogle(googleUser GoogleUserInfo) models.User {
	username := generateUsernameFromEmail(googleUser.Email)

	avatar := googleUser.Picture
	if avatar == "" {
		avatar = fallbackAvatar
	}

	name := googleUser.Name
	if name == "" {
		if googleUser.GivenName != "" || googleUser.FamilyName != "" {
			name = strings.TrimSpace(googleUser.GivenName + " " + googleUser.FamilyName)
		} else {
			name = username
		}
	}

	visible := true
	return models.User{
		ID:           primitive.NewObjectID(),
		Email:        googleUser.Email,
		PasswordHash: nil,
		AuthProvider: "google",
		GoogleID:     &googleUser.ID,
		CreatedAt:    time.Now().Unix(),
		LastSeen:     time.Now().Unix(),
		Username:     username,
		Name:         name,
		Avatar:       avatar,
		Interests:    []string{},
		Skills:       []string{},
		Status:       "offline",
		Visible:      &visible,
	}
}

// GetGoogleAuthURL starts the traditional OAuth flow.
func GetGoogleAuthURL(c *gin.Context) {
	if googleOAuthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	state := primitive.NewObjectID().Hex()
	url := googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.JSON(http.StatusOK, gin.H{"url": url})
}
