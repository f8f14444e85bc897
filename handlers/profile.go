package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"homiefinder/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ProfileUpdate carries the merge-set payload. Only provided fields are
// written; the store never validates, so required-field checks live here.
type ProfileUpdate struct {
	Name      string   `json:"name" form:"name"`
	Username  string   `json:"username" form:"username"`
	BirthDate int64    `json:"birthDate,omitempty" form:"birthDate"`
	Bio       string   `json:"bio" form:"bio"`
	About     string   `json:"about" form:"about"`
	Interests []string `json:"interests" form:"interests"`
	Skills    []string `json:"skills" form:"skills"`
	Location  string   `json:"location" form:"location"`
	Latitude  *float64 `json:"latitude,omitempty" form:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" form:"longitude"`
	Visible   *bool    `json:"visible,omitempty" form:"visible"`
	DID       string   `json:"did" form:"did"`
	Status    string   `json:"status" form:"status"`
}

// GetUser always answers 200 with fallback data for missing users, so a
// stale id in someone's match list never breaks their view.
func GetUser(c *gin.Context) {
	userIDStr := c.Param("id")
	log.Printf("[GetUser] Request for user ID: %s", userIDStr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := st.Profiles.Get(ctx, userIDStr)
	if err != nil {
		log.Printf("[GetUser] Lookup failed for %s: %v", userIDStr, err)
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{
			"id":        userIDStr,
			"name":      "Unknown User",
			"avatar":    fallbackAvatar,
			"status":    "offline",
			"bio":       "",
			"about":     "",
			"interests": []string{},
			"skills":    []string{},
			"location":  "",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID.Hex(),
		"name":      user.Name,
		"username":  user.Username,
		"avatar":    user.Avatar,
		"coverImg":  user.CoverImg,
		"status":    user.Status,
		"bio":       user.Bio,
		"about":     user.About,
		"interests": user.Interests,
		"skills":    user.Skills,
		"location":  user.Location,
		"lastSeen":  user.LastSeen,
	})
}

func GetMyProfile(c *gin.Context) {
	userID := c.GetString("userId")
	log.Printf("[GetMyProfile] Request received for userID: %s", userID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := st.Profiles.Get(ctx, userID)
	if err != nil {
		log.Printf("[GetMyProfile] ERROR: Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database error",
			"code":    "DB_ERROR",
			"message": "Failed to fetch profile from database",
		})
		return
	}
	if user == nil {
		log.Printf("[GetMyProfile] ERROR: User not found: %s", userID)
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Profile not found",
			"code":    "NOT_FOUND",
			"message": "User profile does not exist",
		})
		return
	}

	// Ensure user has basic fields
	if user.Avatar == "" {
		user.Avatar = fallbackAvatar
	}
	if user.Status == "" {
		user.Status = "offline"
	}
	if user.Interests == nil {
		user.Interests = []string{}
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID.Hex(),
		"email":     user.Email,
		"name":      user.Name,
		"username":  user.Username,
		"avatar":    user.Avatar,
		"coverImg":  user.CoverImg,
		"status":    user.Status,
		"bio":       user.Bio,
		"about":     user.About,
		"interests": user.Interests,
		"skills":    user.Skills,
		"location":  user.Location,
		"latitude":  user.Latitude,
		"longitude": user.Longitude,
		"visible":   user.IsVisible(),
		"did":       user.DID,
		"birthDate": user.BirthDate,
		"createdAt": user.CreatedAt,
		"lastSeen":  user.LastSeen,
	})
}

func UpdateMyProfile(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var data ProfileUpdate

	contentType := c.ContentType()
	if contentType == "application/json" {
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
			return
		}
	} else {
		if err := c.Request.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
			return
		}
		if err := c.ShouldBind(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
			return
		}
	}

	fields := bson.M{}
	if data.Name != "" {
		fields["name"] = data.Name
	}
	if data.Username != "" {
		fields["username"] = data.Username
	}
	if data.BirthDate != 0 {
		fields["birthDate"] = data.BirthDate
	}
	if data.Bio != "" {
		fields["bio"] = data.Bio
	}
	if data.About != "" {
		fields["about"] = data.About
	}
	if len(data.Interests) > 0 {
		fields["interests"] = data.Interests
	}
	if len(data.Skills) > 0 {
		fields["skills"] = data.Skills
	}
	if data.Location != "" {
		fields["location"] = data.Location
	}
	if data.Latitude != nil {
		fields["latitude"] = *data.Latitude
	}
	if data.Longitude != nil {
		fields["longitude"] = *data.Longitude
	}
	if data.Visible != nil {
		fields["visible"] = *data.Visible
	}
	if data.DID != "" {
		fields["did"] = data.DID
	}
	if data.Status != "" {
		fields["status"] = data.Status
	}

	// Optional avatar / cover upload alongside the form fields
	if url, ok := uploadImage(c, ctx, "avatar", "homiefinder/avatars", userID); ok {
		fields["avatar"] = url
	}
	if url, ok := uploadImage(c, ctx, "cover", "homiefinder/covers", userID+"_cover"); ok {
		fields["coverImg"] = url
	}

	if len(fields) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No changes to update"})
		return
	}

	if err := st.Profiles.Set(ctx, userID, fields); err != nil {
		log.Printf("[UpdateMyProfile] Merge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// uploadImage pushes a multipart file field to Cloudinary. Returns false
// when the field is absent or the upload fails; the caller just skips the
// field in that case.
func uploadImage(c *gin.Context, ctx context.Context, field, folder, publicID string) (string, bool) {
	file, _, err := c.Request.FormFile(field)
	if err != nil {
		return "", false
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(config.Envs.CloudinaryURL)
	if err != nil {
		log.Printf("[uploadImage] Cloudinary configuration error: %v", err)
		return "", false
	}

	uploadParams := uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		Transformation: "c_limit,w_800,h_800,q_auto",
	}

	result, err := cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		log.Printf("[uploadImage] Upload failed: %v", err)
		return "", false
	}
	return result.SecureURL, true
}

func UploadPhoto(c *gin.Context) {
	userID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}

	url, ok := uploadImage(c, ctx, "photo", "homiefinder/photos", userID+"_"+time.Now().Format("20060102150405"))
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UpdateUserStatus sets availability and refreshes the presence marker.
func UpdateUserStatus(c *gin.Context) {
	userID := c.GetString("userId")

	var req struct {
		Status string `json:"status" binding:"required,oneof=available busy offline"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := st.Profiles.Set(ctx, userID, bson.M{
		"status":   req.Status,
		"lastSeen": time.Now().Unix(),
	})
	if err != nil {
		log.Printf("[UpdateUserStatus] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	if req.Status == "offline" {
		presence.MarkOffline(ctx, userID)
	} else {
		presence.MarkOnline(ctx, userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
		"status":  req.Status,
	})
}
