package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homiefinder/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Envs.JWTSecret = "test-secret"
}

func TestIssueAndParseToken(t *testing.T) {
	token, expires, err := IssueToken("user123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expires, time.Minute)

	userID, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", userID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := IssueToken("user123")
	require.NoError(t, err)

	config.Envs.JWTSecret = "different-secret"
	defer func() { config.Envs.JWTSecret = "test-secret" }()

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func authRouter() *gin.Engine {
	router := gin.New()
	router.GET("/secure", JWTAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
	})
	return router
}

func TestJWTAuthMiddlewareBearerHeader(t *testing.T) {
	token, _, err := IssueToken("user123")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user123")
}

func TestJWTAuthMiddlewareQueryToken(t *testing.T) {
	token, _, err := IssueToken("user123")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure?token="+token, nil)
	authRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddlewareRejectsMissingToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	authRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareRejectsBadToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	authRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
