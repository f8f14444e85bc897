package handlers

import (
	"testing"
	"time"

	"homiefinder/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func birthDateYearsAgo(years int, now time.Time) int64 {
	return now.AddDate(-years, 0, 0).Unix()
}

func TestAgeFromBirthDate(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 25, ageFromBirthDate(time.Date(2001, 6, 15, 0, 0, 0, 0, time.UTC).Unix(), now))
	// Birthday tomorrow: still a year younger
	assert.Equal(t, 24, ageFromBirthDate(time.Date(2001, 6, 16, 0, 0, 0, 0, time.UTC).Unix(), now))
	// Unknown birth date reports as 0
	assert.Equal(t, 0, ageFromBirthDate(0, now))
}

func memberUser() *models.User {
	return &models.User{ID: primitive.NewObjectID()}
}

func TestValidateJoinPublicServer(t *testing.T) {
	user := memberUser()
	srv := &models.Server{
		Privacy: models.PrivacyPublic,
		Members: []string{"someone-else"},
	}

	assert.NoError(t, validateJoin(srv, user, "", time.Now()))
}

func TestValidateJoinRejectsExistingMember(t *testing.T) {
	user := memberUser()
	srv := &models.Server{
		Privacy: models.PrivacyPublic,
		Members: []string{user.ID.Hex()},
	}

	assert.ErrorIs(t, validateJoin(srv, user, "", time.Now()), errAlreadyMember)
}

func TestValidateJoinRejectsFullServer(t *testing.T) {
	user := memberUser()
	srv := &models.Server{
		Privacy:    models.PrivacyPublic,
		Members:    []string{"a", "b"},
		MaxMembers: 2,
	}

	assert.ErrorIs(t, validateJoin(srv, user, "", time.Now()), errServerFull)
}

func TestValidateJoinEnforcesMinAge(t *testing.T) {
	now := time.Now()
	user := memberUser()
	user.BirthDate = birthDateYearsAgo(16, now)

	srv := &models.Server{
		Privacy: models.PrivacyPublic,
		MinAge:  18,
	}

	assert.ErrorIs(t, validateJoin(srv, user, "", now), errTooYoung)

	user.BirthDate = birthDateYearsAgo(21, now)
	assert.NoError(t, validateJoin(srv, user, "", now))
}

func TestValidateJoinPrivateServerInvite(t *testing.T) {
	user := memberUser()
	srv := &models.Server{
		Privacy:    models.PrivacyPrivate,
		InviteCode: "secret-code",
	}

	assert.ErrorIs(t, validateJoin(srv, user, "", time.Now()), errBadInvite)
	assert.ErrorIs(t, validateJoin(srv, user, "wrong", time.Now()), errBadInvite)
	assert.NoError(t, validateJoin(srv, user, "secret-code", time.Now()))
}

func TestPartnerOf(t *testing.T) {
	m := models.Match{Users: []string{"alice", "bob"}}

	assert.Equal(t, "bob", partnerOf(m, "alice"))
	assert.Equal(t, "alice", partnerOf(m, "bob"))
}

func TestGenerateUsernameFromEmail(t *testing.T) {
	name := generateUsernameFromEmail("jane.doe@example.com")
	assert.Contains(t, name, "janedoe_")

	// Degenerate input still yields something usable
	assert.Contains(t, generateUsernameFromEmail("nodomain"), "user_")
}
