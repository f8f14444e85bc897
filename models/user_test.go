package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIsVisible(t *testing.T) {
	var u User
	assert.True(t, u.IsVisible(), "unset visibility defaults to visible")

	yes, no := true, false
	u.Visible = &yes
	assert.True(t, u.IsVisible())

	u.Visible = &no
	assert.False(t, u.IsVisible())
}

func TestUserHasCoordinates(t *testing.T) {
	var u User
	assert.False(t, u.HasCoordinates())

	lat, lon := 51.5, -0.12
	u.Latitude = &lat
	u.Longitude = &lon
	assert.True(t, u.HasCoordinates())

	// (0,0) is the null island sentinel left by clients without a fix
	zero := 0.0
	u.Latitude = &zero
	u.Longitude = &zero
	assert.False(t, u.HasCoordinates())
}
