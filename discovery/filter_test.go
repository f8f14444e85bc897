package discovery

import (
	"testing"

	"homiefinder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr(f float64) *float64 { return &f }

func profileAt(lat, lon float64) models.User {
	return models.User{
		ID:        primitive.NewObjectID(),
		Latitude:  ptr(lat),
		Longitude: ptr(lon),
	}
}

func TestHaversineKm(t *testing.T) {
	// Identical points
	assert.InDelta(t, 0, HaversineKm(51.5, -0.12, 51.5, -0.12), 0.001)

	// 0.2 degrees of longitude at the equator is roughly 22.2 km
	assert.InDelta(t, 22.24, HaversineKm(0, 0, 0, 0.2), 0.1)

	// 0.3 degrees is roughly 33.4 km
	assert.InDelta(t, 33.36, HaversineKm(0, 0, 0, 0.3), 0.1)

	// Symmetric
	assert.InDelta(t,
		HaversineKm(40.71, -74.0, 34.05, -118.24),
		HaversineKm(34.05, -118.24, 40.71, -74.0),
		0.001)
}

func TestFilterRadius(t *testing.T) {
	near := profileAt(0, 0.2)  // ~22 km
	far := profileAt(0, 0.3)   // ~33 km
	viewer := profileAt(0, 0)

	out := Filter([]models.User{viewer, near, far}, viewer.ID.Hex(), ptr(0), ptr(0), DefaultRadiusKm)

	require.Len(t, out, 1)
	assert.Equal(t, near.ID, out[0].ID)
}

func TestFilterExcludesViewer(t *testing.T) {
	viewer := profileAt(10, 10)
	other := profileAt(10, 10)

	out := Filter([]models.User{viewer, other}, viewer.ID.Hex(), nil, nil, DefaultRadiusKm)

	require.Len(t, out, 1)
	assert.Equal(t, other.ID, out[0].ID)
}

func TestFilterExcludesHiddenProfiles(t *testing.T) {
	hidden := profileAt(0, 0.1)
	no := false
	hidden.Visible = &no
	visible := profileAt(0, 0.1)

	out := Filter([]models.User{hidden, visible}, primitive.NewObjectID().Hex(), ptr(0), ptr(0), DefaultRadiusKm)

	require.Len(t, out, 1)
	assert.Equal(t, visible.ID, out[0].ID)
}

func TestFilterWithoutViewerLocation(t *testing.T) {
	// No viewer coordinates means no radius filter at all, and candidates
	// without coordinates stay in.
	noCoords := models.User{ID: primitive.NewObjectID()}
	far := profileAt(80, 170)

	out := Filter([]models.User{noCoords, far}, primitive.NewObjectID().Hex(), nil, nil, DefaultRadiusKm)

	assert.Len(t, out, 2)
}

func TestFilterExcludesCandidatesWithoutCoordinates(t *testing.T) {
	noCoords := models.User{ID: primitive.NewObjectID()}
	zeroZero := profileAt(0, 0) // (0,0) is treated as unset
	near := profileAt(0.01, 0.01)

	out := Filter([]models.User{noCoords, zeroZero, near}, primitive.NewObjectID().Hex(), ptr(0), ptr(0), DefaultRadiusKm)

	require.Len(t, out, 1)
	assert.Equal(t, near.ID, out[0].ID)
}

func TestFilterPreservesOrder(t *testing.T) {
	a := profileAt(0, 0.01)
	b := profileAt(0, 0.02)
	c := profileAt(0, 0.03)

	out := Filter([]models.User{a, b, c}, primitive.NewObjectID().Hex(), ptr(0), ptr(0), DefaultRadiusKm)

	require.Len(t, out, 3)
	assert.Equal(t, []primitive.ObjectID{a.ID, b.ID, c.ID},
		[]primitive.ObjectID{out[0].ID, out[1].ID, out[2].ID})
}
