// Package discovery implements the candidate filter behind the explore
// feed: every visible profile except the viewer's own, optionally limited
// to a great-circle radius around the viewer.
package discovery

import (
	"math"

	"homiefinder/models"
)

// DefaultRadiusKm is the discovery radius applied when the viewer shares
// their location.
const DefaultRadiusKm = 25.0

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance between two WGS84 points
// in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Filter drops the viewer's own profile and hidden profiles. When the
// viewer has coordinates it also keeps only candidates within radiusKm.
// Without viewer coordinates the radius filter is skipped entirely; that
// is policy, not an error. Candidates without coordinates are excluded
// once the radius filter applies, since their distance is unknowable.
// Order of the input is preserved.
func Filter(profiles []models.User, viewerID string, viewerLat, viewerLon *float64, radiusKm float64) []models.User {
	hasLocation := viewerLat != nil && viewerLon != nil

	var candidates []models.User
	for _, p := range profiles {
		if p.ID.Hex() == viewerID {
			continue
		}
		if !p.IsVisible() {
			continue
		}
		if hasLocation {
			if !p.HasCoordinates() {
				continue
			}
			if HaversineKm(*viewerLat, *viewerLon, *p.Latitude, *p.Longitude) > radiusKm {
				continue
			}
		}
		candidates = append(candidates, p)
	}
	return candidates
}
