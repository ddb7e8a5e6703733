package geo

import (
	"fmt"
	"math"

	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
)

const earthRadiusM = 6371000 // Earth radius in meters

// Distance computes the haversine great-circle distance between two
// coordinate pairs, in meters.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// Verdict is the result of a geofence check. A failed check is a recorded
// verdict, not an error: the caller decides what to do with it.
type Verdict struct {
	IsValid        bool     `json:"is_valid"`
	Distance       *float64 `json:"distance,omitempty"`
	AllowedRadiusM int      `json:"allowed_radius_m"`
	Message        string   `json:"message"`
}

// ValidateSite checks a worker-reported position against a job site's
// geofence. Geofencing is opt-in per site: a nil site or one without a full
// coordinate pair passes with a nil distance. The radius boundary is
// inclusive, so a worker at exactly the allowed radius is valid.
func ValidateSite(site *location.SiteLocation, workerLat, workerLon float64) Verdict {
	if site == nil || !site.HasCoordinates() {
		return Verdict{
			IsValid: true,
			Message: "geofencing is not configured for this job site",
		}
	}

	radius := site.AllowedRadiusM
	if radius <= 0 {
		radius = location.DefaultAllowedRadiusM
	}

	dist := Distance(*site.Latitude, *site.Longitude, workerLat, workerLon)

	if withinRadius(dist, radius) {
		return Verdict{
			IsValid:        true,
			Distance:       &dist,
			AllowedRadiusM: radius,
			Message:        fmt.Sprintf("within allowed radius: %.1fm from job site (limit %dm)", dist, radius),
		}
	}

	return Verdict{
		IsValid:        false,
		Distance:       &dist,
		AllowedRadiusM: radius,
		Message:        fmt.Sprintf("outside allowed radius: %.1fm from job site (limit %dm)", dist, radius),
	}
}

// withinRadius is the boundary rule: a distance of exactly the allowed
// radius still passes.
func withinRadius(distM float64, radiusM int) bool {
	return distM <= float64(radiusM)
}
