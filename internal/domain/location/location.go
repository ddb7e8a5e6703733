package location

import (
	"strings"

	"github.com/workhive-app/workhive-backend-go/internal/pkg/validator"
)

// DefaultAllowedRadiusM is the geofence radius applied when a site does not
// configure one.
const DefaultAllowedRadiusM = 150

// SiteLocation is the canonical location record snapshotted onto shifts.
// A site is only usable for geofencing when both coordinates are present.
type SiteLocation struct {
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	FormattedAddress string   `json:"formatted_address"`
	AllowedRadiusM   int      `json:"allowed_radius_m"`
}

// HasCoordinates reports whether the site carries a full coordinate pair.
func (s SiteLocation) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// IsZero reports whether the site carries no usable information at all.
func (s SiteLocation) IsZero() bool {
	return !s.HasCoordinates() && validator.IsEmpty(s.FormattedAddress)
}

// Input is one of the explicit location input variants. Callers construct the
// variant matching the shape they received instead of shape-sniffing.
type Input interface {
	normalize(fallbackLabel string) (SiteLocation, error)
}

// CoordinatePair is a raw latitude/longitude input, optionally labelled.
type CoordinatePair struct {
	Latitude  float64
	Longitude float64
	Label     string
	RadiusM   int
}

// StructuredAddress is a street-address input, optionally with coordinates.
type StructuredAddress struct {
	Street    string
	City      string
	State     string
	Latitude  *float64
	Longitude *float64
	RadiusM   int
}

// FreeTextLabel is a display-only location with no coordinates. Sites built
// from it cannot be geofenced.
type FreeTextLabel struct {
	Text string
}

func (c CoordinatePair) normalize(fallbackLabel string) (SiteLocation, error) {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(c.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite number between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(c.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite number between -180 and 180",
		})
	}
	if len(errs) > 0 {
		return SiteLocation{}, errs
	}

	lat, lon := c.Latitude, c.Longitude
	label := c.Label
	if validator.IsEmpty(label) {
		label = fallbackLabel
	}

	return SiteLocation{
		Latitude:         &lat,
		Longitude:        &lon,
		FormattedAddress: strings.TrimSpace(label),
		AllowedRadiusM:   radiusOrDefault(c.RadiusM),
	}, nil
}

func (a StructuredAddress) normalize(fallbackLabel string) (SiteLocation, error) {
	var errs validator.ValidationErrors

	// Coordinates are optional on an address, but a half pair is malformed.
	if (a.Latitude == nil) != (a.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be supplied together",
		})
	}
	if a.Latitude != nil && !validator.IsValidLatitude(*a.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite number between -90 and 90",
		})
	}
	if a.Longitude != nil && !validator.IsValidLongitude(*a.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite number between -180 and 180",
		})
	}
	if len(errs) > 0 {
		return SiteLocation{}, errs
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.State} {
		if !validator.IsEmpty(p) {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	label := strings.Join(parts, ", ")
	if label == "" {
		label = fallbackLabel
	}

	site := SiteLocation{
		FormattedAddress: label,
		AllowedRadiusM:   radiusOrDefault(a.RadiusM),
	}
	if a.Latitude != nil && a.Longitude != nil {
		lat, lon := *a.Latitude, *a.Longitude
		site.Latitude = &lat
		site.Longitude = &lon
	}
	return site, nil
}

func (f FreeTextLabel) normalize(fallbackLabel string) (SiteLocation, error) {
	label := strings.TrimSpace(f.Text)
	if label == "" {
		label = fallbackLabel
	}
	return SiteLocation{
		FormattedAddress: label,
		AllowedRadiusM:   DefaultAllowedRadiusM,
	}, nil
}

// Normalize converts any input variant into a canonical SiteLocation.
// fallbackLabel is used when the input carries no displayable address.
func Normalize(in Input, fallbackLabel string) (SiteLocation, error) {
	if in == nil {
		return SiteLocation{}, validator.ValidationErrors{{
			Field:   "location",
			Message: "location input is required",
		}}
	}
	return in.normalize(strings.TrimSpace(fallbackLabel))
}

func radiusOrDefault(radiusM int) int {
	if radiusM <= 0 {
		return DefaultAllowedRadiusM
	}
	return radiusM
}
