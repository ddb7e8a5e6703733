package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
)

// latitudeOffset returns the latitude delta in degrees that puts a point
// approximately meters due north of the origin latitude.
func latitudeOffset(meters float64) float64 {
	return meters / earthRadiusM * (180.0 / math.Pi)
}

func siteAt(lat, lon float64, radiusM int) *location.SiteLocation {
	return &location.SiteLocation{
		Latitude:         &lat,
		Longitude:        &lon,
		FormattedAddress: "Test Site",
		AllowedRadiusM:   radiusM,
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(40.7128, -74.006, 40.7128, -74.006))
}

func TestDistance_Symmetry(t *testing.T) {
	cases := [][4]float64{
		{40.7128, -74.006, 34.0522, -118.2437},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 0, 0.001, 0.001},
	}
	for _, c := range cases {
		ab := Distance(c[0], c[1], c[2], c[3])
		ba := Distance(c[2], c[3], c[0], c[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistance_Deterministic(t *testing.T) {
	first := Distance(40.7128, -74.006, 34.0522, -118.2437)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Distance(40.7128, -74.006, 34.0522, -118.2437))
	}
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	// One degree of latitude on a 6,371km sphere is ~111.19km.
	d := Distance(0, 0, 1, 0)
	assert.InDelta(t, 111194.93, d, 1.0)
}

func TestValidateSite_WithinRadius(t *testing.T) {
	site := siteAt(0, 0, 150)
	v := ValidateSite(site, latitudeOffset(149.9), 0)

	assert.True(t, v.IsValid)
	require.NotNil(t, v.Distance)
	assert.InDelta(t, 149.9, *v.Distance, 0.01)
	assert.Equal(t, 150, v.AllowedRadiusM)
}

func TestValidateSite_BoundaryInclusive(t *testing.T) {
	// A worker standing exactly at the allowed radius is still valid; one
	// ulp past it is not.
	assert.True(t, withinRadius(150.0, 150))
	assert.False(t, withinRadius(math.Nextafter(150.0, 151.0), 150))

	site := siteAt(0, 0, 150)
	v := ValidateSite(site, latitudeOffset(150.0), 0)
	require.NotNil(t, v.Distance)
	assert.InDelta(t, 150.0, *v.Distance, 0.01)
	assert.Equal(t, withinRadius(*v.Distance, 150), v.IsValid)
}

func TestValidateSite_OutsideRadius(t *testing.T) {
	site := siteAt(0, 0, 150)
	v := ValidateSite(site, latitudeOffset(150.1), 0)

	assert.False(t, v.IsValid)
	require.NotNil(t, v.Distance)
	assert.InDelta(t, 150.1, *v.Distance, 0.01)
}

func TestValidateSite_MessageContents(t *testing.T) {
	site := siteAt(0, 0, 150)
	v := ValidateSite(site, latitudeOffset(200.0), 0)

	assert.False(t, v.IsValid)
	assert.Contains(t, v.Message, "200.0m")
	assert.Contains(t, v.Message, "150m")
}

func TestValidateSite_SamePoint(t *testing.T) {
	site := siteAt(40.7128, -74.006, 150)
	v := ValidateSite(site, 40.7128, -74.006)

	assert.True(t, v.IsValid)
	require.NotNil(t, v.Distance)
	assert.Equal(t, 0.0, *v.Distance)
}

func TestValidateSite_NoSiteConfigured(t *testing.T) {
	v := ValidateSite(nil, 40.7128, -74.006)

	assert.True(t, v.IsValid)
	assert.Nil(t, v.Distance)
	assert.NotEmpty(t, v.Message)
}

func TestValidateSite_SiteWithoutCoordinates(t *testing.T) {
	site := &location.SiteLocation{FormattedAddress: "Somewhere"}
	v := ValidateSite(site, 40.7128, -74.006)

	assert.True(t, v.IsValid)
	assert.Nil(t, v.Distance)
}

func TestValidateSite_DefaultRadius(t *testing.T) {
	site := siteAt(0, 0, 0)
	v := ValidateSite(site, latitudeOffset(100), 0)

	assert.True(t, v.IsValid)
	assert.Equal(t, location.DefaultAllowedRadiusM, v.AllowedRadiusM)
}
