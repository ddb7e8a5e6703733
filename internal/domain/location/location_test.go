package location

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CoordinatePair(t *testing.T) {
	site, err := Normalize(CoordinatePair{
		Latitude:  40.7128,
		Longitude: -74.006,
		Label:     "Warehouse A",
	}, "fallback label")

	require.NoError(t, err)
	require.True(t, site.HasCoordinates())
	assert.Equal(t, 40.7128, *site.Latitude)
	assert.Equal(t, -74.006, *site.Longitude)
	assert.Equal(t, "Warehouse A", site.FormattedAddress)
	assert.Equal(t, DefaultAllowedRadiusM, site.AllowedRadiusM)
}

func TestNormalize_CoordinatePair_FallbackLabel(t *testing.T) {
	site, err := Normalize(CoordinatePair{Latitude: 1, Longitude: 2}, "Acme Cleaning HQ")

	require.NoError(t, err)
	assert.Equal(t, "Acme Cleaning HQ", site.FormattedAddress)
}

func TestNormalize_CoordinatePair_CustomRadius(t *testing.T) {
	site, err := Normalize(CoordinatePair{Latitude: 1, Longitude: 2, RadiusM: 75}, "")

	require.NoError(t, err)
	assert.Equal(t, 75, site.AllowedRadiusM)
}

func TestNormalize_CoordinatePair_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   CoordinatePair
	}{
		{"nan latitude", CoordinatePair{Latitude: math.NaN(), Longitude: 0}},
		{"inf longitude", CoordinatePair{Latitude: 0, Longitude: math.Inf(1)}},
		{"latitude out of range", CoordinatePair{Latitude: 91, Longitude: 0}},
		{"longitude out of range", CoordinatePair{Latitude: 0, Longitude: -181}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Normalize(c.in, "")
			assert.Error(t, err)
		})
	}
}

func TestNormalize_StructuredAddress(t *testing.T) {
	lat, lon := 51.5074, -0.1278
	site, err := Normalize(StructuredAddress{
		Street:    "10 Downing St",
		City:      "London",
		Latitude:  &lat,
		Longitude: &lon,
	}, "fallback")

	require.NoError(t, err)
	require.True(t, site.HasCoordinates())
	assert.Equal(t, "10 Downing St, London", site.FormattedAddress)
}

func TestNormalize_StructuredAddress_NoCoordinates(t *testing.T) {
	site, err := Normalize(StructuredAddress{City: "Austin", State: "TX"}, "")

	require.NoError(t, err)
	assert.False(t, site.HasCoordinates())
	assert.Equal(t, "Austin, TX", site.FormattedAddress)
}

func TestNormalize_StructuredAddress_HalfCoordinatePair(t *testing.T) {
	lat := 10.0
	_, err := Normalize(StructuredAddress{Street: "Main St", Latitude: &lat}, "")

	assert.Error(t, err)
}

func TestNormalize_FreeTextLabel(t *testing.T) {
	site, err := Normalize(FreeTextLabel{Text: "  Downtown site  "}, "fallback")

	require.NoError(t, err)
	assert.False(t, site.HasCoordinates())
	assert.Equal(t, "Downtown site", site.FormattedAddress)

	empty, err := Normalize(FreeTextLabel{}, "Business HQ")
	require.NoError(t, err)
	assert.Equal(t, "Business HQ", empty.FormattedAddress)
}

func TestNormalize_NilInput(t *testing.T) {
	_, err := Normalize(nil, "")
	assert.Error(t, err)
}
