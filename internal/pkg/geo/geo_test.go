package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePoint(t *testing.T) {
	assert.Zero(t, Distance(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestDistance_KnownPair(t *testing.T) {
	// NYC City Hall to Union Square, roughly 2.9 km
	d := Distance(40.7128, -74.0060, 40.7359, -73.9911)
	assert.InDelta(t, 2850, d, 500)
}

func TestDistance_Symmetric(t *testing.T) {
	a := Distance(40.7128, -74.0060, 51.5074, -0.1278)
	b := Distance(51.5074, -0.1278, 40.7128, -74.0060)
	assert.InDelta(t, a, b, 0.001)
}

func TestPointGeoJSON(t *testing.T) {
	raw, err := PointGeoJSON(40.7128, -74.0060)
	assert.NoError(t, err)
	assert.Contains(t, raw, `"type":"Point"`)
	assert.Contains(t, raw, "-74.006")
}
