package geo

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// lat/lng pairs using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lng1Rad := toRadians(lng1)
	lat2Rad := toRadians(lat2)
	lng2Rad := toRadians(lng2)

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PointGeoJSON encodes a lat/lng pair as a GeoJSON Point string.
// GeoJSON coordinate order is [lng, lat].
func PointGeoJSON(lat, lng float64) (string, error) {
	p := geom.NewPointFlat(geom.XY, []float64{lng, lat})
	b, err := geojson.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
