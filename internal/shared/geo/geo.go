package geo

import (
	"math"
	"time"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Point is a recorded or planned track position. RecordedAt is zero for
// planned points that carry no time information.
type Point struct {
	Lat        float64
	Lng        float64
	ElevationM float64
	RecordedAt time.Time
}

// HaversineKm returns the great-circle distance in kilometers between two
// lat/lng pairs given in degrees. NaN coordinates propagate to the result.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(radians(lat1))*math.Cos(radians(lat2))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// TrackDistanceKm sums the consecutive-point distances of an ordered track.
// Empty and single-point tracks have zero length.
func TrackDistanceKm(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineKm(points[i-1].Lat, points[i-1].Lng, points[i].Lat, points[i].Lng)
	}
	return total
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
