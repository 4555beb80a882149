package compare

import (
	"backend-wayshare/internal/shared/geo"
)

// DefaultCoverageThresholdKm is how close an actual point must be to a
// planned point for that planned point to count as covered.
const DefaultCoverageThresholdKm = 0.1

// Stats compares a recorded track against a planned route. It is a pure
// view over the two input tracks and is never persisted.
type Stats struct {
	PlannedDistanceKm float64 `json:"planned_distance_km"`
	ActualDistanceKm  float64 `json:"actual_distance_km"`
	CompletionPercent float64 `json:"completion_percent"`
	AvgDeviationM     float64 `json:"avg_deviation_m"`
	DurationHours     float64 `json:"duration_hours"`
	PlannedPoints     int     `json:"planned_points"`
	ActualPoints      int     `json:"actual_points"`
}

// Compare computes the full comparison of an actual track against a planned
// route. Inputs are read-only snapshots; the call is safe for concurrent use.
func Compare(planned, actual []geo.Point, thresholdKm float64) Stats {
	return Stats{
		PlannedDistanceKm: geo.TrackDistanceKm(planned),
		ActualDistanceKm:  geo.TrackDistanceKm(actual),
		CompletionPercent: CompletionPercent(planned, actual, thresholdKm),
		AvgDeviationM:     AvgDeviationM(planned, actual),
		DurationHours:     DurationHours(actual),
		PlannedPoints:     len(planned),
		ActualPoints:      len(actual),
	}
}

// CompletionPercent is the percentage of planned points that have at least
// one actual point within thresholdKm. Either track being empty yields 0.
func CompletionPercent(planned, actual []geo.Point, thresholdKm float64) float64 {
	if len(planned) == 0 || len(actual) == 0 {
		return 0
	}

	covered := 0
	for _, p := range planned {
		for _, a := range actual {
			if geo.HaversineKm(p.Lat, p.Lng, a.Lat, a.Lng) <= thresholdKm {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(planned)) * 100
}

// AvgDeviationM averages, over all actual points, the distance in meters to
// the nearest planned point. Either track being empty yields 0.
//
// Linear scan per point; fine for tracks up to a few thousand points.
func AvgDeviationM(planned, actual []geo.Point) float64 {
	if len(planned) == 0 || len(actual) == 0 {
		return 0
	}

	var sumKm float64
	for _, a := range actual {
		nearest := geo.HaversineKm(a.Lat, a.Lng, planned[0].Lat, planned[0].Lng)
		for _, p := range planned[1:] {
			if d := geo.HaversineKm(a.Lat, a.Lng, p.Lat, p.Lng); d < nearest {
				nearest = d
			}
		}
		sumKm += nearest
	}
	return sumKm / float64(len(actual)) * 1000
}

// DurationHours is the elapsed time between the first and last recorded
// timestamps of the actual track. Fewer than two points yields 0.
func DurationHours(actual []geo.Point) float64 {
	if len(actual) < 2 {
		return 0
	}
	return actual[len(actual)-1].RecordedAt.Sub(actual[0].RecordedAt).Hours()
}
