package route

import "time"

type Route struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	Name           string       `json:"name"`
	TotalDistanceM float64      `json:"total_distance_m"`
	PointCount     int          `json:"point_count"`
	CreatedAt      time.Time    `json:"created_at"`
	Points         []RoutePoint `json:"points,omitempty"`
}

type RoutePoint struct {
	Seq        int     `json:"seq"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ElevationM float64 `json:"elevation_m"`
}
